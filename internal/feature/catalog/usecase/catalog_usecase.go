package usecase

import (
	"context"

	"pkgdir/internal/feature/catalog/domain/entity"
	ratingentity "pkgdir/internal/feature/rating/domain/entity"
)

// PackageRepository abstracts the persistence layer for packages.
type PackageRepository interface {
	// List returns all packages ordered by name.
	List(ctx context.Context) ([]*entity.Package, error)

	// FindByID returns the package with the given id, or ErrPackageNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Package, error)
}

// AspectAverager computes live rating averages. Provided by the rating
// feature; an empty aspect averages across all aspects.
type AspectAverager interface {
	Average(ctx context.Context, packageID uint, aspect string) (float64, error)
}

// PackageDetail is a package together with its live per-aspect
// averages. The embedded Score field is the cached aggregate; the
// averages are computed at read time.
type PackageDetail struct {
	Package              *entity.Package
	OverallAverage       float64
	DocumentationAverage float64
}

// catalogUsecase implements package listing and detail reads.
type catalogUsecase struct {
	packages PackageRepository
	averages AspectAverager
}

// NewCatalogUsecase creates a new catalogUsecase instance.
func NewCatalogUsecase(packages PackageRepository, averages AspectAverager) *catalogUsecase {
	return &catalogUsecase{packages: packages, averages: averages}
}

// List returns all packages ordered by name.
func (u *catalogUsecase) List(ctx context.Context) ([]*entity.Package, error) {
	return u.packages.List(ctx)
}

// Get returns one package with its live per-aspect rating averages.
func (u *catalogUsecase) Get(ctx context.Context, id uint) (*PackageDetail, error) {
	pkg, err := u.packages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	overall, err := u.averages.Average(ctx, id, ratingentity.AspectOverall)
	if err != nil {
		return nil, err
	}
	docs, err := u.averages.Average(ctx, id, ratingentity.AspectDocumentation)
	if err != nil {
		return nil, err
	}
	return &PackageDetail{
		Package:              pkg,
		OverallAverage:       overall,
		DocumentationAverage: docs,
	}, nil
}
