// Package dto defines data transfer objects for the rating feature's HTTP transport layer.
package dto

import (
	"time"

	"pkgdir/internal/feature/rating/domain/entity"
)

// RateReq represents the request body for the rating endpoint. Aspect
// defaults to "overall" when omitted.
type RateReq struct {
	Rating int    `json:"rating" binding:"required"`
	Aspect string `json:"aspect"`
}

// RatingResp is the public representation of a vote.
type RatingResp struct {
	ID        uint      `json:"id"`
	PackageID uint      `json:"package_id"`
	Rating    int       `json:"rating"`
	Aspect    string    `json:"aspect"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRatingResp maps a rating entity to its public representation.
func NewRatingResp(r *entity.Rating) RatingResp {
	return RatingResp{
		ID:        r.ID,
		PackageID: r.PackageID,
		Rating:    r.Rating,
		Aspect:    r.Aspect,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
