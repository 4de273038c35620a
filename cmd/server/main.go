package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"pkgdir/internal/app/router"
	"pkgdir/internal/config"
	accountadapters "pkgdir/internal/feature/account/adapters"
	accounthandler "pkgdir/internal/feature/account/transport/handler"
	accountusecase "pkgdir/internal/feature/account/usecase"
	activityadapters "pkgdir/internal/feature/activity/adapters"
	activityhandler "pkgdir/internal/feature/activity/transport/handler"
	activityusecase "pkgdir/internal/feature/activity/usecase"
	catalogadapters "pkgdir/internal/feature/catalog/adapters"
	cataloghandler "pkgdir/internal/feature/catalog/transport/handler"
	catalogusecase "pkgdir/internal/feature/catalog/usecase"
	ratingadapters "pkgdir/internal/feature/rating/adapters"
	ratinghandler "pkgdir/internal/feature/rating/transport/handler"
	ratingusecase "pkgdir/internal/feature/rating/usecase"
	infradb "pkgdir/internal/platform/db"
	jwtmw "pkgdir/internal/platform/jwt"
	"pkgdir/internal/platform/mail"
	"pkgdir/internal/platform/notify"
	"pkgdir/internal/platform/queue"
	infraredis "pkgdir/internal/platform/redis"
	"pkgdir/internal/platform/token"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB()

	// Redis backs perishable tokens and the task queue.
	rdb, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("Redis is required for tokens and background dispatch: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}()

	queueClient := queue.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	defer func() {
		if err := queueClient.Close(); err != nil {
			slog.Error("failed to close queue client", "error", err)
		}
	}()

	// Platform collaborators
	tokens := token.NewPerishableStore(rdb, "perishable")
	mailer := mail.NewQueueMailer(queueClient)
	notifier := notify.NewQueueNotifier(queueClient)
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, 24*time.Hour)

	// Repositories
	userRepo := accountadapters.NewUserGorm(db)
	usageRepo := accountadapters.NewUsageGorm(db)
	authorRepo := accountadapters.NewAuthorshipGorm(db)
	ratingRepo := ratingadapters.NewRatingGorm(db)
	packageRepo := catalogadapters.NewPackageGorm(db)
	activityRepo := activityadapters.NewActivityGorm(db)

	// Usecases
	ratingUC := ratingusecase.NewRatingUsecase(ratingRepo, notifier)
	authUC := accountusecase.NewAuthUsecase(userRepo, tokens, mailer, jwtGen)
	accountUC := accountusecase.NewAccountUsecase(usageRepo, authorRepo, ratingUC)
	catalogUC := catalogusecase.NewCatalogUsecase(packageRepo, ratingRepo)
	activityUC := activityusecase.NewActivityUsecase(activityRepo)

	// Handlers
	accounthandler.InitProviders(cfg)
	authH := accounthandler.NewAuthHandler(authUC)
	oauthH := accounthandler.NewOAuthHandler(authUC)
	accountH := accounthandler.NewAccountHandler(accountUC)
	ratingH := ratinghandler.NewRatingHandler(ratingUC)
	catalogH := cataloghandler.NewPackageHandler(catalogUC)
	activityH := activityhandler.NewActivityHandler(activityUC)

	// Embedded background worker (mail delivery, activity recording).
	worker := queue.NewServer(cfg.RedisAddr, cfg.RedisPassword, slog.Default())
	mux := queue.NewMux(
		mail.NewDeliverTaskHandler(mail.NewWebhookDeliverer(cfg.MailWebhookURL, cfg.MailWebhookSecret)),
		notify.NewRecordTaskHandler(activityUC),
	)
	if err := worker.Start(mux); err != nil {
		log.Fatal("failed to start background worker: ", err)
	}
	defer worker.Shutdown()

	router := router.NewRouter(authH, oauthH, accountH, ratingH, catalogH, activityH, cfg.SessionSecret)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set, set a strong secret in production")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
