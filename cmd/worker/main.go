package main

import (
	"log"
	"log/slog"

	"pkgdir/internal/config"
	activityadapters "pkgdir/internal/feature/activity/adapters"
	activityusecase "pkgdir/internal/feature/activity/usecase"
	infradb "pkgdir/internal/platform/db"
	"pkgdir/internal/platform/mail"
	"pkgdir/internal/platform/notify"
	"pkgdir/internal/platform/queue"
)

// Standalone worker mode: processes mail delivery and activity
// recording without serving HTTP. The server binary embeds the same
// handlers; run this one to scale dispatch independently.
func main() {
	cfg := config.Load()

	db := infradb.OpenDB()

	activityUC := activityusecase.NewActivityUsecase(activityadapters.NewActivityGorm(db))
	deliverer := mail.NewWebhookDeliverer(cfg.MailWebhookURL, cfg.MailWebhookSecret)

	srv := queue.NewServer(cfg.RedisAddr, cfg.RedisPassword, slog.Default())
	mux := queue.NewMux(
		mail.NewDeliverTaskHandler(deliverer),
		notify.NewRecordTaskHandler(activityUC),
	)

	// Run blocks and handles its own shutdown signals.
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
