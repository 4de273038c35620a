// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	accounthandler "pkgdir/internal/feature/account/transport/handler"
	activityhandler "pkgdir/internal/feature/activity/transport/handler"
	cataloghandler "pkgdir/internal/feature/catalog/transport/handler"
	ratinghandler "pkgdir/internal/feature/rating/transport/handler"
	"pkgdir/internal/platform/http/handler"
	jwtmw "pkgdir/internal/platform/jwt"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(
	auth *accounthandler.AuthHandler,
	oauth *accounthandler.OAuthHandler,
	account *accounthandler.AccountHandler,
	rating *ratinghandler.RatingHandler,
	catalog *cataloghandler.PackageHandler,
	activity *activityhandler.ActivityHandler,
	sessionSecret string,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())
	// Cookie session backs the OAuth state round trip.
	r.Use(sessions.Sessions("pkgdir_session", cookie.NewStore([]byte(sessionSecret))))

	// No authentication required.
	r.GET("/healthz", handler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)
	r.GET("/auth/:provider", oauth.Begin)
	r.GET("/auth/:provider/callback", oauth.Callback)
	r.POST("/activate/:token", auth.Activate)
	r.POST("/password-resets", auth.RequestPasswordReset)
	r.PUT("/password-resets/:token", auth.ResetPassword)
	r.GET("/packages", catalog.List)
	r.GET("/packages/:id", catalog.Get)
	r.GET("/activity", activity.Recent)

	// Authenticated routes carry a bearer JWT.
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.GET("/me", auth.Me)
		authed.PUT("/packages/:id/rating", rating.Rate)
		authed.GET("/packages/:id/rating", rating.RatingFor)
		authed.POST("/packages/:id/usage", account.ToggleUsage)
		authed.GET("/packages/:id/usage", account.Usage)
	}

	return r
}
