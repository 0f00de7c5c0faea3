package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-system/internal/api/handler"
	"github.com/devfolio/portfolio-system/internal/api/middleware"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

// RouterDeps carries everything the router needs; construction of services
// and repositories stays in cmd/server so the storage backend is swappable.
type RouterDeps struct {
	Auth        *handler.AuthHandler
	Portfolios  *handler.PortfolioHandler
	Health      *handler.HealthHandler
	Readiness   *handler.ReadinessHandler
	Tokens      ports.TokenIssuer
	FrontendURL string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devfolio"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/metrics", echoprometheus.NewHandler())

	authRequired := middleware.Auth(deps.Tokens)
	authOptional := middleware.OptionalAuth(deps.Tokens)

	v1 := e.Group("/api/v1")

	v1.GET("/health", deps.Health.Liveness)
	v1.GET("/health/ready", deps.Readiness.Readiness)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", deps.Auth.Register)
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/refresh", deps.Auth.Refresh)
	auth.POST("/logout", deps.Auth.Logout, authRequired)
	auth.GET("/profile", deps.Auth.GetProfile, authRequired)
	auth.PUT("/profile", deps.Auth.UpdateProfile, authRequired)
	auth.PUT("/change-password", deps.Auth.ChangePassword, authRequired)

	// --- Portfolio routes ---
	portfolios := v1.Group("/portfolios")
	portfolios.GET("/public", deps.Portfolios.ListPublic)
	portfolios.GET("/search", deps.Portfolios.Search)
	portfolios.GET("/user", deps.Portfolios.ListMine, authRequired)
	portfolios.POST("", deps.Portfolios.Create, authRequired)
	portfolios.POST("/enhance", deps.Portfolios.Enhance, authRequired)
	portfolios.GET("/:id", deps.Portfolios.Get, authOptional)
	portfolios.PUT("/:id", deps.Portfolios.Update, authRequired)
	portfolios.DELETE("/:id", deps.Portfolios.Delete, authRequired)

	return e
}
