package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/api"
	"github.com/ashutosh1890/Air-Cargo-booking/config"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/service/booking"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/service/routes"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, routeSvc routes.RouteUseCase, bookingSvc booking.BookingUseCase) error {
	srv := newServer(cfg, routeSvc, bookingSvc)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, routeSvc routes.RouteUseCase, bookingSvc booking.BookingUseCase) *http.Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), api.IdentityMiddleware())

	apiGroup := router.Group("/api")
	api.NewRouteHandler(routeSvc).Register(apiGroup.Group("/routes"))
	api.NewBookingHandler(bookingSvc).Register(apiGroup.Group("/bookings"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
}
