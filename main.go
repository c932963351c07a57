package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/wisatatrek/tour-booking-service/config"
	"github.com/wisatatrek/tour-booking-service/internal/handler"
	"github.com/wisatatrek/tour-booking-service/internal/middleware"
	"github.com/wisatatrek/tour-booking-service/internal/repository"
	"github.com/wisatatrek/tour-booking-service/internal/service"
	"github.com/wisatatrek/tour-booking-service/pkg/database"
	"github.com/wisatatrek/tour-booking-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, booking notifications disabled: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Repositories
	routeRepo := repository.NewRouteRepository(db)
	capacityRepo := repository.NewCapacityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, capacityRepo, routeRepo, publisher, cfg.DefaultDailyCapacity)
	routeSvc := service.NewRouteService(routeRepo, bookingRepo, capacityRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "tour-booking-service"})
	})

	auth := middleware.Auth([]byte(cfg.JWTSecret))

	// Public read-side
	routes := e.Group("/api/v1/routes")
	handler.NewRouteHandler(routeSvc, bookingSvc).RegisterRoutes(routes)

	// Customer surface
	bookings := e.Group("/api/v1/bookings", auth, middleware.RequireRole(middleware.RoleCustomer, middleware.RoleAdmin))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(bookings)

	// Admin surface
	admin := e.Group("/api/v1/admin", auth, middleware.RequireRole(middleware.RoleAdmin))
	handler.NewAdminHandler(bookingSvc, routeSvc).RegisterRoutes(admin)

	log.Printf("Tour Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
