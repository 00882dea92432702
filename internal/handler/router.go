package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayhub/internal/domain/guest"
	"stayhub/internal/handler/api"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	refundHandler *api.RefundHandler,
	roomHandler *api.RoomHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, paymentHandler, refundHandler, roomHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	refundHandler *api.RefundHandler,
	roomHandler *api.RoomHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: roomHandler.Availability},
				{Method: http.MethodGet, Path: "/:id/available-dates", Handler: roomHandler.AvailableDates},
				{Method: http.MethodGet, Path: "/:id/calendar", Handler: roomHandler.Calendar},
			})

			staffOnly := rooms.Group("")
			staffOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(guest.RoleStaff))
			addRoutes(staffOnly, []route{
				{Method: http.MethodPost, Path: "/:id/blocked-dates", Handler: roomHandler.BlockDates},
				{Method: http.MethodDelete, Path: "/:id/blocked-dates", Handler: roomHandler.UnblockDates},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodGet, Path: "/:id/balance", Handler: paymentHandler.Balance},
				{Method: http.MethodGet, Path: "/:id/refund-eligibility", Handler: refundHandler.CheckEligibility},
			})

			staffOnly := bookings.Group("")
			staffOnly.Use(authMiddleware.RequireRoleAtLeast(guest.RoleStaff))
			addRoutes(staffOnly, []route{
				{Method: http.MethodGet, Path: "/by-status", Handler: bookingHandler.ListByStatus},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: bookingHandler.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: bookingHandler.CheckOut},
				{Method: http.MethodGet, Path: "/:id/payments", Handler: paymentHandler.History},
				{Method: http.MethodGet, Path: "/:id/refunds", Handler: refundHandler.ListByBooking},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			// The callback arrives from the gateway, authenticated by its
			// signature rather than a bearer token.
			addRoutes(payments, []route{
				{Method: http.MethodGet, Path: "/gateway/callback", Handler: paymentHandler.GatewayCallback},
			})

			authRequired := payments.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/gateway", Handler: paymentHandler.InitiateGateway},
			})

			staffOnly := payments.Group("")
			staffOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(guest.RoleStaff))
			addRoutes(staffOnly, []route{
				{Method: http.MethodPost, Path: "/cash", Handler: paymentHandler.RecordCash},
			})
		}

		refunds := apiGroup.Group("/refunds")
		refunds.Use(authMiddleware.RequireAuth())
		{
			addRoutes(refunds, []route{
				{Method: http.MethodPost, Path: "", Handler: refundHandler.Request},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}
