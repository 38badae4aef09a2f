package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pethero/pethero-api/internal/api/handler"
	"github.com/pethero/pethero-api/internal/api/middleware"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers. Services
// and repositories are interfaces so tests can run the full HTTP surface on
// in-memory stubs; DB and Redis feed the readiness probe only and may be nil.
type Dependencies struct {
	Log zerolog.Logger

	Tokens   ports.TokenService
	Auth     ports.AuthService
	Bookings ports.BookingService
	Pets     ports.PetService
	Vouchers ports.VoucherService

	Users        ports.UserRepository
	Profiles     ports.ProfileRepository
	Guardians    ports.GuardianRepository
	Availability ports.AvailabilityRepository
	Favorites    ports.FavoriteRepository
	Reviews      ports.ReviewRepository
	Messages     ports.MessageRepository
	Payments     ports.PaymentRepository

	DB    *pgxpool.Pool
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pethero"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	petHandler := handler.NewPetHandler(deps.Pets)
	voucherHandler := handler.NewVoucherHandler(deps.Vouchers)
	userHandler := handler.NewUserHandler(deps.Users)
	profileHandler := handler.NewProfileHandler(deps.Profiles, deps.Users)
	guardianHandler := handler.NewGuardianHandler(deps.Guardians)
	availabilityHandler := handler.NewAvailabilityHandler(deps.Availability)
	favoriteHandler := handler.NewFavoriteHandler(deps.Favorites)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)

	authRequired := middleware.Auth(deps.Tokens)
	ownerOnly := middleware.RequireRole(domain.RoleOwner)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Bookings (authenticated, scoped to the caller) ---
	bookings := e.Group("/bookings", authRequired)
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update)

	// --- Pets (authenticated; mutation is owner-only) ---
	pets := e.Group("/pets", authRequired)
	pets.GET("", petHandler.List)
	pets.POST("", petHandler.Create, ownerOnly)
	pets.GET("/:id", petHandler.Get)
	pets.DELETE("/:id", petHandler.Delete, ownerOnly)

	// --- Payment vouchers (authenticated, guarded via the parent booking) ---
	vouchers := e.Group("/paymentVouchers", authRequired)
	vouchers.GET("", voucherHandler.List)
	vouchers.POST("", voucherHandler.Create)
	vouchers.GET("/:id", voucherHandler.Get)
	vouchers.PUT("/:id", voucherHandler.Update)

	// --- Collaborator catalog (open, json-server parity) ---
	e.GET("/users", userHandler.List)
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get)

	e.GET("/profiles", profileHandler.List)
	e.POST("/profiles", profileHandler.Create)
	e.GET("/profiles/:id", profileHandler.Get)
	e.PUT("/profiles/:id", profileHandler.Update)

	e.GET("/guardians", guardianHandler.List)
	e.POST("/guardians", guardianHandler.Create)
	e.GET("/guardians/:id", guardianHandler.Get)
	e.PUT("/guardians/:id", guardianHandler.Update)

	e.GET("/availability", availabilityHandler.List)
	e.POST("/availability", availabilityHandler.Create)
	e.PUT("/availability/:id", availabilityHandler.Update)
	e.DELETE("/availability/:id", availabilityHandler.Delete)
	e.GET("/availability_exceptions", availabilityHandler.ListExceptions)

	e.GET("/favorites", favoriteHandler.List)
	e.POST("/favorites", favoriteHandler.Create)
	e.DELETE("/favorites/:id", favoriteHandler.Delete)

	e.GET("/reviews", reviewHandler.List)
	e.POST("/reviews", reviewHandler.Create)
	e.GET("/reviews/:id", reviewHandler.Get)
	e.PUT("/reviews/:id", reviewHandler.Update)
	e.DELETE("/reviews/:id", reviewHandler.Delete)

	e.GET("/messages", messageHandler.List)
	e.POST("/messages", messageHandler.Create)
	e.GET("/messages/:id", messageHandler.Get)

	e.POST("/payments", paymentHandler.Create)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
