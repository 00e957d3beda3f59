// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tavola/internal/admin"
	"tavola/internal/auth"
	"tavola/internal/cards"
	"tavola/internal/cart"
	"tavola/internal/menu"
	"tavola/internal/notifications"
	"tavola/internal/orders"
	"tavola/internal/reservations"
	"tavola/internal/reviews"
	"tavola/internal/shared/config"
	"tavola/internal/shared/database"
	"tavola/internal/users"
	"tavola/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// shared services, wired once and injected across features
	cacheService        cache.Service
	notificationService notifications.Service
	menuRepo            menu.Repository
	cartService         cart.Service
	usersRepo           users.Repository
	ordersRepo          orders.Repository
	reservationsRepo    reservations.Repository
}

// NewRouter creates a new router instance. The Kafka producer may be
// nil, in which case notifications stay in-app only.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedis())
	}

	notificationRepo := notifications.NewRepository(r.db.GetPostgreSQL())
	r.notificationService = notifications.NewService(notificationRepo, r.producer)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthAndCartRoutes(api)
		r.setupUserRoutes(api)
		r.setupMenuRoutes(api)
		r.setupReservationRoutes(api)
		r.setupOrderRoutes(api)
		r.setupReviewRoutes(api)
		r.setupCardRoutes(api)
		r.setupNotificationRoutes(api)
		r.setupAdminRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tavola-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tavola-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthAndCartRoutes wires cart first so registration can hand
// every new customer an empty cart.
func (r *Router) setupAuthAndCartRoutes(rg *gin.RouterGroup) {
	r.menuRepo = menu.NewRepository(r.db.GetPostgreSQL())

	cartRepo := cart.NewRepository(r.db.GetPostgreSQL())
	r.cartService = cart.NewService(cartRepo, r.menuRepo)
	cartController := cart.NewController(r.cartService)
	cart.SetupCartRoutes(rg, cartController)

	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.cartService, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)
	authRouter.SetupRoutes(rg)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	r.usersRepo = users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(r.usersRepo)
	userController := users.NewController(userService)
	users.SetupUserRoutes(rg, userController)
}

func (r *Router) setupMenuRoutes(rg *gin.RouterGroup) {
	menuService := menu.NewService(r.menuRepo, r.cacheService, r.config)
	menuController := menu.NewController(menuService)
	menu.SetupMenuRoutes(rg, menuController)
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	r.reservationsRepo = reservations.NewRepository(r.db.GetPostgreSQL())
	reservationService := reservations.NewService(r.reservationsRepo, r.cacheService, r.notificationService, r.config)
	reservationController := reservations.NewController(reservationService)
	reservations.SetupReservationRoutes(rg, reservationController)
}

func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	cardsRepo := cards.NewRepository(r.db.GetPostgreSQL())
	r.ordersRepo = orders.NewRepository(r.db.GetPostgreSQL())
	orderService := orders.NewService(r.ordersRepo, r.cartService, cardsRepo, r.notificationService, r.config)
	orderController := orders.NewController(orderService)
	orders.SetupOrderRoutes(rg, orderController)
}

func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewRepo := reviews.NewRepository(r.db.GetPostgreSQL())
	reviewService := reviews.NewService(reviewRepo, r.menuRepo)
	reviewController := reviews.NewController(reviewService)
	reviews.SetupReviewRoutes(rg, reviewController)
}

func (r *Router) setupCardRoutes(rg *gin.RouterGroup) {
	cardRepo := cards.NewRepository(r.db.GetPostgreSQL())
	cardService := cards.NewService(cardRepo)
	cardController := cards.NewController(cardService)
	cards.SetupCardRoutes(rg, cardController)
}

func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notificationController := notifications.NewController(r.notificationService)
	notifications.SetupNotificationRoutes(rg, notificationController)
}

func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	adminService := admin.NewService(r.usersRepo, r.menuRepo, r.ordersRepo, r.reservationsRepo)
	adminController := admin.NewController(adminService)
	admin.SetupAdminRoutes(rg, adminController)
}
