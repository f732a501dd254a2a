package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/config"
	"github.com/yukikurage/apm-api/internal/constants"
	"github.com/yukikurage/apm-api/internal/handlers"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/storage"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	Config *config.Config
	Store  *repository.Store
	Blobs  storage.BlobStore
	Tokens *auth.TokenManager
	Log    *logrus.Logger

	// Sessions overrides the store built from Config. Tests use it to avoid
	// Redis.
	Sessions sessions.Store
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))

	if origins := cfg.CORSAllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(corsConfig(origins)))
	}

	store := deps.Sessions
	if store == nil {
		var err error
		store, err = sessionStore(cfg)
		if err != nil {
			return nil, err
		}
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.Authenticate(deps.Tokens))

	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Services
	lifecycle := services.NewLifecycleService(deps.Store)
	orderService := services.NewOrderService(deps.Store, deps.Blobs)
	authService := services.NewAuthService(deps.Store.Users, deps.Tokens, cfg.AllowAdminSignup)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, deps.Tokens.TTL(), cfg.IsProduction())
	userHandler := handlers.NewUserHandler(services.NewUserService(deps.Store.Users))
	orderHandler := handlers.NewOrderHandler(orderService, lifecycle)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(deps.Store), lifecycle)
	workstationHandler := handlers.NewWorkstationHandler(services.NewWorkstationService(deps.Store))
	rejectReasonHandler := handlers.NewRejectReasonHandler(services.NewRejectReasonService(deps.Store))
	maintenanceHandler := handlers.NewMaintenanceLogHandler(services.NewMaintenanceLogService(deps.Store))
	performanceHandler := handlers.NewPerformanceHandler(services.NewPerformanceService(deps.Store))
	orderFileHandler := handlers.NewOrderFileHandler(services.NewOrderFileService(deps.Store, deps.Blobs), cfg.MaxUploadBytes)
	pageHandler := handlers.NewPageHandler(orderService)

	id := middleware.RequireIDParam("id")
	staff := middleware.RequireRoles(models.RoleOperator, models.RoleAdmin)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Assembly process management API is running",
		})
	})

	// Users (public)
	users := r.Group("/users")
	{
		users.GET("/login-page", authHandler.LoginPage)
		users.GET("/register-page", authHandler.RegisterPage)
		users.POST("/create-user", authHandler.CreateUser)
		users.POST("/login", authHandler.Login)
		users.POST("/api/login", authHandler.APILogin)
		users.GET("/logout", authHandler.Logout)
	}

	// Browser pages
	pages := r.Group(constants.OrdersPagePath)
	pages.Use(middleware.RequirePageRoles(models.RoleOperator, models.RoleAdmin))
	{
		pages.GET("", pageHandler.OrdersPage)
		pages.GET("/:id", id, pageHandler.OrderPage)
	}

	orders := r.Group("/orders")
	orders.Use(staff)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", id, orderHandler.GetOrder)
		orders.GET("/:id/tasks", id, orderHandler.ListOrderTasks)
		orders.POST("/:id/start", id, orderHandler.StartOrder)
		orders.POST("/:id/complete", id, orderHandler.CompleteOrder)
		orders.POST("/:id/reject", id, orderHandler.RejectOrder)
	}

	tasks := r.Group("/tasks")
	tasks.Use(staff)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", id, taskHandler.GetTask)
		tasks.PUT("/update-task/:id", id, taskHandler.UpdateTask)
		tasks.GET("/by_operator/:user_id", middleware.RequireIDParam("user_id"), taskHandler.ListOperatorTasks)
		tasks.POST("/:id/start", id, taskHandler.StartTask)
		tasks.POST("/:id/complete", id, taskHandler.CompleteTask)
		tasks.POST("/:id/reject", id, taskHandler.RejectTask)
	}

	workstations := r.Group("/workstations")
	workstations.Use(staff)
	{
		workstations.GET("", workstationHandler.ListWorkstations)
		workstations.GET("/:id", id, workstationHandler.GetWorkstation)
	}

	rejectReasons := r.Group("/reject_reasons")
	rejectReasons.Use(staff)
	{
		rejectReasons.GET("", rejectReasonHandler.ListRejectReasons)
		rejectReasons.GET("/:id", id, rejectReasonHandler.GetRejectReason)
	}

	maintenance := r.Group("/maintenance_logs")
	maintenance.Use(staff)
	{
		maintenance.GET("", maintenanceHandler.ListMaintenanceLogs)
		maintenance.POST("/create-logs", maintenanceHandler.CreateMaintenanceLog)
		maintenance.GET("/:id", id, maintenanceHandler.GetMaintenanceLog)
		maintenance.PUT("/update-logs/:id", id, maintenanceHandler.UpdateMaintenanceLog)
	}

	performance := r.Group("/performance")
	performance.Use(staff)
	{
		performance.POST("/create-performance", performanceHandler.CreatePerformance)
		performance.GET("/performance/:id", id, performanceHandler.GetPerformance)
		performance.PUT("/performance/:id", id, performanceHandler.UpdatePerformance)
	}

	orderFiles := r.Group("/order_files")
	orderFiles.Use(staff)
	{
		orderFiles.GET("/order/:order_id", middleware.RequireIDParam("order_id"), orderFileHandler.ListOrderFiles)
		orderFiles.GET("/file/:id", id, orderFileHandler.DownloadOrderFile)
		orderFiles.POST("/create-order-file", orderFileHandler.CreateOrderFile)
		orderFiles.PUT("/update-order-file/:id", id, orderFileHandler.UpdateOrderFile)
		orderFiles.DELETE("/delete-order-file/:id", id, orderFileHandler.DeleteOrderFile)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.GET("/users/:id", id, userHandler.GetUser)
		admin.PUT("/users/update_user/:id", id, userHandler.UpdateUser)
		admin.DELETE("/users/delete-user/:id", id, userHandler.DeleteUser)

		admin.POST("/orders/api/create-order", orderHandler.CreateOrder)
		admin.PUT("/orders/update-order/:id", id, orderHandler.UpdateOrder)
		admin.DELETE("/orders/delete-order/:id", id, orderHandler.DeleteOrder)

		admin.POST("/tasks/api/create-task", taskHandler.CreateTask)
		admin.DELETE("/delete-task/:id", id, taskHandler.DeleteTask)

		admin.POST("/workstations/create-workstation", workstationHandler.CreateWorkstation)
		admin.PUT("/workstations/update-workstation/:id", id, workstationHandler.UpdateWorkstation)
		admin.DELETE("/workstations/delete-workstation/:id", id, workstationHandler.DeleteWorkstation)

		admin.POST("/create-reject_reasons", rejectReasonHandler.CreateRejectReason)
		admin.PUT("/update-reject_reasons/:id", id, rejectReasonHandler.UpdateRejectReason)
		admin.DELETE("/delete-reject_reason/:id", id, rejectReasonHandler.DeleteRejectReason)

		admin.DELETE("/delete-log/:id", id, maintenanceHandler.DeleteMaintenanceLog)

		admin.GET("/performance", performanceHandler.ListPerformance)
		admin.DELETE("/delete-performance/:id", id, performanceHandler.DeletePerformance)
		admin.GET("/performance/by_user/:user_id", middleware.RequireIDParam("user_id"), performanceHandler.UserReport)
	}

	return r, nil
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			redisAddr,
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
