package routes

import (
	"time"

	"liblend/internal/adapters/http/handlers"
	"liblend/internal/adapters/http/middleware"
	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/config"
	"liblend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	bookRepo := repositories.NewBookRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	staffUserRepo := repositories.NewStaffUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(staffUserRepo, refreshTokenRepo, cfg)
	bookService := services.NewBookService(bookRepo, loanRepo)
	memberService := services.NewMemberService(memberRepo, loanRepo)
	lendingService := services.NewLendingService(loanRepo, bookRepo, memberRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	bookHandler := handlers.NewBookHandler(bookService)
	memberHandler := handlers.NewMemberHandler(memberService)
	loanHandler := handlers.NewLoanHandler(lendingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Book routes (public reads, librarian writes)
	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, cfg)

	// Member routes (librarian only)
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	memberRoutes.Use(middleware.LibrarianOrAdmin())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Loan routes (librarian only)
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Use(middleware.LibrarianOrAdmin())
	loanRoutes.Use(middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	// Dashboard routes (librarian only)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.LibrarianOrAdmin())
	dashboardRoutes.Get("/", dashboardHandler.GetDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Post("/change-password", middleware.AuthMiddleware(cfg), handler.ChangePassword)
	router.Get("/users",
		middleware.AuthMiddleware(cfg),
		middleware.AdminOnly(),
		handler.ListStaff,
	)
	router.Post("/register",
		middleware.AuthMiddleware(cfg),
		middleware.AdminOnly(),
		handler.Register,
	)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, cfg *config.Config) {
	// Public catalog reads, cached briefly
	catalogCache := middleware.CacheControl(1 * time.Minute)
	router.Get("/", catalogCache, handler.List)
	router.Get("/available", catalogCache, handler.GetAvailable)
	router.Get("/isbn/:isbn", catalogCache, handler.GetByISBN)
	router.Get("/search/title/:title", catalogCache, handler.SearchByTitle)
	router.Get("/search/author/:author", catalogCache, handler.SearchByAuthor)
	router.Get("/category/:category", catalogCache, handler.GetByCategory)
	router.Get("/:id", catalogCache, handler.GetByID)

	// Librarian writes
	auth := middleware.AuthMiddleware(cfg)
	librarian := middleware.LibrarianOrAdmin()
	router.Post("/", auth, librarian, handler.Create)
	router.Put("/:id", auth, librarian, handler.Update)
	router.Post("/:id/add-copies", auth, librarian, handler.AddCopies)
	router.Delete("/:id", auth, middleware.AdminOnly(), handler.Delete)
}

// setupMemberRoutes configures membership routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Post("/", handler.Register)
	router.Get("/", handler.List)
	router.Get("/active", handler.GetActive)
	router.Get("/search/:name", handler.SearchByName)
	router.Get("/email/:email", handler.GetByEmail)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.UpdateContact)
	router.Post("/:id/suspend", handler.Suspend)
	router.Post("/:id/reactivate", handler.Reactivate)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupLoanRoutes configures lending routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/", handler.Checkout)
	router.Get("/", handler.List)
	router.Get("/active", handler.GetActive)
	router.Get("/overdue", handler.GetOverdue)
	router.Get("/member/:memberId", handler.GetByMember)
	router.Get("/book/:bookId", handler.GetByBook)
	router.Get("/:id", handler.GetByID)
	router.Post("/:id/return", handler.Return)
	router.Post("/:id/renew", handler.Renew)
	router.Post("/:id/lost", handler.MarkLost)
}
