package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/daybook/journal-api/docs"
	"github.com/daybook/journal-api/internal/api/handler"
	"github.com/daybook/journal-api/internal/api/middleware"
	"github.com/daybook/journal-api/internal/core/service"
	"github.com/daybook/journal-api/internal/core/token"
	mongodb "github.com/daybook/journal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/daybook/journal-api/internal/infrastructure/db/redis"
	"github.com/daybook/journal-api/internal/infrastructure/http/handlers"
	"github.com/daybook/journal-api/internal/render"
)

// RouterDeps carries the externally constructed collaborators the
// router wires together. Nothing here is global: the DB handle and the
// token codec (holding the signing secret) are created once in main
// and injected.
type RouterDeps struct {
	DB       *mongo.Database
	Redis    *redis.Client
	Codec    *token.Codec
	Uploader handler.Uploader
	// UploadDir is mounted under /uploads for avatar serving.
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	// HTML forms cannot submit PUT/DELETE; the templates append
	// ?_method= the way the original frontend did.
	e.Pre(echomiddleware.MethodOverrideWithConfig(echomiddleware.MethodOverrideConfig{
		Getter: echomiddleware.MethodFromQuery("_method"),
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("journal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	postRepo := mongodb.NewPostRepository(deps.DB)
	todoRepo := mongodb.NewTodoRepository(deps.DB)
	searchCache := redisdb.NewSearchCache(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Codec, deps.Logger)
	journalService := service.NewJournalService(postRepo, todoRepo, searchCache, deps.Logger)
	profileService := service.NewProfileService(userRepo, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, deps.Codec)
	journalHandler := handler.NewJournalHandler(journalService, profileService)
	profileHandler := handler.NewProfileHandler(profileService, deps.Uploader)

	page := middleware.RequirePage(deps.Codec, "/login")
	apiAuth := middleware.RequireAPI(deps.Codec)

	// --- Public routes ---
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)

	// --- Page routes (redirect to /login on auth failure) ---
	e.GET("/", journalHandler.Main, page)
	e.GET("/date", journalHandler.ByDate, page)
	e.GET("/write", journalHandler.WritePage, page)
	e.GET("/todowrite", journalHandler.TodoWritePage, page)
	e.POST("/add", journalHandler.AddPost, page)
	e.POST("/todoadd", journalHandler.AddTodo, page)
	e.GET("/edit/:id", journalHandler.EditPage, page)
	e.PUT("/edit", journalHandler.Edit, page)
	e.GET("/search", journalHandler.Search, page)
	e.GET("/mypage", profileHandler.MyPage, page)

	// --- API-style routes (401 on auth failure) ---
	e.GET("/dashboard", authHandler.Dashboard, apiAuth)
	e.PUT("/check/:id", journalHandler.Check, apiAuth)
	e.DELETE("/delete", journalHandler.Delete, apiAuth)
	e.PUT("/mypage", profileHandler.Update, apiAuth)

	// --- Static avatars ---
	e.Static("/uploads", deps.UploadDir)

	// --- Health probes and operational endpoints (no auth) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
