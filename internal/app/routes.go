package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/ghislainnkundayezu/notes-app-api/internal/auth"
	"github.com/ghislainnkundayezu/notes-app-api/internal/cache"
	"github.com/ghislainnkundayezu/notes-app-api/internal/config"
	"github.com/ghislainnkundayezu/notes-app-api/internal/handlers"
	"github.com/ghislainnkundayezu/notes-app-api/internal/repo"
	"github.com/ghislainnkundayezu/notes-app-api/internal/service"
	"github.com/ghislainnkundayezu/notes-app-api/internal/token"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	cookie := handlers.CookieSettings{
		Name:   cfg.Auth.CookieName,
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.CookieSecure,
	}

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, tokens, cookie)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAuth(tokens, cfg.Auth.CookieName))

	userHandler := handlers.NewUserHandler(userSvc)
	registerUserRoutes(protected, userHandler)

	noteCache := cache.NewNoteCache(rdb, cfg.Redis.DefaultTTL.Duration())
	categoryRepo := repo.NewPGCategoryRepo(db)
	categorySvc := service.NewCategoryService(categoryRepo, noteCache)
	categoryHandler := handlers.NewCategoryHandler(categorySvc)
	registerCategoryRoutes(protected, categoryHandler)

	noteRepo := repo.NewPGNoteRepo(db)
	noteSvc := service.NewNoteService(noteRepo, categorySvc, noteCache)
	noteHandler := handlers.NewNoteHandler(noteSvc, categorySvc)
	registerNoteRoutes(protected, noteHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Notes API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.GET("/users", h.Get)
	api.PATCH("/users", h.UpdateUsername)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.POST("/categories", h.Create)
	api.GET("/categories", h.List)
	api.PATCH("/categories/:categoryId", h.UpdateLabel)
	api.DELETE("/categories/:categoryId", h.Delete)
}

func registerNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	api.POST("/notes", h.Create)
	api.GET("/notes", h.List)
	api.GET("/notes/:noteId", h.Get)
	api.DELETE("/notes/:noteId", h.Delete)
	api.PATCH("/notes/:noteId/:fieldToUpdate", h.UpdateField)
}
