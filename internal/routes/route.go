package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/config"
	"github.com/joshua-takyi/celebration/internal/container"
	"github.com/joshua-takyi/celebration/internal/handlers"
	"github.com/joshua-takyi/celebration/internal/middleware"
	"github.com/joshua-takyi/celebration/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(middleware.Recovery(container.Logger))

	if cfg.StorageBackend == config.StorageLocal {
		r.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	requireAuth := middleware.AuthMiddleware(container.AuthService, container.Logger)
	requireAdmin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "celebration-api",
			})
		})

		api.POST("/auth/login", handlers.Login(container.AuthService))
		api.POST("/login", handlers.Login(container.AuthService))
		api.GET("/auth/me", requireAuth, handlers.Me())
		api.POST("/auth/register", requireAuth, requireAdmin, handlers.Register(container.AuthService))

		events := api.Group("/events")
		{
			events.GET("", handlers.ListDocuments(container.EventService))
			events.GET("/:id", handlers.GetDocument(container.EventService))
			events.POST("", requireAuth, requireAdmin, handlers.CreateDocument(container.EventService))
			events.PUT("/:id", requireAuth, requireAdmin, handlers.UpdateDocument(container.EventService))
			events.DELETE("/:id", requireAuth, requireAdmin, handlers.DeleteDocument(container.EventService))
		}

		contacts := api.Group("/contacts")
		{
			contacts.GET("", handlers.ListDocuments(container.ContactService))
			contacts.GET("/:id", handlers.GetDocument(container.ContactService))
			contacts.POST("", requireAuth, requireAdmin, handlers.CreateDocument(container.ContactService))
			contacts.PUT("/:id", requireAuth, requireAdmin, handlers.UpdateDocument(container.ContactService))
			contacts.DELETE("/:id", requireAuth, requireAdmin, handlers.DeleteDocument(container.ContactService))
		}

		reminders := api.Group("/reminders")
		{
			reminders.GET("", handlers.ListDocuments(container.ReminderService))
			reminders.GET("/:id", handlers.GetDocument(container.ReminderService))
			reminders.POST("", requireAuth, requireAdmin, handlers.CreateDocument(container.ReminderService))
			reminders.PUT("/:id", requireAuth, requireAdmin, handlers.UpdateDocument(container.ReminderService))
			reminders.DELETE("/:id", requireAuth, requireAdmin, handlers.DeleteDocument(container.ReminderService))
		}

		notes := api.Group("/notes")
		{
			notes.GET("", handlers.ListDocuments(container.NoteService))
			notes.GET("/:id", handlers.GetDocument(container.NoteService))
			notes.POST("", requireAuth, requireAdmin, handlers.CreateDocument(container.NoteService))
			notes.PUT("/:id", requireAuth, requireAdmin, handlers.UpdateDocument(container.NoteService))
			notes.DELETE("/:id", requireAuth, requireAdmin, handlers.DeleteDocument(container.NoteService))
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("", handlers.ListGallery(container.GalleryService))
			gallery.GET("/:id", handlers.GetGalleryImage(container.GalleryService))
			gallery.POST("", requireAuth, requireAdmin, handlers.UploadGalleryImage(container.GalleryService))
			gallery.PUT("/:id", requireAuth, requireAdmin, handlers.UpdateGalleryImage(container.GalleryService))
			gallery.DELETE("/:id", requireAuth, requireAdmin, handlers.DeleteGalleryImage(container.GalleryService))
		}

		settings := api.Group("/settings")
		{
			settings.GET("", handlers.GetSettings(container.SettingsService))
			settings.PUT("", requireAuth, requireAdmin, handlers.UpdateSettings(container.SettingsService))
			settings.PUT("/:key", requireAuth, requireAdmin, handlers.UpdateSetting(container.SettingsService))
		}

		imports := api.Group("/import", requireAuth, requireAdmin)
		{
			imports.POST("/events", handlers.ImportDocuments(container.EventService))
			imports.POST("/contacts", handlers.ImportDocuments(container.ContactService))
			imports.POST("/reminders", handlers.ImportDocuments(container.ReminderService))
		}
	}

	r.NoRoute(spaFallback(cfg.StaticDir))

	return r
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// spaFallback serves files from staticDir and answers every other GET with index.html so
// client-side routes resolve. Unknown /api paths get a JSON 404 instead.
func spaFallback(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if isAPIPath(reqPath) {
			c.JSON(http.StatusNotFound, models.ErrorResponse("API route not found: "+reqPath))
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Not found"))
			return
		}

		clean := path.Clean("/" + reqPath)
		if clean != "/" {
			file := filepath.Join(staticDir, filepath.FromSlash(clean))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Not found"))
			return
		}
		c.File(index)
	}
}
