package routes

import (
	"net/http"

	"github.com/O-Gamal/FIlePlace/internal/app"
	"github.com/O-Gamal/FIlePlace/internal/handler"
	"github.com/O-Gamal/FIlePlace/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	user := handler.NewUserHandler(app.IdentityService)
	file := handler.NewFileHandler(app.ListingService, app.UploadService, app.FileService, app.FavoriteService, app.TrashService)
	webhook := handler.NewWebhookHandler(app.IdentityService, app.Cfg.IdentityIssuer, app.Cfg.IdentityWebhookSecret)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Health)

	// Users
	mux.HandleFunc("GET /me", user.Me)
	mux.HandleFunc("GET /users/{id}/profile", user.Profile)

	// Files
	mux.HandleFunc("GET /files", file.List)
	mux.HandleFunc("POST /files/upload-url", file.UploadURL)
	mux.HandleFunc("POST /files", file.Create)
	mux.HandleFunc("GET /files/{id}/url", file.DownloadURL)
	mux.HandleFunc("POST /files/{id}/favorite", file.ToggleFavorite)
	mux.HandleFunc("POST /files/{id}/trash", file.ToggleTrash)
	mux.HandleFunc("DELETE /files/{id}", file.Delete)

	// Identity provider lifecycle events
	mux.HandleFunc("POST /webhooks/identity", webhook.Identity)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.IdentityService, app.Cfg.JWTSecret, app.Cfg.IdentityIssuer),
	)

	return handler
}
