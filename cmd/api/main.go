package main

import (
	"log"
	"net/http"
	"time"

	_ "biblioteca-backend/docs" // swagger docs

	"biblioteca-backend/internal/cache"
	"biblioteca-backend/internal/catalog"
	"biblioteca-backend/internal/config"
	"biblioteca-backend/internal/db"
	"biblioteca-backend/internal/handler"
	"biblioteca-backend/internal/repository"
	"biblioteca-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Biblioteca Personal API
// @version 1.0
// @description API de biblioteca/wishlist con recomendaciones por contenido (Google Books, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// catálogo externo (Google Books)
	books := catalog.NewClient(
		cfg.GoogleBooksURL,
		cfg.GoogleBooksKey,
		time.Duration(cfg.CatalogTimeoutMS)*time.Millisecond,
	)

	// repos
	userRepo := repository.NewUserRepository()
	resetRepo := repository.NewResetTokenRepository()
	bookRepo := repository.NewBookRepository()
	libraryRepo := repository.NewLibraryRepository()
	wishlistRepo := repository.NewWishlistRepository()
	recRepo := repository.NewRecommendationRepository()

	// services
	authSvc := service.NewAuthService(userRepo, resetRepo, cfg.JWTSecret)
	bookSvc := service.NewBookService(bookRepo, books)
	librarySvc := service.NewLibraryService(bookRepo, libraryRepo, wishlistRepo, books)
	// motor de recomendaciones: biblioteca como fuente, Redis como caché de
	// sesión, Mongo como historial
	recSvc := service.NewRecommendService(librarySvc, cache.NewRecStore(), recRepo, books)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	bookH := handler.NewBookHandler(bookSvc)
	libraryH := handler.NewLibraryHandler(librarySvc)
	recH := handler.NewRecommendHandler(recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)
	r.Post("/auth/reset-request", authH.ResetRequest)
	r.Post("/auth/reset-confirm", authH.ResetConfirm)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// búsqueda y detalle contra el catálogo
		r.Get("/books/search", bookH.Search)
		r.Get("/books/{id}", bookH.Detail)

		r.Route("/me", func(r chi.Router) {
			r.Put("/profile", authH.UpdateProfile)

			r.Get("/library", libraryH.ListLibrary)
			r.Post("/library", libraryH.AddToLibrary)
			r.Delete("/library/{id}", libraryH.RemoveFromLibrary)

			r.Get("/wishlist", libraryH.ListWishlist)
			r.Post("/wishlist", libraryH.AddToWishlist)
			r.Delete("/wishlist/{id}", libraryH.RemoveFromWishlist)

			r.Get("/recommendations", recH.GetRecommendations)
			r.Get("/recommendations/history", recH.GetHistory)

			// WebSocket con progreso
			r.Get("/ws/recommendations", recH.GetRecommendationsWS)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
