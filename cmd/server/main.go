package main

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/marblesound/marblesound-api/internal/audiometa"
	"github.com/marblesound/marblesound-api/internal/config"
	"github.com/marblesound/marblesound-api/internal/database"
	"github.com/marblesound/marblesound-api/internal/handlers"
	"github.com/marblesound/marblesound-api/internal/logger"
	"github.com/marblesound/marblesound-api/internal/middleware"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/marblesound/marblesound-api/internal/services"
	"github.com/marblesound/marblesound-api/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatalw("failed to run migrations", "error", err)
	}

	store, err := storage.New(cfg.StorageRoot)
	if err != nil {
		logger.Log.Fatalw("failed to initialize file storage", "error", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	credRepo := repository.NewCredentialRepository(db)
	vocabRepo := repository.NewVocabularyRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Services
	probe := func(relPath string) (float64, bool) {
		return audiometa.ProbeDuration(filepath.Join(cfg.StorageRoot, relPath))
	}
	authService := services.NewAuthService(userRepo, credRepo, cfg.BcryptCost)
	userService := services.NewUserService(userRepo, store)
	audioService := services.NewAudioService(audioRepo, vocabRepo, store, probe)
	playlistService := services.NewPlaylistService(playlistRepo, audioRepo, store)
	favoriteService := services.NewFavoriteService(favoriteRepo, audioRepo, playlistRepo)
	searchService := services.NewSearchService(audioRepo, playlistRepo)
	vocabService := services.NewVocabularyService(vocabRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, favoriteService, store)
	audioHandler := handlers.NewAudioHandler(audioService, searchService, store)
	playlistHandler := handlers.NewPlaylistHandler(playlistService, searchService, store)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	vocabHandler := handlers.NewVocabularyHandler(vocabService)
	fileHandler := handlers.NewFileHandler(store)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "MarbleSound API is running",
		})
	})

	api := r.Group("/api")
	{
		requireSession := middleware.RequireSession(authService)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireSession, authHandler.Logout)
		}

		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.GET("", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/favorites", userHandler.GetFavorites)
			users.PATCH("/me", requireSession, userHandler.UpdateProfile)
			users.PUT("/me/avatar", requireSession, userHandler.UpdateAvatar)
			users.DELETE("/me", requireSession, userHandler.DeleteUser)
		}

		audios := api.Group("/audios")
		{
			audios.POST("", requireSession, audioHandler.CreateAudio)
			audios.POST("/search", audioHandler.SearchAudios)
			audios.GET("/popular", audioHandler.PopularAudios)
			audios.GET("/:id", audioHandler.GetAudio)
			audios.PATCH("/:id", requireSession, audioHandler.UpdateAudio)
			audios.DELETE("/:id", requireSession, audioHandler.DeleteAudio)
		}

		playlists := api.Group("/playlists")
		{
			playlists.POST("", requireSession, playlistHandler.CreatePlaylist)
			playlists.GET("/popular", playlistHandler.PopularPlaylists)
			playlists.GET("/:id", playlistHandler.GetPlaylist)
			playlists.PATCH("/:id", requireSession, playlistHandler.UpdatePlaylist)
			playlists.PUT("/:id/cover", requireSession, playlistHandler.UpdateCover)
			playlists.DELETE("/:id", requireSession, playlistHandler.DeletePlaylist)
			playlists.POST("/:id/audios", requireSession, playlistHandler.AddAudio)
			playlists.DELETE("/:id/audios/:audio_id", requireSession, playlistHandler.RemoveAudio)
		}

		favorites := api.Group("/favorites")
		favorites.Use(requireSession)
		{
			favorites.POST("", favoriteHandler.AddFavorite)
			favorites.DELETE("", favoriteHandler.RemoveFavorite)
		}

		api.GET("/genres", vocabHandler.ListGenres)
		api.GET("/instruments", vocabHandler.ListInstruments)
		api.GET("/keys", vocabHandler.ListKeys)
		api.GET("/files/*path", fileHandler.ServeFile)
	}

	logger.Log.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("failed to start server", "error", err)
	}
}
