package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/gangetabel-api/internal/config"
	"github.com/yourusername/gangetabel-api/internal/handler"
	"github.com/yourusername/gangetabel-api/internal/middleware"
	pgRepo "github.com/yourusername/gangetabel-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/gangetabel-api/internal/repository/redis"
	"github.com/yourusername/gangetabel-api/internal/service"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
	"github.com/yourusername/gangetabel-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis.
	// Недоступный Redis не мешает запуску: удаленное хранилище лидерборда
	// считается ненадежным, сервис деградирует в локальный режим, а клиент
	// переподключится лениво, когда Redis появится.
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		if redisClient == nil {
			log.Printf("Failed to create Redis client: %v", err)
			os.Exit(1)
		}
		log.Printf("Предупреждение: Redis недоступен, лидерборд работает в локальном режиме: %v", err)
	} else {
		log.Println("Successfully connected to Redis")
	}

	// Инициализируем репозитории
	sessionRepo := pgRepo.NewSessionRepo(db)
	leaderboardRepo := pgRepo.NewLeaderboardRepo(db)

	remoteStore, err := redisRepo.NewRemoteStore(redisClient, cfg.Leaderboard.RemoteKey)
	if err != nil {
		log.Printf("Failed to initialize RemoteStore: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	gameConfig := gameplay.DefaultConfig()
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, remoteStore, gameConfig)
	gameService := service.NewGameService(sessionRepo, leaderboardService, gameConfig)

	// Инициализируем обработчики
	gameHandler := handler.NewGameHandler(gameService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	// Инициализируем middleware
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	if isProduction {
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://gangetabel.vercel.app", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.SessionIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Игровая сессия: все маршруты кроме создания требуют X-Session-ID
		sessionGroup := api.Group("/session")
		{
			sessionGroup.POST("", gameHandler.StartSession)

			withSession := sessionGroup.Group("")
			withSession.Use(middleware.RequireSessionID())
			{
				withSession.GET("", gameHandler.GetState)
				withSession.POST("/name", gameHandler.SubmitName)
				withSession.POST("/table", gameHandler.ChooseTable)
				withSession.POST("/answer", rateLimiter.Limit(middleware.AnswerRateLimitConfig()), gameHandler.SubmitAnswer)
				withSession.POST("/restart", gameHandler.Restart)
				withSession.DELETE("", gameHandler.Reset)
			}
		}

		// Лидерборд (публичные маршруты)
		leaderboardGroup := api.Group("/leaderboard")
		{
			leaderboardGroup.GET("", leaderboardHandler.GetLeaderboard)
			leaderboardGroup.GET("/export", leaderboardHandler.Export)
			leaderboardGroup.POST("", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), leaderboardHandler.SubmitEntry)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера.
	// Таймаут также дает фоновым отправкам в лидерборд шанс завершиться.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
