package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/gangetabel-api/internal/config"
	pgRepo "github.com/yourusername/gangetabel-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/gangetabel-api/internal/repository/redis"
	"github.com/yourusername/gangetabel-api/internal/service"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
	"github.com/yourusername/gangetabel-api/pkg/database"
)

// Одноразовый инструмент восстановления удаленного лидерборда.
// Берет все записи из локального кеша PostgreSQL и сливает их в удаленное
// хранилище тем же путем read-merge-write, что и основной сервис.
// Полезен после очистки или порчи данных на удаленной стороне.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		// В отличие от API-сервера, здесь недоступный Redis фатален:
		// синхронизировать не с чем.
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	leaderboardRepo := pgRepo.NewLeaderboardRepo(db)
	remoteStore, err := redisRepo.NewRemoteStore(redisClient, cfg.Leaderboard.RemoteKey)
	if err != nil {
		log.Fatalf("Failed to initialize RemoteStore: %v", err)
	}

	leaderboardService := service.NewLeaderboardService(leaderboardRepo, remoteStore, gameplay.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	synced, err := leaderboardService.SyncLocalToRemote(ctx)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	fmt.Printf("Success! %d local entries merged into remote leaderboard.\n", synced)
}
