package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/opsboard/biz/handler"
	"github.com/yi-nology/opsboard/biz/handler/version"
	"github.com/yi-nology/opsboard/biz/middleware"
	"github.com/yi-nology/opsboard/biz/router"
	"github.com/yi-nology/opsboard/biz/service"
	"github.com/yi-nology/opsboard/biz/service/seed"
	"github.com/yi-nology/opsboard/pkg/config"
	"github.com/yi-nology/opsboard/pkg/database"
	"github.com/yi-nology/opsboard/pkg/lock"
	"github.com/yi-nology/opsboard/pkg/redis"
	"github.com/yi-nology/opsboard/pkg/storage"
)

// Set with -ldflags "-X main.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	version.AppVersion = Version
	version.AppGitCommit = GitCommit
	version.AppBuildTime = BuildTime

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Init] load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("[Init] open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[Init] migrate: %v", err)
	}

	ctx := context.Background()
	opts := seed.OptionsFromConfig(cfg.Seed)
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("[Init] connect redis: %v", err)
	}
	if redisClient != nil {
		opts.Lock = lock.New(redisClient, lock.SeedLockKey, 5*time.Minute, 6*time.Minute)
		middleware.InitWriteLock(lock.New(redisClient, lock.WriteLockKey, 30*time.Second, 10*time.Second))
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("[Init] open storage: %v", err)
	}
	catalog, err := seed.LoadCatalog(ctx, store, cfg.Seed.CatalogKey)
	if err != nil {
		log.Fatalf("[Init] load seed catalog: %v", err)
	}
	version.SetCatalog(catalog.Version)
	log.Printf("[Init] Seed catalog %s (mode=%s, ops_data=%v, random_seed=%d)",
		catalog.Version, opts.Mode, opts.OpsData, opts.RandomSeed)

	seeder := seed.NewSeeder(db, catalog, opts)
	if err := service.EnsureSeedData(ctx, seeder); err != nil {
		log.Fatalf("[Init] seed data: %v", err)
	}

	h := server.New(server.WithHostPorts(cfg.Server.Address))
	h.Use(
		middleware.Recovery(),
		middleware.CORS(&cfg.CORS),
		middleware.Auth(),
		middleware.Logging(),
	)
	router.RegisterOpsRoutes(h, handler.NewOpsHandler(service.NewService(db, seeder)))

	log.Printf("[Init] opsboard %s listening on %s", Version, cfg.Server.Address)
	h.Spin()
}
