package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotReservation/internal/config"
	catalogCache "github.com/m04kA/SMC-SlotReservation/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-SlotReservation/internal/infra/storage/schema"
	serviceRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/service"
	timeslotRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SlotReservation/internal/seed"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
	"github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
	"github.com/m04kA/SMC-SlotReservation/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config.toml")
	fixturePath := flag.String("fixture", "fixtures.yaml", "path to YAML fixture")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	zone, err := civiltime.Load(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	file, err := os.Open(*fixturePath)
	if err != nil {
		log.Fatal("Failed to open fixture: %v", err)
	}
	defer file.Close()

	fixture, err := seed.Decode(file)
	if err != nil {
		log.Fatal("Failed to read fixture %s: %v", *fixturePath, err)
	}
	plans, err := fixture.Plan(zone)
	if err != nil {
		log.Fatal("Invalid fixture %s: %v", *fixturePath, err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	ctx := context.Background()
	wrappedDB := dbmetrics.Wrap(db, nil)

	if cfg.Database.AutoMigrate {
		if err := schema.Apply(ctx, wrappedDB); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
	}

	loader := seed.NewLoader(
		serviceRepo.NewRepository(wrappedDB),
		timeslotRepo.NewRepository(wrappedDB),
		txmanager.NewTransactionManager(wrappedDB),
		log,
	)

	stats, err := loader.Load(ctx, plans)
	if err != nil {
		log.Fatal("Failed to load fixture: %v", err)
	}

	log.Info("Fixture loaded: services=%d, slots_created=%d, slots_skipped=%d",
		stats.Services, stats.SlotsCreated, stats.SlotsSkipped)

	// Каталог изменился, сбрасываем кэш сервиса
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		cache := catalogCache.NewCache(rdb, cfg.Redis.CatalogTTL(), cfg.Metrics.ServiceName)
		if err := cache.Invalidate(ctx); err != nil {
			log.Warn("Failed to invalidate catalog cache: %v", err)
		} else {
			log.Info("Catalog cache invalidated")
		}
	}
}
