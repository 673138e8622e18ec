package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/billyautos/showroom/internal/analytics"
	"github.com/billyautos/showroom/internal/auth"
	"github.com/billyautos/showroom/internal/config"
	"github.com/billyautos/showroom/internal/db"
	"github.com/billyautos/showroom/internal/favorites"
	"github.com/billyautos/showroom/internal/fleet"
	"github.com/billyautos/showroom/internal/handlers"
	"github.com/billyautos/showroom/internal/middleware"
	"github.com/billyautos/showroom/internal/notify"
	"github.com/billyautos/showroom/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}
	cfg := config.Load()
	ctx := context.Background()

	bus := newBus(cfg)
	defer bus.Close()

	store := newStore(ctx, cfg, bus)
	defer store.Close(ctx)

	sessions := newSessionStore(cfg)
	defer sessions.Close()

	fleetSvc, err := fleet.NewService(ctx, store, cfg.SeedSize)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize fleet")
	}
	favoritesSvc := favorites.NewService(store)
	analyticsSvc := analytics.NewService(ctx, store, sessions)

	// Every write of the durable medium, ours or another instance's, funnels
	// into these reloads.
	bus.Subscribe(notify.EntityFleet, func() { fleetSvc.Reload(ctx) })
	bus.Subscribe(notify.EntityFavorites, func() { favoritesSvc.Reload() })
	bus.Subscribe(notify.EntityAnalytics, func() { analyticsSvc.Reload(ctx) })

	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set, admin login disabled")
	}
	authSvc := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry, cfg.AdminUsername, cfg.AdminPasswordHash)

	router := handlers.NewRouter(handlers.RouterDeps{
		Cars:              handlers.NewCarHandler(fleetSvc, analyticsSvc, cfg.WhatsAppPhone),
		Admin:             handlers.NewAdminHandler(fleetSvc, analyticsSvc),
		Favorites:         handlers.NewFavoritesHandler(favoritesSvc, fleetSvc),
		Auth:              handlers.NewAuthHandler(authSvc),
		Visits:            handlers.NewVisitHandler(analyticsSvc),
		AuthMiddleware:    middleware.NewAuthMiddleware(authSvc),
		SessionMiddleware: middleware.NewSessionMiddleware(),
		RateLimit:         middleware.NewRateLimitMiddleware(),
	})

	log.WithFields(log.Fields{
		"addr":   cfg.HTTPAddr,
		"driver": cfg.StorageDriver,
		"cars":   len(fleetSvc.List()),
	}).Info("Showroom listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.WithError(err).Fatal("HTTP server stopped")
	}
}

// newStore selects the persistence strategy. Exactly one is active per
// process.
func newStore(ctx context.Context, cfg config.Config, bus notify.Bus) db.Store {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(cfg.MongoURI)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		store := db.NewMongoStore(client, cfg.MongoDB, bus)
		if err := store.Watch(ctx); err != nil {
			log.WithError(err).Warn("Change stream unavailable, relying on write notifications only")
		}
		return store
	case config.DriverLocal:
		store, err := db.NewLocalStore(cfg.DataDir, bus)
		if err != nil {
			log.WithError(err).Fatal("Failed to open local store")
		}
		return store
	default:
		log.WithField("driver", cfg.StorageDriver).Fatal("Unknown storage driver")
		return nil
	}
}

func newBus(cfg config.Config) notify.Bus {
	if cfg.MQTTBroker == "" {
		return notify.NewInProcessBus()
	}
	hostname, _ := os.Hostname()
	bus, err := notify.NewMQTTBus(cfg.MQTTBroker, "showroom-"+hostname)
	if err != nil {
		log.WithError(err).Warn("MQTT broker unreachable, falling back to in-process notifications")
		return notify.NewInProcessBus()
	}
	return bus
}

func newSessionStore(cfg config.Config) session.Store {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	store, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.SessionTTL)
	if err != nil {
		log.WithError(err).Warn("Redis unreachable, falling back to in-memory session markers")
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	return store
}
