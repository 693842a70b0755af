package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LanSanter/GO-game-proj/internal/adapters"
	"github.com/LanSanter/GO-game-proj/internal/bootstrap"
	authDelivery "github.com/LanSanter/GO-game-proj/internal/delivery/auth"
	gameDelivery "github.com/LanSanter/GO-game-proj/internal/delivery/game"
	ownMiddleware "github.com/LanSanter/GO-game-proj/internal/middleware"
	repo "github.com/LanSanter/GO-game-proj/internal/repository"
)

const shutdownTimeout = 15 * time.Second

type mainDeliveryHandler struct {
	game *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	databaseAdapters, err := initDatabaseAdapters(ctx, logger, cfg)
	if err != nil {
		logger.Errorf("Failed to initialize database adapters: %v", err)
		os.Exit(1)
	}
	defer databaseAdapters.close(logger)

	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("http shutdown: %v", err)
		}
		return handlers.game.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Server stopped with error: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.game.Health)
	r.Get("/ws", h.game.HandleWS)
	r.Put("/decks", h.game.HandleSaveDeck)
	r.Get("/records/{id}", h.game.HandleRecord)
	r.Get("/records/{id}/sgf", h.game.HandleRecordSGF)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, err
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

func (d *dataBaseAdapters) close(log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.mongoAdapter.Close(ctx); err != nil {
		log.Warnf("mongo close: %v", err)
	}
	if err := d.redisAdapter.Close(ctx); err != nil {
		log.Warnf("redis close: %v", err)
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	redisClient := databaseAdapters.redisAdapter.GetClient()
	authDeliveryHandler := authDelivery.NewAuthHandler(repo.NewSessionRedisStorage(redisClient), log)
	gameDeliveryHandler := gameDelivery.NewGameHandler(
		cfg,
		log,
		repo.NewGameRepository(log, databaseAdapters.mongoAdapter.Database),
		repo.NewDeckRedisStorage(redisClient),
		authDeliveryHandler,
	)

	return &mainDeliveryHandler{
		game: gameDeliveryHandler,
	}
}
