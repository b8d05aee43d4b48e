package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/bakery-storefront/internal/adapter/handler"
	"github.com/rl1809/bakery-storefront/internal/adapter/storage"
	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/core/service"
	"github.com/rl1809/bakery-storefront/internal/port"
	"github.com/rl1809/bakery-storefront/pkg/config"
	"github.com/rl1809/bakery-storefront/pkg/logger"
	"github.com/rl1809/bakery-storefront/pkg/shutdown"
)

const shutdownTimeout = 5 * time.Second

type backends struct {
	carts       port.CartRepository
	sessions    port.SessionRepository
	submissions port.SubmissionRepository
	pingers     []handler.Pinger
	closers     []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger not configured yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Service: "bakery-storefront", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := shutdown.WithSignals(context.Background(), log.Named("shutdown"))
	defer cancel()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}

	// Initialize storefront
	notices := handler.NewNoticeBoard(handler.DefaultNoticeCapacity, cfg.SessionTTL, log.Named("notices"))
	store := service.NewStorefront(ctx, service.StorefrontDeps{
		Catalog:     domain.BakeryCatalog(),
		Carts:       b.carts,
		Sessions:    b.sessions,
		Submissions: b.submissions,
		Confirmer:   handler.ContextConfirmer{},
		Notifier:    notices,
		Logger:      log,
		SessionTTL:  cfg.SessionTTL,
	})

	// Start event loop
	loop := service.NewEventLoop(cfg.EventQueueSize, log.Named("loop"))
	var loopWG sync.WaitGroup
	loopWG.Add(1)
	go func() {
		defer loopWG.Done()
		loop.Run()
	}()

	// Initialize gRPC health server
	grpcServer := grpc.NewServer()
	health := handler.NewHealthHandler(handler.PingerFunc(func(ctx context.Context) error {
		for _, p := range b.pingers {
			if err := p.Ping(ctx); err != nil {
				return err
			}
		}
		return nil
	}), cfg.HealthInterval, log.Named("health"))
	health.Register(grpcServer)
	go health.Watch(ctx)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}
	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(store, loop, notices, log.Named("http"))
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(httpHandler, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...", zap.NamedError("cause", context.Cause(ctx)))

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown", zap.Error(err))
	}
	log.Info("HTTP server stopped")

	// Stop gRPC server
	health.Shutdown()
	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")

	// Drain pending events so accepted mutations reach storage
	loop.Close()
	loopWG.Wait()
	log.Info("event loop stopped")

	// Close connections
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
	}
	log.Info("connections closed")
}

func openBackends(ctx context.Context, cfg config.Config, log *zap.Logger) (*backends, error) {
	b := &backends{}

	var mem *storage.MemoryAdapter
	if cfg.StorageBackend == config.BackendMemory {
		mem = storage.NewMemoryAdapter()
		b.carts, b.sessions = mem, mem
		b.pingers = append(b.pingers, mem)
		log.Warn("using in-memory storage; state is lost on restart")
	}

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, PoolSize: 20})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		b.closers = append(b.closers, rdb.Close)

		redisAdapter := storage.NewRedisAdapter(rdb, cfg.SessionTTL)
		if cfg.StorageBackend == config.BackendRedis {
			b.carts, b.sessions = redisAdapter, redisAdapter
		}
		if cfg.SubmissionBackend == config.BackendRedis {
			b.submissions = redisAdapter
		}
		b.pingers = append(b.pingers, redisAdapter)
	}

	switch cfg.SubmissionBackend {
	case config.BackendMemory:
		b.submissions = mem
	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("connected to mysql")
		b.closers = append(b.closers, db.Close)

		mysqlAdapter := storage.NewMySQLAdapter(db)
		b.submissions = mysqlAdapter
		b.pingers = append(b.pingers, mysqlAdapter)
	}

	return b, nil
}
