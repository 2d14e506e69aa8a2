package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"time"

	"github.com/emrgen/jobpost/internal/cache"
	"github.com/emrgen/jobpost/internal/config"
	"github.com/emrgen/jobpost/internal/jobs"
	"github.com/emrgen/jobpost/internal/module"
	"github.com/emrgen/jobpost/internal/queue"
	"github.com/emrgen/jobpost/internal/service"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Server represents the server
type Server struct {
	cfg *config.Config
}

// NewServer creates a new server
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Start starts the server and blocks until it is stopped by a signal.
func (s *Server) Start() {
	if err := Start(s.cfg); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// App holds the wired services of a running server.
type App struct {
	Posts    *service.JobPostService
	Handlers *Handlers
	Verifier *module.TokenVerifier
	Queue    queue.JobPostQueue
}

// NewApp wires the services over db. A nil redis client falls back to the
// nop cache and the in-process change queue.
func NewApp(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	codec, err := cfg.Compressor()
	if err != nil {
		return nil, err
	}

	postStore := store.NewGormStore(db)
	if err := postStore.Migrate(); err != nil {
		return nil, err
	}

	var (
		postCache cache.JobPostCache = cache.NewNopJobPostCache()
		kv        cache.KV           = cache.NopKV{}
		changes   queue.JobPostQueue = queue.NewLocalJobPostQueue()
	)
	if rdb != nil {
		postCache = cache.NewRedisJobPostCache(rdb, codec)
		kv = cache.NewRedis(rdb)
		changes = queue.NewRedisJobPostQueue(rdb)
	} else {
		logrus.Warn("no redis configured, caching is disabled")
	}

	var gen service.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := service.NewGenAIGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		gen = g
	} else {
		logrus.Warn("GEMINI_API_KEY is not set, chat is disabled")
	}

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set, admin endpoints are disabled")
	}

	posts := service.NewJobPostService(codec, postStore, postCache, changes)

	return &App{
		Posts:    posts,
		Handlers: NewHandlers(posts, postStore, service.NewChatService(gen, kv)),
		Verifier: module.NewTokenVerifier(cfg.JWTSecret),
		Queue:    changes,
	}, nil
}

// Start starts the http server, the change listener and the scheduled tasks.
func Start(cfg *config.Config) error {
	config.SetupLogging(cfg)
	gin.SetMode(gin.ReleaseMode)

	// listen for interrupt signal to gracefully shut down the server
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	defer stop()

	db, err := config.OpenDb(cfg)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, cfg, db, config.GetRedis(cfg))
	if err != nil {
		return err
	}

	executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
		jobs.NewClosedPostSweeper(cfg.SweepSchedule, app.Posts),
		jobs.NewRevisionPruner(cfg.PruneSchedule, cfg.KeepRevisions, app.Posts),
	})
	if err := executor.Run(); err != nil {
		return err
	}
	defer executor.Stop()

	httpPort := ":" + cfg.HTTPPort
	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	restServer := &http.Server{
		Handler:           withCors(NewRouter(app.Handlers, app.Verifier)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Info("starting http server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting http server: %w", err)
		}
		logrus.Infof("http server stopped")
		return nil
	})

	g.Go(func() error {
		return listenChanges(gctx, app)
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Infof("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := restServer.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("error stopping http server: %v", err)
		}
		return nil
	})

	logrus.Infof("Press Ctrl+C to stop the server")

	return g.Wait()
}

// listenChanges drops cached posts changed by any instance.
func listenChanges(ctx context.Context, app *App) error {
	changes, err := app.Queue.Subscribe(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error subscribing to job post changes: %w", err)
	}

	for change := range changes {
		logrus.Debugf("job post %d %s", change.ID, change.Kind)
		app.Posts.Invalidate(ctx, change)
	}

	return nil
}
