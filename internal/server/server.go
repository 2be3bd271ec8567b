package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/app/games"
	"github.com/preston-bernstein/saturday-stats/internal/app/teams"
	"github.com/preston-bernstein/saturday-stats/internal/config"
	domaingames "github.com/preston-bernstein/saturday-stats/internal/domain/games"
	domainteams "github.com/preston-bernstein/saturday-stats/internal/domain/teams"
	"github.com/preston-bernstein/saturday-stats/internal/feed"
	"github.com/preston-bernstein/saturday-stats/internal/highlights"
	httpserver "github.com/preston-bernstein/saturday-stats/internal/http"
	"github.com/preston-bernstein/saturday-stats/internal/http/handlers"
	"github.com/preston-bernstein/saturday-stats/internal/http/hub"
	"github.com/preston-bernstein/saturday-stats/internal/ingest"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
	"github.com/preston-bernstein/saturday-stats/internal/roster"
	"github.com/preston-bernstein/saturday-stats/internal/rotation"
	"github.com/preston-bernstein/saturday-stats/internal/store"
	"github.com/preston-bernstein/saturday-stats/internal/timeutil"
)

var metricsSetup = metrics.Setup

// Server owns every long-running component of the dashboard.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *games.Service
	teamsService  *teams.Service
	ingestor      *ingest.Ingestor
	scheduler     *rotation.Scheduler
	hub           *hub.Hub
	httpServer    httpServer
	metricsServer httpServer
	feed          Feed
	rotation      Rotation
	metricsStop   func(context.Context) error
}

// New wires the server from configuration using the configured feed source.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServer(cfg, logger, nil, nil, timeutil.System)
}

// newServer builds the full component graph. A nil src selects the source
// named by cfg.Feed; a nil recorder goes through metrics setup.
func newServer(cfg config.Config, logger *slog.Logger, src feed.Source, recorder *metrics.Recorder, clock timeutil.Clock) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	teamList, err := loadRoster(cfg.TeamsFile)
	if err != nil {
		return nil, err
	}
	memoryStore, gameSvc, teamSvc := buildServices(teamList)

	scheduler := rotation.New(rotation.Config{
		PageSize:         cfg.Rotation.PageSize,
		SetInterval:      cfg.Rotation.SetInterval,
		FeaturedInterval: cfg.Rotation.FeaturedInterval,
		FadeDelay:        cfg.Rotation.FadeDelay,
		FeaturedIDs:      featuredIDs(cfg.Rotation.FeaturedGames),
	}, clock, logger, recorder)

	frames := hub.New(cfg.CORSOrigins, logger, recorder)
	scheduler.OnChange(func(f rotation.Frame) {
		frames.Broadcast(gameSvc.Display(f))
	})

	// The store is replaced before the scheduler so frame listeners see the new list.
	ingestor := ingest.New(cfg.Feed.Classification, logger, recorder,
		gameSvc,
		ingest.ConsumerFunc(scheduler.UpdateGames),
	)

	if src == nil {
		src, err = feed.New(feedConfig(cfg), teamList, logger, recorder)
		if err != nil {
			return nil, fmt.Errorf("build feed source: %w", err)
		}
	}
	runner := feed.NewRunner(src, ingestor.Handle, logger)

	clips := highlights.NewClient(highlights.Config{
		BaseURL:           cfg.Highlights.BaseURL,
		Timeout:           cfg.Highlights.Timeout,
		RequestsPerMinute: cfg.Highlights.RequestsPerMinute,
	}, logger, recorder)

	handler := handlers.NewHandler(gameSvc, handlers.Options{
		Rotation:   scheduler,
		Highlights: clips,
		Status:     ingestor.Status,
		FeedStatus: runner.Status,
		Logger:     logger,
	})
	httpSrv := buildHTTPServer(cfg, handler, frames, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		teamsService:  teamSvc,
		ingestor:      ingestor,
		scheduler:     scheduler,
		hub:           frames,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		feed:          runner,
		rotation:      scheduler,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, fd Feed, rot Rotation) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		feed:         fd,
		rotation:     rot,
	}
}

func loadRoster(path string) ([]domainteams.Team, error) {
	if strings.TrimSpace(path) == "" {
		return roster.Default()
	}
	teamList, err := roster.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", path, err)
	}
	return teamList, nil
}

func buildServices(teamList []domainteams.Team) (*store.MemoryStore, *games.Service, *teams.Service) {
	memoryStore := store.NewMemoryStore()
	teamSvc := teams.NewService(teamList)
	return memoryStore, games.NewService(memoryStore, teamSvc), teamSvc
}

func feedConfig(cfg config.Config) feed.Config {
	return feed.Config{
		Kind:         cfg.Feed.Source,
		URL:          cfg.Feed.URL,
		PollInterval: cfg.Feed.PollInterval,
		RedisAddr:    cfg.Feed.RedisAddr,
		RedisChannel: cfg.Feed.RedisChannel,
		Backoff: feed.BackoffConfig{
			Initial: cfg.Feed.BackoffInitial,
			Max:     cfg.Feed.BackoffMax,
		},
	}
}

func featuredIDs(raw []string) []domaingames.GameID {
	ids := make([]domaingames.GameID, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, domaingames.GameID(id))
		}
	}
	return ids
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, frames http.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, frames, httpserver.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Metrics:     recorder,
	})

	// No write timeout: /ws connections are long-lived and set their own deadlines.
	return newNetHTTPServer(&http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	})
}

// Run starts rotation, the feed and the HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.rotation != nil {
		s.rotation.Start()
	}
	s.feed.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops producers before consumers: the feed first, then
// rotation timers, then renderer connections and servers.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.feed.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop feed", err)
	}

	if s.rotation != nil {
		s.rotation.Stop()
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(&http.Server{
			Addr:              ":" + recCfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		})
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Ingestor exposes the ingestor so callers can push payloads directly.
func (s *Server) Ingestor() *ingest.Ingestor {
	return s.ingestor
}
