package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitforge/internal/account"
	"github.com/2beens/fitforge/internal/assistant"
	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/calories"
	"github.com/2beens/fitforge/internal/chatbot"
	"github.com/2beens/fitforge/internal/config"
	"github.com/2beens/fitforge/internal/db"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/events"
	"github.com/2beens/fitforge/internal/identity"
	"github.com/2beens/fitforge/internal/middleware"
	"github.com/2beens/fitforge/internal/profile"
	"github.com/2beens/fitforge/internal/session"
	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/internal/workouts"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	identityClient  *identity.Client
	workoutsService *workouts.Service
	dietsService    *diets.Service
	profileService  *profile.Service
	eventsService   *events.Service
	sessionManager  *session.Manager
	chatBot         *chatbot.Bot

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPoolParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: cfg.HoneycombEnable,
	}
	dbPool, err := db.NewDBPool(ctx, dbPoolParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(dbPoolParams.ConnString()); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitforge", "api", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenIssuer, cfg.SessionTTL())
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	authService := auth.NewAuthService(cfg.SessionTTL(), rdb, tokens)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(cfg.HoneycombEnable, "fitforge-api", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	store := docstore.NewClient(cfg.DocStoreBaseURL, cfg.DocStoreAuth, tracedHttpClient)

	var devAccount *identity.DevAccount
	if cfg.DevLoginEmail != "" && !cfg.IsProduction() {
		devAccount = &identity.DevAccount{
			Email:        cfg.DevLoginEmail,
			PasswordHash: cfg.DevLoginHash,
			UID:          cfg.DevLoginUID,
		}
	}
	identityClient := identity.NewClient(identity.NewClientParams{
		BaseURL:    cfg.IdentityBaseURL,
		APIKey:     cfg.IdentityAPIKey,
		HTTPClient: tracedHttpClient,
		DevAccount: devAccount,
	})

	builtInWorkouts, err := workouts.LoadBuiltIn()
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	workoutsService := workouts.NewService(
		builtInWorkouts,
		workouts.NewCustomRepo(store),
		cfg.CustomWorkoutsCacheMB*1024*1024,
		cfg.CustomWorkoutsCacheTTL,
	)

	builtInDiets, err := diets.LoadBuiltIn()
	if err != nil {
		return nil, fmt.Errorf("load diets: %w", err)
	}

	eventsService := events.NewService(events.NewRepo(dbPool))

	var chatBot *chatbot.Bot
	if cfg.ChatGeneratorURL != "" {
		chatBot = chatbot.NewBot(chatbot.DefaultRules(), chatbot.NewGeneratorClient(cfg.ChatGeneratorURL, tracedHttpClient))
	} else {
		log.Debugln("chat generator not configured, unmatched prompts get the fallback reply")
		chatBot = chatbot.NewBot(chatbot.DefaultRules(), nil)
	}

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(cfg.SessionTTL(), tokens, rdb),

		identityClient:  identityClient,
		workoutsService: workoutsService,
		dietsService:    diets.NewService(builtInDiets, store),
		profileService:  profile.NewService(store, eventsService),
		eventsService:   eventsService,
		sessionManager: session.NewManager(session.NewManagerParams{
			Catalog:        workoutsService,
			Reporter:       calories.NewReporter(store, metricsManager),
			Recorder:       eventsService,
			NewTicker:      session.NewTimeTicker,
			RestDuration:   cfg.RestDuration(),
			MetricsManager: metricsManager,
		}),
		chatBot: chatBot,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitforge-router"))

	accountHandler := account.NewHandler(account.NewHandlerParams{
		Identity:       s.identityClient,
		Sessions:       s.authService,
		Users:          s.profileService,
		VersionInfo:    s.versionInfo,
		MetricsManager: s.metricsManager,
	})
	accountHandler.SetupRoutes(r, redis_rate.NewLimiter(s.redisClient), s.config.LoginRateLimitAllowedPerMin)

	workouts.NewHandler(s.workoutsService, s.metricsManager).SetupRoutes(r)
	diets.NewHandler(s.dietsService, s.metricsManager).SetupRoutes(r)
	profile.NewHandler(s.profileService).SetupRoutes(r)
	session.NewHandler(s.sessionManager).SetupRoutes(r)
	chatbot.NewHandler(s.chatBot, s.metricsManager).SetupRoutes(r)
	events.NewHandler(s.eventsService).SetupRoutes(r)

	mcpServer := assistant.NewServer(assistant.NewServerParams{
		Version:  s.versionInfo,
		Workouts: s.workoutsService,
		Diets:    s.dietsService,
		Bot:      s.chatBot,
	})
	r.PathPrefix("/mcp").Handler(assistant.NewHTTPHandler(mcpServer)).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	// no requests are served anymore, stop the session clocks
	s.sessionManager.CloseAll()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Inc()
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeOpenConnections.Dec()
	default:
		// do nothing
	}
}
