package di

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/wire"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lmittmann/tint"

	"github.com/aperturelabs/alms/internal/clock"
	"github.com/aperturelabs/alms/internal/config"
	"github.com/aperturelabs/alms/internal/crypto"
	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/handler"
	"github.com/aperturelabs/alms/internal/logging"
	"github.com/aperturelabs/alms/internal/metrics"
	"github.com/aperturelabs/alms/internal/middleware"
	"github.com/aperturelabs/alms/internal/repository"
	"github.com/aperturelabs/alms/internal/server"
	"github.com/aperturelabs/alms/internal/service"
)

var ConfigSet = wire.NewSet(
	ProvideConfig,
)

var LoggerSet = wire.NewSet(
	ProvideLogger,
)

var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideClock,
	ProvideMessageCipher,
	metrics.New,
)

var RepositorySet = wire.NewSet(
	repository.NewPostgresSessionRepository,
	wire.Bind(new(domain.SessionRepository), new(*repository.PostgresSessionRepository)),
	repository.NewPostgresEmployeeRepository,
	wire.Bind(new(domain.EmployeeRepository), new(*repository.PostgresEmployeeRepository)),
	repository.NewPostgresConversationRepository,
	wire.Bind(new(domain.ConversationRepository), new(*repository.PostgresConversationRepository)),
	repository.NewPostgresMessageRepository,
	wire.Bind(new(domain.MessageRepository), new(*repository.PostgresMessageRepository)),
)

var ServiceSet = wire.NewSet(
	ProvideSessionService,
	wire.Bind(new(service.SessionChecker), new(*service.SessionService)),
	wire.Bind(new(service.SessionIssuer), new(*service.SessionService)),
	ProvidePrincipalLookup,
	service.NewAuthenticator,
	wire.Bind(new(service.ContentCipher), new(*crypto.MessageCipher)),
	service.NewMessageGuard,
	service.NewEmployeeService,
	service.NewConversationService,
	wire.Bind(new(service.MessageNotifier), new(*handler.EventsHandler)),
	service.NewMessageService,
)

var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideStatusHandler,
	handler.NewEmployeeHandler,
	handler.NewConversationHandler,
	handler.NewMessageHandler,
	wire.Bind(new(handler.SessionVerifier), new(*service.SessionService)),
	handler.NewEventsHandler,
	handler.NewMetricsHandler,
	handler.NewSwaggerHandler,
	wire.Bind(new(middleware.TokenAuthenticator), new(*service.Authenticator)),
	middleware.NewAuthMiddleware,
)

var ServerSet = wire.NewSet(
	ProvideServerConfig,
	server.New,
)

var AppSet = wire.NewSet(
	ConfigSet,
	LoggerSet,
	InfraSet,
	RepositorySet,
	ServiceSet,
	HandlerSet,
	ServerSet,
	wire.Struct(new(Application), "*"),
)

const Version = "1.0.0"

func ProvideConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ProvideLogger logs to stdout, coloured in development and JSON otherwise.
// With LOG_FOLDER set every line is also appended to a daily file.
func ProvideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var logLevel slog.Level
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	cleanup := func() {}

	if cfg.Logging.Folder != "" {
		file, err := logging.NewDailyFileWriter(cfg.Logging.Folder, clock.Real())
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, file)
		cleanup = func() { _ = file.Close() }
	}

	var h slog.Handler
	if cfg.IsDevelopment() {
		h = tint.NewHandler(out, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    cfg.Logging.Folder != "",
		})
	} else {
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel})
	}

	logger := slog.New(h).With("app", config.DefaultAppName)
	return logger, cleanup, nil
}

func ProvideDatabase(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup, nil
}

func ProvideClock() clock.Clock {
	return clock.Real()
}

func ProvideMessageCipher(cfg *config.Config) (*crypto.MessageCipher, error) {
	key, err := crypto.ParseKey(cfg.Auth.EncryptionKey)
	if err != nil {
		return nil, err
	}
	return crypto.NewMessageCipher(key)
}

// ProvideSessionService also exposes the active session count as a gauge.
func ProvideSessionService(repo domain.SessionRepository, clk clock.Clock, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *service.SessionService {
	sessions := service.NewSessionService(service.SessionServiceConfig{
		Repo:     repo,
		Clock:    clk,
		Validity: cfg.Auth.TokenValidity,
		Metrics:  m,
		Logger:   logger,
	})
	m.RegisterActiveSessions(sessions.CountActive, logger)
	return sessions
}

func ProvidePrincipalLookup(repo domain.EmployeeRepository) service.PrincipalLookup {
	return repo
}

func ProvideHealthHandler(db *sql.DB) *handler.HealthHandler {
	return handler.NewHealthHandler(db, Version)
}

func ProvideStatusHandler(sessions *service.SessionService, employees *service.EmployeeService, clk clock.Clock) *handler.StatusHandler {
	return handler.NewStatusHandler(sessions, employees, clk, Version)
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		AppName:          config.DefaultAppName,
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     0,
		IdleTimeout:      60 * time.Second,
		CorsOrigins:      cfg.Server.CorsOrigins,
		RateLimitMax:     cfg.Server.RateLimitMax,
		AuthRateLimitMax: cfg.Server.AuthRateLimitMax,
	}
}

type Application struct {
	Config              *config.Config
	Logger              *slog.Logger
	DB                  *sql.DB
	Server              *server.Server
	AuthMiddleware      *middleware.AuthMiddleware
	HealthHandler       *handler.HealthHandler
	StatusHandler       *handler.StatusHandler
	EmployeeHandler     *handler.EmployeeHandler
	ConversationHandler *handler.ConversationHandler
	MessageHandler      *handler.MessageHandler
	EventsHandler       *handler.EventsHandler
	MetricsHandler      *handler.MetricsHandler
	SwaggerHandler      *handler.SwaggerHandler
}
