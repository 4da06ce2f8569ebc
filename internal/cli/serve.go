package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stagecrew/crew-scheduler/internal/api"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/core/service"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/config"
	mongodb "github.com/stagecrew/crew-scheduler/internal/infrastructure/db/mongo"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/db/postgres"
	redisstore "github.com/stagecrew/crew-scheduler/internal/infrastructure/db/redis"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/http/handlers"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/identity"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/mail"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/sms"
	"github.com/stagecrew/crew-scheduler/pkg/logger"
)

const serviceName = "crewd"

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Migrate bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

SMS notifications are disabled when the Twilio credentials are missing, and
invitation e-mails when SMTP_HOST is unset. Both degrade instead of failing
startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

// bootstrap loads configuration and initialises the process logger.
func bootstrap(ctx context.Context, opts *RootOptions) (*config.Config, zerolog.Logger, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := logger.Init(logger.Options{
		Level:   level,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, log, err := bootstrap(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	if opts.Migrate {
		if err := postgres.MigrateUp(cfg.Postgres.URL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		return err
	}
	defer db.Close()

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     serviceName,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	log.Info().Msg("stores connected")

	identities := mongodb.NewIdentityRepository(mongoDB)
	if err := identities.EnsureIndexes(ctx); err != nil {
		return err
	}
	tokens := redisstore.NewTokenStore(rdb, cfg.Workers.InviteTokenTTL)

	shifts := postgres.NewShiftRepository(db)
	assignments := postgres.NewAssignmentRepository(db)
	profiles := postgres.NewProfileRepository(db)

	// --- Outbound collaborators ---
	var mailer identity.Mailer
	if cfg.SMTP.Configured() {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, invitation e-mails are disabled")
	}

	var transport ports.MessageTransport
	if cfg.Twilio.Configured() {
		transport = sms.NewTwilioTransport(sms.Config{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			RatePerSec: cfg.Twilio.RatePerSec,
		})
	} else {
		log.Warn().Msg("twilio credentials not set, SMS notifications are disabled")
	}

	// --- Services ---
	notifier := service.NewChangeNotifier(
		shifts,
		service.NewAssignmentReconciler(assignments, log),
		service.NewRecipientResolver(profiles, log),
		service.NewNotificationDispatcher(transport, cfg.Twilio.FromNumber, cfg.Notify.Concurrency, log),
		service.NewMessageFormatter(loc),
		redisstore.NewChangeGuard(rdb),
		log,
	)
	provisioning := service.NewProvisioningCoordinator(
		identity.NewProvider(identities, tokens, mailer, log),
		profiles,
		service.NewPasswordGenerator(nil),
		cfg.Workers.DefaultPayRate,
		cfg.Workers.InviteRedirectURL,
		log,
	)
	authService := service.NewAuthService(identities, profiles, tokens, cfg.JWTSecret, cfg.JWTTTL)

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Notifier:     notifier,
		Provisioning: provisioning,
		HealthChecks: map[string]handlers.Check{
			"postgres": handlers.PostgresCheck(db),
			"mongo":    handlers.MongoCheck(mongoDB),
			"redis":    handlers.RedisCheck(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
