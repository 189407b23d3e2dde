package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
	"github.com/rachelSwimmer/StoreApi/pkg/infrastructure/auth"
	"github.com/rachelSwimmer/StoreApi/pkg/infrastructure/event"
	"github.com/rachelSwimmer/StoreApi/pkg/infrastructure/mysql"
	"github.com/rachelSwimmer/StoreApi/pkg/infrastructure/transport"
)

const appID = "shop"

type config struct {
	ListenAddr    string        `envconfig:"listen_addr" default:":8080"`
	DatabaseDSN   string        `envconfig:"database_dsn" required:"true"`
	MigrationsDir string        `envconfig:"migrations_dir" default:"data/mysql/migrations"`
	JWTSecret     string        `envconfig:"jwt_secret" required:"true"`
	TokenTTL      time.Duration `envconfig:"token_ttl" default:"24h"`
	AuthEnabled   bool          `envconfig:"auth_enabled" default:"false"`
}

func parseConfig() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  appID,
		Usage: "online store API",
		Commands: []*cli.Command{
			{
				Name:   "service",
				Usage:  "run the HTTP API",
				Action: runService,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("service terminated")
	}
}

func runMigrations(_ *cli.Context) error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}
	return mysql.Migrate(cfg.DatabaseDSN, cfg.MigrationsDir)
}

func runService(_ *cli.Context) error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	db, err := mysql.NewDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	provider := mysql.NewRepositoryProvider(db)
	dispatcher := event.NewLogDispatcher()
	tokens := auth.NewJWTTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	router := transport.Router(transport.Deps{
		Categories:  service.NewCategoryService(provider.Categories(), dispatcher),
		Products:    service.NewProductService(provider.Products(), provider.Categories(), dispatcher),
		Orders:      service.NewOrderService(mysql.NewUnitOfWork(db), provider.Orders(), dispatcher),
		OrderViews:  mysql.NewOrderQueryService(db),
		Users:       service.NewUserService(provider.Users(), auth.NewBcryptPasswordManager(), tokens, dispatcher),
		Tokens:      tokens,
		AuthEnabled: cfg.AuthEnabled,
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithField("addr", cfg.ListenAddr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
