package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"microblog/config"
	"microblog/internal/adapter/in/rest"
	memstore "microblog/internal/adapter/out/storage/inmemory"
	pgstore "microblog/internal/adapter/out/storage/postgres"
	"microblog/internal/service"
	"microblog/internal/validate"
	"microblog/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage service.PostStorage
		pool        *pgxpool.Pool
	)

	switch cfg.StorageType {
	case "postgres":
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		postStorage = pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter)

	default:
		postStorage = memstore.NewPostStorage()
	}

	postSvc := service.NewPostService(postStorage, validate.NewPostValidator(validate.DefaultClean))
	handler := rest.NewHandler(postSvc)

	routes := handler.Routes(rest.Auth([]byte(cfg.Auth.JWTSecret)))
	root := rest.RequestLogger(log)(routes)

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized",
		zap.String("addr", addr),
		zap.String("storage", cfg.StorageType),
	)
	return &App{cfg: cfg, srv: srv, pool: pool}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", a.srv.Addr))
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		if a.pool != nil {
			a.pool.Close()
		}
		return nil

	case err := <-errCh:
		if a.pool != nil {
			a.pool.Close()
		}
		return err
	}
}
