// @title        linkboard API
// @version      1.0
// @description  Link-sharing board: accounts, cookie sessions, posts and votes.
// @BasePath     /
package main

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

	"github.com/linkboard/linkboard-api/internal/api"
	"github.com/linkboard/linkboard-api/internal/api/cookie"
	"github.com/linkboard/linkboard-api/internal/core/ports"
	"github.com/linkboard/linkboard-api/internal/core/service"
	mongostore "github.com/linkboard/linkboard-api/internal/infrastructure/db/mongo"
	pgstore "github.com/linkboard/linkboard-api/internal/infrastructure/db/postgres"
	redisstore "github.com/linkboard/linkboard-api/internal/infrastructure/db/redis"
	"github.com/linkboard/linkboard-api/internal/infrastructure/http/handlers"
	"github.com/linkboard/linkboard-api/internal/pkg/config"
	"github.com/linkboard/linkboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// store bundles the repositories of the selected backend.
type store struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	votes  ports.VoteRepository
	health handlers.Dependency
	close  func(ctx context.Context)
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "linkboard-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close(context.Background())
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	authService := service.NewAuthService(st.users, redisstore.NewSessionStore(rdb), cfg.Session.TTL, log.With().Str("component", "auth").Logger())
	postService := service.NewPostService(st.posts, log.With().Str("component", "posts").Logger())
	voteService := service.NewVoteService(st.votes, log.With().Str("component", "votes").Logger())

	e := api.NewRouter(api.Deps{
		Auth:  authService,
		Posts: postService,
		Votes: voteService,
		Cookies: cookie.NewManager(cookie.Options{
			Name:     cfg.Session.CookieName,
			Secret:   cfg.Session.Secret,
			Secure:   cfg.IsProduction(),
			SameSite: cfg.Session.SameSite,
		}),
		Health:      []handlers.Dependency{st.health, handlers.RedisDependency(rdb)},
		CORSOrigins: cfg.CORS.Origins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			users:  mongostore.NewUserRepository(db),
			posts:  mongostore.NewPostRepository(db),
			votes:  mongostore.NewVoteRepository(db),
			health: handlers.MongoDependency(db),
			close:  func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	default:
		pool, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			users:  pgstore.NewUserRepository(pool),
			posts:  pgstore.NewPostRepository(pool),
			votes:  pgstore.NewVoteRepository(pool),
			health: handlers.PostgresDependency(pool),
			close:  func(context.Context) { pool.Close() },
		}, nil
	}
}
