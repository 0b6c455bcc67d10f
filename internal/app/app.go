package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log        *logrus.Logger
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	return &App{log: log, migrations: migrations}
}

func (a *App) deps(ctx context.Context) (Deps, func(), error) {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return Deps{}, nil, fmt.Errorf("unable to connect to db: %w", err)
	}

	jwt, err := config.NewJWT()
	if err != nil {
		db.Close()
		return Deps{}, nil, fmt.Errorf("unable to read jwt config: %w", err)
	}
	cookies, err := config.NewCookies(jwt)
	if err != nil {
		db.Close()
		return Deps{}, nil, fmt.Errorf("unable to read cookies config: %w", err)
	}
	ws, err := config.NewWebSocket()
	if err != nil {
		db.Close()
		return Deps{}, nil, fmt.Errorf("unable to read ws config: %w", err)
	}
	limits, err := config.NewLimits()
	if err != nil {
		db.Close()
		return Deps{}, nil, fmt.Errorf("unable to read board limits: %w", err)
	}

	return Deps{
		Log:     a.log,
		Stores:  repository.New(db),
		Cookies: cookies,
		Limits:  *limits,
		WS:      ws,
	}, db.Close, nil
}

// Start serves until ctx is canceled or the listener fails, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	deps, closeDB, err := a.deps(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	server := &http.Server{
		Addr:         config.Addr(),
		Handler:      NewRouter(deps, config.BasePath()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a.serve(ctx, server)
}

func (a *App) serve(ctx context.Context, server *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithField("addr", server.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down")
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
