package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dogfish0918-create/Accounting-Software/internal/config"
	"github.com/dogfish0918-create/Accounting-Software/internal/controllers"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/dogfish0918-create/Accounting-Software/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout is the time in-flight requests get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)
	setupLogger(cfg, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// setupLogger configures the global logger.
//
// Log format can be explicitly set.
// If it is not set, it defaults to human readable for development
// and JSON for release
func setupLogger(cfg *config.Config, out io.Writer) {
	output := out
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// run connects to the database and serves the API until ctx is done.
func run(ctx context.Context, cfg *config.Config) error {
	d, err := models.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}

	db, err := models.Connect(d, cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.SeedCategories {
		created, err := models.Seed(db, models.DefaultCategories)
		if err != nil {
			return err
		}
		log.Info().Int64("created", created).Msg("Seeded categories")
	}

	r, err := router.Config(cfg)
	if err != nil {
		return err
	}
	router.AttachRoutes(controllers.New(db), r, r.Group(cfg.APIURL.Path))

	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout + 5*time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", cfg.ListenAddress).Str("driver", d.Name()).Str("url", cfg.APIURL.String()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
