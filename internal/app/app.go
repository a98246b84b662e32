package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/crateplan/internal/config"
	"github.com/specialistvlad/crateplan/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	catalog *config.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded
// base-image catalog.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	catalog, err := loader.Load(ctx, appConfig.CatalogPath)
	if err != nil {
		// A failure to load the catalog is a fatal startup error.
		panic(fmt.Errorf("failed to load base-image catalog: %w", err))
	}
	logger.Debug("Base-image catalog ready.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		catalog: catalog,
	}
}

// Catalog returns the loaded base-image catalog. This is primarily for testing.
func (a *App) Catalog() *config.Catalog {
	return a.catalog
}

// kinder is implemented by every error of the pipeline's taxonomy.
type kinder interface {
	Kind() string
}

// ErrorKind extracts the taxonomy name from a pipeline error, e.g.
// "UnsatisfiableRequirement". It returns "" for errors outside the taxonomy.
func ErrorKind(err error) string {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
