// Package main is the entry point for the bookshelf web server.
// It wires together configuration, the database connection, the template
// cache and the HTTP router.
package main

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/fainmariya/sorting-books-read/internal/data"
)

// appVersion is the current version of the application, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config        serverConfig
	logger        *slog.Logger
	models        data.Models
	templateCache map[string]*template.Template
}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	settings, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, settings.Environment)

	// The pool is created once here and shared for the life of the process.
	db, err := data.OpenDB(context.Background(), settings.dbConfig())
	if err != nil {
		logger.Error("database connection failed", "driver", settings.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection pool established", "driver", settings.DB.Driver)

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	app := &applicationDependencies{
		config:        settings,
		logger:        logger,
		models:        data.NewModels(db),
		templateCache: templateCache,
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
