package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/joho/godotenv"
	"github.com/modu-soho/buzz_dashboard/internal/conf"
	"github.com/modu-soho/buzz_dashboard/internal/data"
	"github.com/modu-soho/buzz_dashboard/internal/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the service name.
	Name string = "buzz_dashboard"
	// Version is the service version.
	Version string
	// flagconf is the config file path flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	// A local .env can override database credentials and the JWT key via the
	// config placeholders.
	_ = godotenv.Load()

	c := config.New(
		config.WithSource(
			env.NewSource(),
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	level, logFile := "info", ""
	if bc.Log != nil {
		level, logFile = bc.Log.Level, bc.Log.File
	}
	base, err := logger.New(level, logFile)
	if err != nil {
		panic(err)
	}
	l := log.With(base,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	app, cleanup, err := initApp(bc.Server, bc.Data, bc.Auth, bc.Seed, l)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

func newApp(l log.Logger, hs *http.Server, seeder *data.Seeder) *kratos.App {
	// Seed demo data before the server starts accepting requests. A failure
	// here is logged but not fatal: an already-populated database still serves.
	if err := seeder.Run(context.Background()); err != nil {
		log.NewHelper(l).Errorf("seeding failed: %v", err)
	}

	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(l),
		kratos.Server(hs),
	)
}
