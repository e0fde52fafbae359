package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	site "github.com/dogbodymind/go-site"
)

// environment maps process environment variables onto the site configuration.
type environment struct {
	Addr             string        `env:"SITE_ADDR"              envDefault:":8080"`
	AllowCrossDomain bool          `env:"SITE_ALLOW_CROSS_DOMAIN" envDefault:"false"`
	ShutdownTimeout  time.Duration `env:"SITE_SHUTDOWN_TIMEOUT"  envDefault:"10s"`

	SanityProjectID  string `env:"SANITY_PROJECT_ID,required"`
	SanityDataset    string `env:"SANITY_DATASET"     envDefault:"production"`
	SanityAPIVersion string `env:"SANITY_API_VERSION"`
	SanityToken      string `env:"SANITY_TOKEN"`
	SanityUseCDN     bool   `env:"SANITY_USE_CDN"     envDefault:"true"`

	CacheEnabled  bool          `env:"SITE_CACHE_ENABLED"  envDefault:"true"`
	CacheCapacity int           `env:"SITE_CACHE_CAPACITY" envDefault:"2048"`
	CacheTTL      time.Duration `env:"SITE_CACHE_TTL"      envDefault:"1m"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	var envCfg environment
	if err := env.Parse(&envCfg); err != nil {
		return err
	}

	cfg := site.DefaultConfig()
	cfg.Router.AllowCrossDomain = envCfg.AllowCrossDomain
	cfg.Sanity.ProjectID = envCfg.SanityProjectID
	cfg.Sanity.Dataset = envCfg.SanityDataset
	if envCfg.SanityAPIVersion != "" {
		cfg.Sanity.APIVersion = envCfg.SanityAPIVersion
	}
	cfg.Sanity.Token = envCfg.SanityToken
	cfg.Sanity.UseCDN = envCfg.SanityUseCDN
	cfg.Cache.Enabled = envCfg.CacheEnabled
	cfg.Cache.Capacity = envCfg.CacheCapacity
	cfg.Cache.DefaultTTL = envCfg.CacheTTL
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = envCfg.LogLevel
	cfg.Logging.Format = envCfg.LogFormat

	module, err := site.New(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         envCfg.Addr,
		Handler:      module.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", envCfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), envCfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
