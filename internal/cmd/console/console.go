// Package console wires configuration, the gateway client, the call
// journal, and the web server into one runnable console process.
package console

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harriothq/experience-console/internal/console"
	"github.com/harriothq/experience-console/internal/gateway"
	"github.com/harriothq/experience-console/internal/journal"
	journalsqlite "github.com/harriothq/experience-console/internal/journal/sqlite"
	"github.com/harriothq/experience-console/internal/platform/config"
	"github.com/harriothq/experience-console/internal/platform/otel"
	"github.com/harriothq/experience-console/internal/web"
)

// serviceName identifies the console in traces.
const serviceName = "experience-console"

// Config holds the console command configuration.
type Config struct {
	HTTPAddr       string        `env:"EXPERIENCE_CONSOLE_HTTP_ADDR" envDefault:"localhost:8091"`
	GatewayBaseURL string        `env:"EXPERIENCE_CONSOLE_GATEWAY_URL" envDefault:"http://localhost:8000"`
	GatewayTimeout time.Duration `env:"EXPERIENCE_CONSOLE_GATEWAY_TIMEOUT" envDefault:"10s"`
	DefaultCity    string        `env:"EXPERIENCE_CONSOLE_DEFAULT_CITY" envDefault:"New York"`
	StayWindowDays int           `env:"EXPERIENCE_CONSOLE_STAY_WINDOW_DAYS" envDefault:"3"`
	JournalPath    string        `env:"EXPERIENCE_CONSOLE_JOURNAL_PATH"`
}

// ParseConfig reads configuration from the environment and applies flag
// overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway-url", cfg.GatewayBaseURL, "experience engine base URL")
	fs.DurationVar(&cfg.GatewayTimeout, "gateway-timeout", cfg.GatewayTimeout, "per-call gateway timeout")
	fs.StringVar(&cfg.DefaultCity, "default-city", cfg.DefaultCity, "default event-pricing city")
	fs.IntVar(&cfg.StayWindowDays, "stay-window-days", cfg.StayWindowDays, "default stay length in days")
	fs.StringVar(&cfg.JournalPath, "journal-path", cfg.JournalPath, "call journal SQLite path (empty disables)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the console and serves until the context ends. Outstanding
// gateway calls are drained before returning.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	var journalStore journal.Store
	var emitter *journal.Emitter
	if cfg.JournalPath != "" {
		store, err := journalsqlite.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open call journal: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close call journal: %v", err)
			}
		}()
		journalStore = store
		emitter = journal.NewEmitter(store)
	}

	client := gateway.NewClient(cfg.GatewayBaseURL, &http.Client{Timeout: cfg.GatewayTimeout})
	con := console.New(client, emitter, console.Config{
		DefaultCity:           cfg.DefaultCity,
		DefaultStayWindowDays: cfg.StayWindowDays,
	})

	// Seed the page the way a fresh browser session would: one
	// prediction, one pricing calculation, one events listing.
	con.RequestPrediction(ctx)
	con.CalculatePricing(ctx)
	con.LoadEvents(ctx)

	server, err := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, web.NewHandler(con, journalStore))
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve console: %w", err)
	}

	con.Wait()
	return nil
}
