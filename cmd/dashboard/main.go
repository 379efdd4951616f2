package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dashboard-client/config"
	"dashboard-client/internal/delivery/cli"
	"dashboard-client/internal/domain"
	"dashboard-client/internal/infrastructure/cache"
	"dashboard-client/internal/infrastructure/userapi"
	"dashboard-client/internal/repository/kvstore"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/metrics"
	"dashboard-client/pkg/telemetry"
)

const serviceName = "dashboard"

// setFlags collects repeated -set field=value flags.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var sets setFlags
	cmd := flag.String("cmd", cli.CmdShow, "Command: "+strings.Join(cli.Commands, "|"))
	email := flag.String("email", "", "Email (login)")
	password := flag.String("password", "", "Password (login)")
	file := flag.String("file", "", "Image file; comma separated for cart-add")
	id := flag.String("id", "", "Cart item id (cart-edit, cart-delete)")
	yes := flag.Bool("yes", false, "Skip confirmation prompts")
	server := flag.String("server", "", "Override API_BASE_URL")
	flag.Var(&sets, "set", "Profile field=value for edit/token-edit (repeatable)")
	flag.Parse()

	// 1. Load Config
	cfg := config.LoadConfig()
	if *server != "" {
		cfg.APIBaseURL = strings.TrimRight(*server, "/")
	}

	// 2. Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)

	// 3. Telemetry
	shutdownTracing, err := telemetry.InitTracer(serviceName, cfg.TraceOutput)
	if err != nil {
		logger.Warn().Err(err).Str("output", cfg.TraceOutput).Msg("Tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer flushTelemetry(cfg, shutdownTracing)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Durable store
	store, closeStore, err := kvstore.Open(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
		fmt.Fprintln(os.Stderr, "Error: cannot open local store:", err)
		return 1
	}
	defer closeStore()
	logger.Debug().Str("driver", cfg.StoreDriver).Str("namespace", cfg.StoreNamespace).Msg("Store opened")

	// 5. Wiring
	gateway := userapi.NewClient(userapi.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.APITimeout,
		RatePerSec:    cfg.APIRatePerS,
		Burst:         cfg.APIBurst,
		MaxImageBytes: cfg.MaxImageSize,
	})
	nav := cli.NewNavigator(os.Stdout)
	dash := usecase.NewDashboardUsecase(usecase.DashboardDeps{
		Gateway:       gateway,
		Store:         store,
		Carts:         kvstore.NewCartRepository(store, cfg.StoreNamespace),
		ObjectURLs:    cache.NewObjectURLRegistry(cache.NewMemoryCache(cfg.ObjectURLTTL, 0)),
		Navigator:     nav,
		Namespace:     cfg.StoreNamespace,
		MaxImageBytes: cfg.MaxImageSize,
	})
	app := cli.NewApp(dash, os.Stdin, os.Stdout)

	// 6. Run
	err = app.Run(ctx, cli.Request{
		Cmd:      *cmd,
		Email:    *email,
		Password: *password,
		Sets:     sets,
		File:     *file,
		ID:       *id,
		Yes:      *yes,
	})
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, "Error:", err)
		flag.Usage()
		return 2
	case errors.Is(err, domain.ErrNoActiveIdentity) && nav.Redirected():
		// navigator already told the user
	default:
		fmt.Fprintln(os.Stderr, "Error:", domain.MessageOf(err))
	}
	return 1
}

// flushTelemetry writes out spans and, when a Pushgateway is configured, this
// invocation's counters. It runs after the command, whatever its outcome.
func flushTelemetry(cfg *config.Config, shutdownTracing telemetry.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownTracing(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to flush traces")
	}
	if cfg.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, cfg.PushgatewayURL, serviceName); err != nil {
		logger.Warn().Err(err).Str("url", cfg.PushgatewayURL).Msg("Failed to push metrics")
	}
}
