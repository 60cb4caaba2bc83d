package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yannicklang1/eu-complience-hub-sub008/config"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/api"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/countrydata"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/delivery"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/leads"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/mailer"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/notify"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

// serveCmd is the cobra command that starts the hub API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the compliance hub api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the hub API server
func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := metrics.New(registry)

	st, err := setupStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up store: %w", err)
	}

	defer st.Close()

	redisClient := setupRedis(cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	countries, err := setupCountryData(cfg, redisClient)
	if err != nil {
		return fmt.Errorf("setting up country data: %w", err)
	}

	scorer := maturity.Default()

	builder := report.NewBuilder(
		report.WithCountryProvider(countries),
		report.WithLookupTimeout(cfg.CountryData.LookupTimeout),
		report.WithScorer(scorer),
		report.WithMetrics(m),
	)

	dispatcher, err := setupDispatcher(cfg, st, m)
	if err != nil {
		return fmt.Errorf("setting up delivery: %w", err)
	}

	handler := api.NewRouter(api.RouterConfig{
		Builder:        builder,
		Scorer:         scorer,
		Store:          st,
		Dispatcher:     dispatcher,
		Enricher:       setupEnricher(cfg),
		Metrics:        m,
		Gatherer:       registry,
		MaxBodySize:    cfg.Server.MaxBodySize,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting compliance hub service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// loadConfig reads the config file named by the --config flag and applies the logging flags
func loadConfig() (*config.Config, error) {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = cfg.Server.Debug || k.Bool("debug")
	cfg.Server.Pretty = cfg.Server.Pretty || k.Bool("pretty")

	setupLogging(cfg.Server.Debug, cfg.Server.Pretty)

	return cfg, nil
}

// setupStore connects to Postgres when a database URL is configured, falling back to the in-memory store
func setupStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Database.URL == "" {
		log.Warn().Msg("database not configured, reports and leads are kept in memory only")
		return store.NewMemory(), nil
	}

	pg, err := connectDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx, pg.Pool); err != nil {
			pg.Close()
			return nil, err
		}

		log.Info().Msg("database migrations applied")
	}

	log.Info().Msg("postgres store configured")

	return pg, nil
}

// connectDatabase opens the Postgres pool from config
func connectDatabase(ctx context.Context, cfg *config.Config) (*store.Postgres, error) {
	return store.Connect(ctx, cfg.Database.URL, store.PoolConfig{
		MaxConns:          cfg.Database.MaxConns,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	})
}

// setupRedis initializes the Redis client from config, returning nil when unconfigured
func setupRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis cache not configured, skipping")
		return nil
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache configured")

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// setupCountryData builds the country data provider chain: the content API
// (cached in Redis when available) with the embedded table as fallback
func setupCountryData(cfg *config.Config, redisClient *redis.Client) (countrydata.Provider, error) {
	static, err := countrydata.NewStaticProvider()
	if err != nil {
		return nil, err
	}

	if cfg.CountryData.BaseURL == "" {
		log.Info().Msg("country data api not configured, using embedded table")
		return static, nil
	}

	remote, err := countrydata.NewHTTPProvider(
		cfg.CountryData.BaseURL,
		countrydata.WithAPIToken(cfg.CountryData.APIToken),
		countrydata.WithHTTPClient(&http.Client{Timeout: cfg.CountryData.RequestTimeout}),
	)
	if err != nil {
		return nil, err
	}

	var primary countrydata.Provider = remote
	if redisClient != nil {
		primary = countrydata.NewCachedProvider(remote, redisClient, cfg.Redis.CacheTTL)
	}

	log.Info().Str("base_url", cfg.CountryData.BaseURL).Msg("country data api configured")

	return countrydata.Chain{primary, static}, nil
}

// setupDispatcher wires the report and lead delivery channels
func setupDispatcher(cfg *config.Config, st store.Store, m *metrics.Metrics) (*delivery.Dispatcher, error) {
	opts := []delivery.Option{
		delivery.WithMetrics(m),
		delivery.WithReportLink(cfg.Report.LinkBaseURL),
		delivery.WithTimeout(cfg.Report.DeliveryTimeout),
	}

	if mc := setupMailer(cfg); mc != nil {
		opts = append(opts, delivery.WithMailer(mc))
	}

	if nc := setupNotifier(cfg); nc != nil {
		opts = append(opts, delivery.WithNotifier(nc))
	}

	return delivery.NewDispatcher(st, opts...)
}

// setupMailer initializes the email client from config, returning nil when unconfigured
func setupMailer(cfg *config.Config) *mailer.Client {
	if cfg.Mail.APIKey == "" {
		log.Info().Msg("email delivery not configured, skipping")
		return nil
	}

	client, err := mailer.New(
		cfg.Mail.APIKey,
		cfg.Mail.From,
		mailer.WithBaseURL(cfg.Mail.BaseURL),
		mailer.WithReplyTo(cfg.Mail.ReplyTo),
		mailer.WithHTTPClient(&http.Client{Timeout: cfg.Mail.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize email client")
		return nil
	}

	log.Info().Msg("email delivery configured")

	return client
}

// setupNotifier initializes the Slack webhook client from config, returning nil when unconfigured
func setupNotifier(cfg *config.Config) *notify.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := notify.New(
		cfg.Slack.WebhookURL,
		notify.WithLocale(cfg.Slack.Locale),
		notify.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}

// setupEnricher initializes lead enrichment with the MX and registration lookups enabled in config
func setupEnricher(cfg *config.Config) *leads.Enricher {
	var (
		mx   *leads.MXChecker
		opts []leads.EnricherOption
	)

	if cfg.Leads.VerifyMX {
		log.Info().Str("dns_server", cfg.Leads.DNSServer).Msg("lead mx verification enabled")

		mx = leads.NewMXChecker(
			leads.WithDNSServer(cfg.Leads.DNSServer),
			leads.WithDNSTimeout(cfg.Leads.DNSTimeout),
		)
	}

	if cfg.Leads.LookupRegistration {
		log.Info().Msg("lead domain registration lookup enabled")

		opts = append(opts, leads.WithRegistrationLookup(leads.NewRegistrationChecker(
			leads.WithRDAPTimeout(cfg.Leads.RDAPTimeout),
			leads.WithRDAPHTTPClient(&http.Client{Timeout: cfg.Leads.RDAPTimeout}),
		)))
	}

	return leads.NewEnricher(mx, opts...)
}
