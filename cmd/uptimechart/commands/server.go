package commands

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gohttpmetricsprometheus "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/reload"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/rcreports/uptimechart/internal/config"
	backendapp "github.com/rcreports/uptimechart/internal/http/backend/app"
	httpbackendmetricsprometheus "github.com/rcreports/uptimechart/internal/http/backend/metrics/prometheus"
	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	storagefake "github.com/rcreports/uptimechart/internal/http/backend/storage/fake"
	storagefile "github.com/rcreports/uptimechart/internal/http/backend/storage/file"
	storageprometheus "github.com/rcreports/uptimechart/internal/http/backend/storage/prometheus"
	storagewrappers "github.com/rcreports/uptimechart/internal/http/backend/storage/wrappers"
	"github.com/rcreports/uptimechart/internal/http/ui"
	"github.com/rcreports/uptimechart/internal/log"
)

const (
	storageFake       = "fake"
	storageFile       = "file"
	storagePrometheus = "prometheus"
)

type serverCommand struct {
	statusServer struct {
		address         string
		healthCheckPath string
		metricsPath     string
		pprofPath       string
		hotReloadPath   string
	}
	appServer struct {
		address string
	}

	configPath    string
	pluginsPaths  []string
	pluginsStrict bool
	sessionTTL    time.Duration
	storage       string
	reportFile    string

	prometheus struct {
		promAddress string
		auth        struct {
			basicUser     string
			basicPassword string
		}
		tls struct {
			insecureSkipVerify bool
			caFile             string
			certFile           string
			keyFile            string
		}
	}
}

// NewServerCommand returns the server command.
func NewServerCommand(app *kingpin.Application) Command {
	c := &serverCommand{}
	cmd := app.Command("server", "Starts the uptime charts web server.")
	cmd.Flag("app-listen-address", "Application listen address.").Default(":8080").StringVar(&c.appServer.address)
	cmd.Flag("status-listen-address", "Status (health check, metrics, pprof, hot-reload...) listen address.").Default(":8081").StringVar(&c.statusServer.address)
	cmd.Flag("health-check-path", "Health check path.").Default("/status").StringVar(&c.statusServer.healthCheckPath)
	cmd.Flag("metrics-path", "Prometheus metrics path where metrics will be served.").Default("/metrics").StringVar(&c.statusServer.metricsPath)
	cmd.Flag("pprof-path", "PProf path where debug tool is available.").Default("/debug/pprof").StringVar(&c.statusServer.pprofPath)
	cmd.Flag("hot-reload-path", "The webhook path that will trigger the hot-reload of the report data and plugins.").Default("/-/reload").StringVar(&c.statusServer.hotReloadPath)

	cmd.Flag("config", "The configuration file path.").Short('c').StringVar(&c.configPath)
	cmd.Flag("plugins-path", "The path to color plugins (can be repeated).").Short('p').StringsVar(&c.pluginsPaths)
	cmd.Flag("plugins-strict", "Fail when a color plugin can't be loaded instead of ignoring it.").BoolVar(&c.pluginsStrict)
	cmd.Flag("session-ttl", "The time a chart session is kept without being used.").Default("24h").DurationVar(&c.sessionTTL)
	cmd.Flag("storage", "The uptime data storage backend.").Default(storagePrometheus).EnumVar(&c.storage, storageFake, storageFile, storagePrometheus)
	cmd.Flag("report-file", "The uptime report file used by the file storage backend.").StringVar(&c.reportFile)

	cmd.Flag("prometheus-address", "Prometheus server address.").Default("http://localhost:9090").StringVar(&c.prometheus.promAddress)
	cmd.Flag("prometheus-auth-basic-user", "Basic auth user for Prometheus.").StringVar(&c.prometheus.auth.basicUser)
	cmd.Flag("prometheus-auth-basic-password", "Basic auth password for Prometheus.").StringVar(&c.prometheus.auth.basicPassword)
	cmd.Flag("prometheus-tls-insecure-skip-verify", "Skip TLS certificate verification for Prometheus.").BoolVar(&c.prometheus.tls.insecureSkipVerify)
	cmd.Flag("prometheus-tls-ca-file", "CA certificate file for Prometheus TLS.").StringVar(&c.prometheus.tls.caFile)
	cmd.Flag("prometheus-tls-cert-file", "Client certificate file for Prometheus mTLS.").StringVar(&c.prometheus.tls.certFile)
	cmd.Flag("prometheus-tls-key-file", "Client key file for Prometheus mTLS.").StringVar(&c.prometheus.tls.keyFile)

	return c
}

func (c serverCommand) Name() string { return "server" }
func (c serverCommand) Run(ctx context.Context, config RootConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := config.Logger.WithValues(log.Kv{"command": c.Name()})
	promReg := prometheus.DefaultRegisterer

	// Metrics for UI backend.
	uiBackendMetricsRecorder := httpbackendmetricsprometheus.NewRecorder(promReg)

	plugins, err := newColorPluginRepo(logger, c.pluginsStrict, c.pluginsPaths)
	if err != nil {
		return fmt.Errorf("could not load color plugins: %w", err)
	}

	cfg, err := loadConfig(ctx, c.configPath, plugins)
	if err != nil {
		return err
	}

	repo, err := c.newRepository(ctx, logger, cfg, uiBackendMetricsRecorder)
	if err != nil {
		return err
	}

	var g run.Group
	reloadManager := reload.NewManager()

	// Run hot-reload.
	{
		reloadManager.Add(1000, reload.ReloaderFunc(func(ctx context.Context, id string) error {
			return plugins.Reload(ctx)
		}))
		reloadManager.Add(500, reload.ReloaderFunc(func(ctx context.Context, id string) error {
			return repo.Reload(ctx)
		}))

		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				logger.Infof("Hot-reload manager running")
				defer logger.Infof("Hot-reload manager stopped")
				return reloadManager.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// OS signals.
	{
		sigC := make(chan os.Signal, 1)
		exitC := make(chan struct{})
		reloadC := make(chan struct{})
		signal.Notify(sigC, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

		// Add hot-reload notifier for SIGHUP.
		reloadManager.On(reload.NotifierFunc(func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-reloadC:
			}
			logger.Infof("Hot-reload triggered from OS SIGHUP signal")
			return "sighup", nil
		}))

		g.Add(
			func() error {
				logger.Infof("OS signals listener started")
				defer logger.Infof("OS signals listener stopped")
				for {
					select {
					case s := <-sigC:
						logger.Infof("Signal %s received", s)
						// Don't stop if SIGHUP, only reload.
						if s == syscall.SIGHUP {
							select {
							case reloadC <- struct{}{}:
							case <-exitC:
								return nil
							}
							continue
						}

						return nil
					case <-exitC:
						return nil
					}
				}
			},
			func(_ error) {
				signal.Stop(sigC)
				close(exitC)
			},
		)
	}

	// Status and metadata server (health checks, metrics, hot-reload...).
	{
		logger := logger.WithValues(log.Kv{
			"addr":         c.statusServer.address,
			"metrics":      c.statusServer.metricsPath,
			"health-check": c.statusServer.healthCheckPath,
			"pprof":        c.statusServer.pprofPath,
			"hot-reload":   c.statusServer.hotReloadPath,
		})
		mux := http.NewServeMux()

		// Pprof.
		mux.HandleFunc(c.statusServer.pprofPath+"/", pprof.Index)
		mux.HandleFunc(c.statusServer.pprofPath+"/cmdline", pprof.Cmdline)
		mux.HandleFunc(c.statusServer.pprofPath+"/profile", pprof.Profile)
		mux.HandleFunc(c.statusServer.pprofPath+"/symbol", pprof.Symbol)
		mux.HandleFunc(c.statusServer.pprofPath+"/trace", pprof.Trace)

		// Metrics.
		mux.Handle(c.statusServer.metricsPath, promhttp.Handler())

		// Health checks.
		mux.HandleFunc(c.statusServer.healthCheckPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) }))

		// Hot-reload webhook, on request send signal for reload over the channel.
		hotReloadC := make(chan struct{})
		reloadManager.On(reload.NotifierFunc(func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-hotReloadC:
			}
			logger.Infof("Hot-reload triggered from http webhook")
			return "http", nil
		}))
		mux.Handle(c.statusServer.hotReloadPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			select {
			case hotReloadC <- struct{}{}:
				w.WriteHeader(http.StatusAccepted)
			case <-r.Context().Done():
			}
		}))

		server := http.Server{
			Addr:    c.statusServer.address,
			Handler: mux,
		}

		g.Add(
			func() error {
				logger.Infof("HTTP server listening...")
				return server.ListenAndServe()
			},
			func(_ error) {
				logger.Infof("Start draining connections")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				err := server.Shutdown(ctx)
				if err != nil {
					logger.Errorf("error while shutting down the server: %s", err)
				} else {
					logger.Infof("Server stopped")
				}
			},
		)
	}

	// Application server.
	{
		app, err := backendapp.NewApp(backendapp.AppConfig{
			UptimeGetter:      storagewrappers.NewMeasuredUptimeGetter(repo, uiBackendMetricsRecorder),
			HistoryGetter:     storagewrappers.NewMeasuredHistoryGetter(repo, uiBackendMetricsRecorder),
			ColorPluginGetter: plugins,
			Config:            cfg,
			Sessions:          backendapp.NewSessionStore(c.sessionTTL, nil),
			MetricsRecorder:   uiBackendMetricsRecorder,
			Logger:            logger,
		})
		if err != nil {
			return fmt.Errorf("could not create app: %w", err)
		}

		// Web UI.
		uiHandler, err := ui.NewUI(ui.UIConfig{
			Logger:                     logger,
			ServiceApp:                 app,
			InteractionMetricsRecorder: uiBackendMetricsRecorder,
			MetricsRecorder: gohttpmetricsprometheus.NewRecorder(gohttpmetricsprometheus.Config{
				Prefix:   httpbackendmetricsprometheus.Prefix,
				Registry: promReg,
			}),
		})
		if err != nil {
			return fmt.Errorf("could not create ui handler: %w", err)
		}

		mux := http.NewServeMux()
		mux.Handle(ui.ServePrefix+"/", uiHandler)
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, ui.ServePrefix+"/", http.StatusSeeOther)
		})) // Root redirect to UI.

		server := http.Server{
			Addr:    c.appServer.address,
			Handler: mux,
		}

		logger := logger.WithValues(log.Kv{"addr": c.appServer.address})
		g.Add(
			func() error {
				logger.Infof("HTTP server listening...")
				return server.ListenAndServe()
			},
			func(_ error) {
				logger.Infof("Start draining connections")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				err := server.Shutdown(ctx)
				if err != nil {
					logger.Errorf("error while shutting down the server: %s", err)
				} else {
					logger.Infof("Server stopped")
				}
			},
		)
	}

	return g.Run()
}

// reloadableRepository is a storage backend that can be hot-reloaded.
type reloadableRepository interface {
	storage.UptimeGetter
	storage.HistoryGetter
	Reload(ctx context.Context) error
}

type noopReloader struct {
	storage.UptimeGetter
	storage.HistoryGetter
}

func (noopReloader) Reload(ctx context.Context) error { return nil }

func (c *serverCommand) newRepository(ctx context.Context, logger log.Logger, cfg *config.Config, metricsRecorder httpbackendmetricsprometheus.Recorder) (reloadableRepository, error) {
	switch c.storage {
	case storageFake:
		logger.Warningf("Using fake storage backend")
		repo := storagefake.NewFakeRepository(nil)
		return noopReloader{UptimeGetter: repo, HistoryGetter: repo}, nil

	case storageFile:
		logger.Infof("Using file storage backend at %s", c.reportFile)
		repo, err := storagefile.NewRepository(ctx, storagefile.RepositoryConfig{
			Path:   c.reportFile,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create file storage repository: %w", err)
		}
		return repo, nil

	case storagePrometheus:
		// Create HTTP transport with optional TLS configuration.
		transport := http.DefaultTransport.(*http.Transport).Clone()

		// Configure TLS if any TLS options are set.
		if c.prometheus.tls.insecureSkipVerify || c.prometheus.tls.caFile != "" || c.prometheus.tls.certFile != "" {
			tlsConfig, err := c.buildPrometheusTLSConfig()
			if err != nil {
				return nil, fmt.Errorf("could not build TLS config: %w", err)
			}
			transport.TLSClientConfig = tlsConfig
			logger.Infof("TLS enabled for Prometheus client")
		}

		var roundTripper http.RoundTripper = transport

		// Add basic auth if configured.
		if c.prometheus.auth.basicUser != "" || c.prometheus.auth.basicPassword != "" {
			logger.Infof("Basic auth enabled for Prometheus client")
			roundTripper = &basicAuthRoundTripper{
				username: c.prometheus.auth.basicUser,
				password: c.prometheus.auth.basicPassword,
				next:     roundTripper,
			}
		}

		httpClient := &http.Client{
			Timeout:   1 * time.Minute, // At least we end at some point
			Transport: roundTripper,
		}

		logger.Infof("Using Prometheus storage backend at %s", c.prometheus.promAddress)

		client, err := promapi.NewClient(promapi.Config{
			Address: c.prometheus.promAddress,
			Client:  httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus api client: %w", err)
		}

		q := cfg.Prometheus.Queries
		repo, err := storageprometheus.NewRepository(ctx, storageprometheus.RepositoryConfig{
			PrometheusClient: storageprometheus.NewMeasuredPrometheusAPIClient(metricsRecorder, promv1.NewAPI(client)),
			Queries: storageprometheus.Queries{
				CellUptime:     q.CellUptime,
				NationalUptime: q.NationalUptime,
				Target:         q.Target,
				Outages:        q.Outages,
			},
			Selector:             cfg.Prometheus.Selector,
			HistoryResolution:    cfg.Prometheus.HistoryResolution,
			CacheRefreshInterval: cfg.Prometheus.RefreshInterval,
			MetricsRecorder:      metricsRecorder,
			Logger:               logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus storage repository: %w", err)
		}
		return repo, nil
	}

	return nil, fmt.Errorf("unknown %q storage backend", c.storage)
}

func (c *serverCommand) buildPrometheusTLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.prometheus.tls.insecureSkipVerify,
	}

	// Load CA certificate if provided.
	if c.prometheus.tls.caFile != "" {
		caCert, err := os.ReadFile(c.prometheus.tls.caFile)
		if err != nil {
			return nil, fmt.Errorf("could not read CA file: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate and key for mTLS if provided.
	if c.prometheus.tls.certFile != "" && c.prometheus.tls.keyFile != "" {
		cert, err := tls.LoadX509KeyPair(c.prometheus.tls.certFile, c.prometheus.tls.keyFile)
		if err != nil {
			return nil, fmt.Errorf("could not load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	} else if c.prometheus.tls.certFile != "" || c.prometheus.tls.keyFile != "" {
		return nil, fmt.Errorf("both cert-file and key-file must be provided for mTLS")
	}

	return tlsConfig, nil
}

type basicAuthRoundTripper struct {
	username string
	password string
	next     http.RoundTripper
}

func (rt *basicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(rt.username, rt.password)
	return rt.next.RoundTrip(req)
}
