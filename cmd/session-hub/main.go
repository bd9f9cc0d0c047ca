package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"session-hub/internal/adapter/gateway"
	adapterhandler "session-hub/internal/adapter/handler"
	"session-hub/internal/adapter/provider"
	infracache "session-hub/internal/infrastructure/cache"
	infratoken "session-hub/internal/infrastructure/token"
	"session-hub/internal/usecase"

	"session-hub/config"
	appmiddleware "session-hub/middleware"
	"session-hub/utils/logger"
	"session-hub/utils/otel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Local development convenience; absent .env is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"backend_url", cfg.BackendURL,
		"port", cfg.Port,
		"trusted_base_url", cfg.TrustedBaseURL,
		"session_max_age", cfg.SessionMaxAge,
		"oauth_strict", cfg.OAuthStrict)

	// Session cookies are only marked Secure when the app itself is served
	// over HTTPS, otherwise local development cannot set them.
	secureCookies := strings.HasPrefix(cfg.TrustedBaseURL, "https://")

	// Infrastructure
	directory := gateway.NewDirectoryGateway(cfg.BackendURL, cfg.DirectoryTimeout)
	revocations := infracache.NewRevocationList()
	codec := infratoken.NewJWTCodec(infratoken.JWTConfig{
		Secret: cfg.SessionSecret,
		Issuer: "session-hub",
		MaxAge: cfg.SessionMaxAge,
	})
	stateCodec := infratoken.NewStateCodec(cfg.SessionSecret)

	// OAuth providers; unconfigured ones stay out of the registry
	var providers []provider.Provider
	if g := provider.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret,
		cfg.TrustedBaseURL+"/auth/google/callback"); g != nil {
		providers = append(providers, g)
	}
	if gh := provider.NewGitHub(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret,
		cfg.TrustedBaseURL+"/auth/github/callback"); gh != nil {
		providers = append(providers, gh)
	}
	registry := provider.NewRegistry(providers...)

	// Usecases
	normalizeUC := usecase.NewNormalizeIdentity(directory, slog.Default())
	issueUC := usecase.NewIssueSession(normalizeUC, codec, cfg.SessionMaxAge, cfg.OAuthStrict, slog.Default())
	renewUC := usecase.NewRenewSession(codec, revocations, cfg.SessionMaxAge)
	getUC := usecase.NewGetSession(codec, revocations, slog.Default())
	signOutUC := usecase.NewSignOut(codec, revocations, slog.Default())

	// Handlers
	loginHandler := adapterhandler.NewLoginHandler(directory, issueUC, cfg.TrustedBaseURL, cfg.SessionMaxAge, secureCookies)
	oauthHandler := adapterhandler.NewOAuthHandler(registry, stateCodec, issueUC, cfg.TrustedBaseURL, cfg.SessionMaxAge, secureCookies)
	sessionHandler := adapterhandler.NewSessionHandler(getUC, renewUC, cfg.SessionMaxAge, secureCookies)
	signOutHandler := adapterhandler.NewSignOutHandler(signOutUC, secureCookies)
	signupHandler := adapterhandler.NewSignupHandler(directory)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = adapterhandler.NewRequestValidator()

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			if c.Request().URL.Path == "/health" {
				return true
			}
			// Session polls are noisy; only log them when debugging
			return !cfg.DebugLogging && c.Request().URL.Path == "/session"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	loginRL := appmiddleware.NewRateLimiter(10.0/60.0, 3)     // 10 req/min
	oauthRL := appmiddleware.NewRateLimiter(20.0/60.0, 5)     // 20 req/min
	sessionRL := appmiddleware.NewRateLimiter(100.0/60.0, 10) // 100 req/min
	signupRL := appmiddleware.NewRateLimiter(5.0/60.0, 2)     // 5 req/min

	// Routes
	e.POST("/auth/login", loginHandler.Handle, loginRL.Middleware())
	e.POST("/auth/signup", signupHandler.Handle, signupRL.Middleware())
	e.POST("/auth/logout", signOutHandler.Handle, sessionRL.Middleware())
	e.GET("/auth/:provider/start", oauthHandler.HandleStart, oauthRL.Middleware())
	e.GET("/auth/:provider/callback", oauthHandler.HandleCallback, oauthRL.Middleware())
	e.GET("/session", sessionHandler.Handle, sessionRL.Middleware())
	e.GET("/health", healthHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting session-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
