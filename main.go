package main

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"pinyindrill/internal/game"
	"pinyindrill/internal/report"
)

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	setupLogger(isProduction)
	logInfo("Starting pinyindrill in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	cfg := loadGameConfig()
	if err := cfg.Validate(); err != nil {
		logFatal("Invalid game configuration: %v", err)
	}

	bank := game.LoadWordBankOrFallback(getEnvString("WORDS_FILE", "data/words.csv"))
	logInfo("Loaded %d words into the word bank", bank.Len())

	writers := []report.Writer{report.NewFileWriter(getEnvString("REPORTS_DIR", report.DefaultDir))}
	var archive *report.Archive
	if driver := os.Getenv("REPORT_DB_DRIVER"); driver != "" {
		if driver == string(report.DriverSQLite) && os.Getenv("REPORT_DB_DSN") == "" {
			_ = os.MkdirAll("data", 0755)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		a, err := report.OpenArchive(ctx, report.Driver(driver), os.Getenv("REPORT_DB_DSN"))
		cancel()
		if err != nil {
			logFatal("Failed to open report archive: %v", err)
		}
		archive = a
		writers = append(writers, archive)
		logInfo("Report archive enabled (%s)", driver)
	}
	dispatcher := report.NewDispatcher(writers...)

	selector := newSelector()
	app := &App{
		Engine:         game.NewEngine(bank, cfg, selector, dispatcher),
		Reports:        dispatcher,
		Archive:        archive,
		Sessions:       make(map[string]*PlayerSession),
		LimiterMap:     make(map[string]*rate.Limiter),
		IsProduction:   isProduction,
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		StartTime:      time.Now(),
	}

	templatesDir, staticDir := "templates", "static"
	if isProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templatesDir, staticDir = "dist/templates", "dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}

	router := app.setupRouter(filepath.Join(templatesDir, "*.html"), staticDir)
	app.startServer(router)
}

// newSelector seeds the word selector from RNG_SEED when set, otherwise from the clock.
func newSelector() *game.Selector {
	seed := uint64(time.Now().UnixNano())
	if v := os.Getenv("RNG_SEED"); v != "" {
		if n, err := parseInt(v); err == nil {
			seed = uint64(n)
			logInfo("Using fixed word selection seed %d", n)
		} else {
			logWarn("Invalid RNG_SEED %q: %v, seeding from clock", v, err)
		}
	}
	return game.NewSeededSelector(seed)
}

// setupRouter builds the gin engine with middleware, templates and routes.
func (app *App) setupRouter(templatesGlob, staticDir string) *gin.Engine {
	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogger())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		app.applyCacheHeaders(c)
	})

	router.SetFuncMap(template.FuncMap{
		"join": strings.Join,
		"add":  func(a, b int) int { return a + b },
	})
	router.LoadHTMLGlob(templatesGlob)
	router.Static("/static", staticDir)

	limited := app.rateLimitMiddleware()
	router.GET(RouteHome, app.homeHandler)
	router.POST(RouteStartGame, limited, app.startGameHandler)
	router.GET(RouteGame, app.gameHandler)
	router.POST(RouteSubmitAnswer, limited, app.submitAnswerHandler)
	router.POST(RouteSkipWord, limited, app.skipWordHandler)
	router.GET(RouteResult, app.resultHandler)
	router.POST(RouteClear, app.clearHandler)
	router.GET(RouteRecentReports, app.recentReportsHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

// startServer serves until SIGINT/SIGTERM, then drains HTTP traffic and pending reports.
func (app *App) startServer(router *gin.Engine) {
	port := getEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go app.runSessionSweeper(sweepCtx, getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute))

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		stopSweeper()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		if err := app.Reports.Close(ctx); err != nil {
			logWarn("Report writer shutdown: %v", err)
		}
		if app.Archive != nil {
			if err := app.Archive.Close(); err != nil {
				logWarn("Report archive close: %v", err)
			}
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache static assets in production and nothing else.
func (app *App) applyCacheHeaders(c *gin.Context) {
	if app.IsProduction && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
