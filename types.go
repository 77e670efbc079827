package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pinyindrill/internal/game"
	"pinyindrill/internal/report"
)

// App holds everything the HTTP layer needs: the game engine, the per-player
// sessions keyed by cookie, report persistence and runtime settings.
type App struct {
	Engine  *game.Engine
	Reports *report.Dispatcher
	Archive *report.Archive // nil unless REPORT_DB_DRIVER is set

	Sessions     map[string]*PlayerSession
	SessionMutex sync.RWMutex // Protects Sessions and each LastAccessTime

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction   bool
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	StartTime      time.Time
}

// PlayerSession wraps one player's game. mu serializes every state
// transition so two answers for the same session never interleave.
type PlayerSession struct {
	mu             sync.Mutex
	State          *game.Session
	LastAccessTime time.Time
}
