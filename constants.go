package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome          = "/"
	RouteStartGame     = "/start-game"
	RouteGame          = "/game"
	RouteSubmitAnswer  = "/submit-answer"
	RouteSkipWord      = "/skip-word"
	RouteResult        = "/result"
	RouteClear         = "/clear"
	RouteRecentReports = "/reports/recent"
	RouteHealthz       = "/healthz"
)

// Template names
const (
	TemplateStart  = "start.html"
	TemplateGame   = "game.html"
	TemplateResult = "result.html"
)

// Response statuses for rejected game requests
const (
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
)

// Error message constants
const (
	ErrorNoSession         = "no active game"
	ErrorInvalidState      = "invalid state"
	ErrorBadRequest        = "invalid request body"
	ErrorUnknownDifficulty = "unknown difficulty"
	ErrorArchiveDisabled   = "report archive is not enabled"
	ErrorRateLimited       = "too many requests, please slow down"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
