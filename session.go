package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pinyindrill/internal/game"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// lookupSession returns the player's session and refreshes its access time,
// or nil when the player has not started a game.
func (app *App) lookupSession(sessionID string) *PlayerSession {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	ps, exists := app.Sessions[sessionID]
	if !exists {
		return nil
	}
	ps.LastAccessTime = time.Now()
	return ps
}

// storeSession replaces whatever game the session held with state.
func (app *App) storeSession(sessionID string, state *game.Session) *PlayerSession {
	ps := &PlayerSession{State: state, LastAccessTime: time.Now()}
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = ps
	app.SessionMutex.Unlock()
	logInfo("Stored new game for session: %s", sessionID)
	return ps
}

// clearSession discards the session's game, returning the player to the start page state.
func (app *App) clearSession(sessionID string) {
	app.SessionMutex.Lock()
	_, existed := app.Sessions[sessionID]
	delete(app.Sessions, sessionID)
	app.SessionMutex.Unlock()
	if existed {
		logInfo("Cleared session data for: %s", sessionID)
	}
}

// activeSessions returns the number of stored sessions.
func (app *App) activeSessions() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}
