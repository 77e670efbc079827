package main

import (
	"context"
	"time"
)

// cleanupExpiredSessions removes sessions idle for longer than maxAge.
// Sessions are never written to disk, so an expired unfinished game is simply dropped.
func (app *App) cleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	app.SessionMutex.Lock()
	for id, ps := range app.Sessions {
		if ps.LastAccessTime.Before(cutoff) {
			delete(app.Sessions, id)
			removed++
		}
	}
	remaining := len(app.Sessions)
	app.SessionMutex.Unlock()

	if removed > 0 {
		logInfo("Session cleanup completed: removed %d idle sessions, %d remaining", removed, remaining)
	}
	return removed
}

// runSessionSweeper calls cleanupExpiredSessions every interval until ctx is done.
func (app *App) runSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.cleanupExpiredSessions(app.SessionTimeout)
		}
	}
}
