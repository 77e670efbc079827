package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pinyindrill/internal/game"
	"pinyindrill/internal/types"
)

const pageTitle = "拼音小达人"

// homeHandler clears any previous game and renders the start page.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	app.clearSession(sessionID)
	app.renderStart(c, http.StatusOK, "")
}

func (app *App) renderStart(c *gin.Context, status int, errMsg string) {
	cfg := app.Engine.Config()
	c.HTML(status, TemplateStart, gin.H{
		"title":       pageTitle,
		"targetScore": cfg.TargetScore,
		"livesEasy":   cfg.LivesByDifficulty[game.DifficultyEasy],
		"livesHard":   cfg.LivesByDifficulty[game.DifficultyHard],
		"error":       errMsg,
	})
}

// startGameHandler creates a fresh game for the player and sends them to the game page.
func (app *App) startGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	difficulty, err := game.ParseDifficulty(c.PostForm("difficulty"))
	if err != nil {
		logWarn("Session %s sent unknown difficulty %q", sessionID, c.PostForm("difficulty"))
		app.renderStart(c, http.StatusBadRequest, ErrorUnknownDifficulty)
		return
	}

	state, err := app.Engine.Start(ctx, c.PostForm("player_name"), difficulty)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("session", sessionID).Msg("could not start game")
		c.Redirect(http.StatusSeeOther, RouteHome)
		return
	}
	app.storeSession(sessionID, state)
	c.Redirect(http.StatusSeeOther, RouteGame)
}

// gameHandler renders the play page with the session's current state.
func (app *App) gameHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	ps := app.lookupSession(sessionID)
	if ps == nil {
		c.Redirect(http.StatusSeeOther, RouteHome)
		return
	}

	ps.mu.Lock()
	finished := ps.State.Finished()
	state := app.sessionGameState(ps.State)
	player := ps.State.PlayerName
	ps.mu.Unlock()

	if finished {
		c.Redirect(http.StatusSeeOther, RouteResult)
		return
	}
	c.HTML(http.StatusOK, TemplateGame, gin.H{
		"title":  pageTitle,
		"player": player,
		"state":  state,
	})
}

// submitAnswerHandler evaluates one typed syllable.
func (app *App) submitAnswerHandler(c *gin.Context) {
	var req types.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.AnswerResponse{Status: StatusError, Message: ErrorBadRequest})
		return
	}
	app.applyAction(c, func(ps *PlayerSession) (game.Outcome, error) {
		return app.Engine.Submit(c.Request.Context(), ps.State, req.Pinyin)
	})
}

// skipWordHandler trades a life for a new word.
func (app *App) skipWordHandler(c *gin.Context) {
	app.applyAction(c, func(ps *PlayerSession) (game.Outcome, error) {
		return app.Engine.Skip(c.Request.Context(), ps.State)
	})
}

// applyAction runs one state transition under the session lock and writes the JSON response.
func (app *App) applyAction(c *gin.Context, action func(ps *PlayerSession) (game.Outcome, error)) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	ps := app.lookupSession(sessionID)
	if ps == nil {
		c.JSON(http.StatusConflict, types.AnswerResponse{Status: StatusError, Message: ErrorNoSession})
		return
	}

	ps.mu.Lock()
	out, err := action(ps)
	var resp types.AnswerResponse
	if err == nil {
		resp = app.outcomeResponse(ps.State, out)
	}
	ps.mu.Unlock()

	if err != nil {
		if errors.Is(err, game.ErrInvalidState) {
			log.Ctx(ctx).Warn().Err(err).Str("session", sessionID).Msg("rejected action")
			c.JSON(http.StatusConflict, types.AnswerResponse{Status: StatusError, Message: ErrorInvalidState})
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("session", sessionID).Msg("action failed")
		c.JSON(http.StatusInternalServerError, types.AnswerResponse{Status: StatusError, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resultHandler renders the end-of-game summary.
func (app *App) resultHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	ps := app.lookupSession(sessionID)
	if ps == nil {
		c.Redirect(http.StatusSeeOther, RouteHome)
		return
	}

	ps.mu.Lock()
	view := app.resultView(ps.State)
	ps.mu.Unlock()

	c.HTML(http.StatusOK, TemplateResult, gin.H{
		"title":  pageTitle,
		"result": view,
	})
}

// clearHandler discards the player's game.
func (app *App) clearHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	app.clearSession(sessionID)
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// recentReportsHandler lists the latest archived results.
func (app *App) recentReportsHandler(c *gin.Context) {
	if app.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": StatusError, "message": ErrorArchiveDisabled})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	entries, err := app.Archive.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("load recent reports")
		c.JSON(http.StatusInternalServerError, gin.H{"status": StatusError, "message": "could not load reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded":    app.Engine.Bank().Len(),
		"active_sessions": app.activeSessions(),
		"archive_enabled": app.Archive != nil,
		"uptime":          formatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
