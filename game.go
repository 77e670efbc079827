package main

import (
	"github.com/samber/lo"

	"pinyindrill/internal/game"
	"pinyindrill/internal/types"
)

// loadGameConfig builds the game rules from the environment, starting from the defaults.
func loadGameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.TargetScore = getEnvInt("TARGET_SCORE", cfg.TargetScore)
	cfg.MistakePenalty = getEnvInt("MISTAKE_PENALTY", cfg.MistakePenalty)
	cfg.SkipPenalty = getEnvInt("SKIP_PENALTY", cfg.SkipPenalty)
	cfg.LivesByDifficulty = map[game.Difficulty]int{
		game.DifficultyEasy: getEnvInt("LIVES_EASY", game.DefaultLivesEasy),
		game.DifficultyHard: getEnvInt("LIVES_HARD", game.DefaultLivesHard),
	}
	return cfg
}

// toWordInfo converts the engine's word snapshot into its JSON form.
func toWordInfo(w *game.WordSnapshot) *types.WordInfo {
	if w == nil {
		return nil
	}
	return &types.WordInfo{
		Word:       w.Word,
		Characters: w.Characters,
		CharIndex:  w.CharIndex,
	}
}

// sessionGameState describes the session as the browser sees it.
func (app *App) sessionGameState(s *game.Session) *types.GameState {
	return &types.GameState{
		Score:       s.Score,
		Lives:       s.Lives,
		WordInfo:    toWordInfo(s.Snapshot()),
		TargetScore: app.Engine.Config().TargetScore,
		TotalLives:  s.InitialLives,
	}
}

// outcomeResponse maps an engine outcome onto the answer/skip response body.
// Terminal outcomes carry no game state; the browser moves to the result page.
func (app *App) outcomeResponse(s *game.Session, out game.Outcome) types.AnswerResponse {
	resp := types.AnswerResponse{Status: string(out.Kind)}
	if out.Kind.Terminal() {
		return resp
	}
	state := app.sessionGameState(s)
	state.Score = out.Score
	state.Lives = out.Lives
	state.DeductedPoints = out.Deducted
	state.WordInfo = toWordInfo(out.Word)
	resp.GameState = state
	return resp
}

// resultView summarizes a session for the result page.
func (app *App) resultView(s *game.Session) types.ResultView {
	return types.ResultView{
		PlayerName:  s.PlayerName,
		Score:       s.Score,
		TargetScore: app.Engine.Config().TargetScore,
		Lives:       s.Lives,
		Won:         s.Won(),
		Finished:    s.Finished(),
		Mistakes: lo.Map(s.Mistakes, func(m game.MistakeRecord, _ int) types.MistakeView {
			return types.MistakeView{Character: m.Character, Correct: m.CorrectSyllable, Attempts: m.Attempts}
		}),
		EndedAt: s.EndedAt,
	}
}
