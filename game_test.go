package main

import (
	"testing"
	"time"

	"pinyindrill/internal/game"
)

func TestLoadGameConfig_Defaults(t *testing.T) {
	cfg := loadGameConfig()
	def := game.DefaultConfig()
	if cfg.TargetScore != def.TargetScore || cfg.MistakePenalty != def.MistakePenalty || cfg.SkipPenalty != def.SkipPenalty {
		t.Errorf("loadGameConfig() = %+v, want defaults %+v", cfg, def)
	}
	if cfg.LivesByDifficulty[game.DifficultyEasy] != game.DefaultLivesEasy ||
		cfg.LivesByDifficulty[game.DifficultyHard] != game.DefaultLivesHard {
		t.Errorf("lives = %v", cfg.LivesByDifficulty)
	}
}

func TestLoadGameConfig_FromEnv(t *testing.T) {
	t.Setenv("TARGET_SCORE", "5")
	t.Setenv("MISTAKE_PENALTY", "2")
	t.Setenv("SKIP_PENALTY", "3")
	t.Setenv("LIVES_EASY", "10")
	t.Setenv("LIVES_HARD", "notanint")

	cfg := loadGameConfig()
	if cfg.TargetScore != 5 || cfg.MistakePenalty != 2 || cfg.SkipPenalty != 3 {
		t.Errorf("loadGameConfig() = %+v", cfg)
	}
	if cfg.LivesByDifficulty[game.DifficultyEasy] != 10 {
		t.Errorf("easy lives = %d, want 10", cfg.LivesByDifficulty[game.DifficultyEasy])
	}
	if cfg.LivesByDifficulty[game.DifficultyHard] != game.DefaultLivesHard {
		t.Errorf("hard lives = %d, want default %d", cfg.LivesByDifficulty[game.DifficultyHard], game.DefaultLivesHard)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestOutcomeResponse(t *testing.T) {
	app := newTestApp(t, testWords, testGameConfig(4, 6))
	s := &game.Session{InitialLives: 6, Lives: 5, Score: 1}
	out := game.Outcome{
		Kind:     game.OutcomeIncorrect,
		Score:    1,
		Lives:    5,
		Deducted: 1,
		Word:     &game.WordSnapshot{Word: "你好", Characters: []string{"你", "好"}, CharIndex: 1},
	}

	resp := app.outcomeResponse(s, out)
	if resp.Status != "incorrect" || resp.GameState == nil {
		t.Fatalf("outcomeResponse = %+v", resp)
	}
	gs := resp.GameState
	if gs.Score != 1 || gs.Lives != 5 || gs.DeductedPoints != 1 || gs.TargetScore != 4 || gs.TotalLives != 6 {
		t.Errorf("game state = %+v", gs)
	}
	if gs.WordInfo == nil || gs.WordInfo.Word != "你好" || gs.WordInfo.CharIndex != 1 {
		t.Errorf("word info = %+v", gs.WordInfo)
	}

	for _, kind := range []game.OutcomeKind{game.OutcomeWin, game.OutcomeLose} {
		if resp := app.outcomeResponse(s, game.Outcome{Kind: kind}); resp.GameState != nil || resp.Status != string(kind) {
			t.Errorf("terminal %s response = %+v", kind, resp)
		}
	}
}

func TestResultView(t *testing.T) {
	app := newTestApp(t, testWords, testGameConfig(4, 6))
	ended := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &game.Session{
		PlayerName: "Ada",
		Score:      4,
		Lives:      2,
		Result:     game.ResultWon,
		EndedAt:    ended,
		Mistakes: []game.MistakeRecord{
			{Character: "绿", CorrectSyllable: "lü", Attempts: []string{"lu", "le"}},
		},
	}
	v := app.resultView(s)
	if !v.Won || !v.Finished || v.TargetScore != 4 || v.PlayerName != "Ada" || !v.EndedAt.Equal(ended) {
		t.Errorf("resultView = %+v", v)
	}
	if len(v.Mistakes) != 1 || v.Mistakes[0].Correct != "lü" || len(v.Mistakes[0].Attempts) != 2 {
		t.Errorf("mistakes = %+v", v.Mistakes)
	}
}

func TestToWordInfoNil(t *testing.T) {
	if toWordInfo(nil) != nil {
		t.Error("toWordInfo(nil) should be nil")
	}
}
