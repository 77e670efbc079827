package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine runs the spelling game rules against explicit Session values.
// It holds no per-player state and is safe for concurrent use across sessions.
type Engine struct {
	bank     *WordBank
	cfg      Config
	selector *Selector
	sink     ReportSink
	now      func() time.Time
}

// NewEngine wires an engine. A nil sink discards reports.
func NewEngine(bank *WordBank, cfg Config, selector *Selector, sink ReportSink) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		bank:     bank,
		cfg:      cfg,
		selector: selector,
		sink:     sink,
		now:      time.Now,
	}
}

// Config returns the rules the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Bank returns the shared word bank.
func (e *Engine) Bank() *WordBank { return e.bank }

// Start creates a fresh session and presents its first word.
func (e *Engine) Start(ctx context.Context, playerName string, difficulty Difficulty) (*Session, error) {
	lives, err := e.cfg.LivesFor(difficulty)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(playerName)
	if name == "" {
		name = DefaultPlayerName
	}
	s := &Session{
		PlayerName:   name,
		Difficulty:   difficulty,
		InitialLives: lives,
		Lives:        lives,
		UsedIndices:  []int{},
		Mistakes:     []MistakeRecord{},
		StartedAt:    e.now(),
	}
	if err := e.nextWord(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyWordBank, err)
	}
	log.Ctx(ctx).Info().
		Str("player", s.PlayerName).
		Str("difficulty", string(difficulty)).
		Int("lives", lives).
		Msg("session started")
	return s, nil
}

// Submit evaluates one typed syllable against the current character.
func (e *Engine) Submit(ctx context.Context, s *Session, raw string) (Outcome, error) {
	if err := checkPlayable(s); err != nil {
		return Outcome{}, err
	}
	cur := s.Current
	answer := Normalize(raw)
	expected := cur.Entry.Syllables[cur.CharIndex]

	if answer == expected {
		return e.advance(ctx, s)
	}
	return e.penalize(ctx, s, answer, expected), nil
}

// Skip abandons the current word for a fixed life cost and presents another one.
func (e *Engine) Skip(ctx context.Context, s *Session) (Outcome, error) {
	if s == nil || s.Finished() || s.Current == nil {
		return Outcome{}, fmt.Errorf("%w: no active word to skip", ErrInvalidState)
	}
	s.Lives -= e.cfg.SkipPenalty
	if s.Lives <= 0 {
		return e.finish(ctx, s, ResultLost), nil
	}
	if err := e.nextWord(s); err != nil {
		s.Current = nil
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return Outcome{
		Kind:     OutcomeSkipped,
		Score:    s.Score,
		Lives:    s.Lives,
		Deducted: e.cfg.SkipPenalty,
		Word:     s.Snapshot(),
	}, nil
}

func (e *Engine) advance(ctx context.Context, s *Session) (Outcome, error) {
	cur := s.Current
	cur.CharIndex++
	if !cur.Complete() {
		return Outcome{
			Kind:  OutcomeCorrectChar,
			Score: s.Score,
			Lives: s.Lives,
			Word:  s.Snapshot(),
		}, nil
	}

	s.Score++
	// Reaching the target wins before any new word is drawn.
	if s.Score >= e.cfg.TargetScore {
		return e.finish(ctx, s, ResultWon), nil
	}
	if err := e.nextWord(s); err != nil {
		s.Current = nil
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return Outcome{
		Kind:  OutcomeWordCompleted,
		Score: s.Score,
		Lives: s.Lives,
		Word:  s.Snapshot(),
	}, nil
}

func (e *Engine) penalize(ctx context.Context, s *Session, answer, expected string) Outcome {
	cur := s.Current
	s.recordMistake(cur.Entry.Character(cur.CharIndex), expected, answer)

	deducted := 0
	if !cur.MistakeFlagged[cur.CharIndex] {
		deducted = e.cfg.MistakePenalty
		s.Lives -= deducted
		cur.MistakeFlagged[cur.CharIndex] = true
	}
	if s.Lives <= 0 {
		return e.finish(ctx, s, ResultLost)
	}
	return Outcome{
		Kind:     OutcomeIncorrect,
		Score:    s.Score,
		Lives:    s.Lives,
		Deducted: deducted,
	}
}

// finish moves the session into its terminal state and hands the report off.
func (e *Engine) finish(ctx context.Context, s *Session, result string) Outcome {
	s.Result = result
	s.Current = nil
	s.EndedAt = e.now()

	log.Ctx(ctx).Info().
		Str("player", s.PlayerName).
		Str("result", result).
		Int("score", s.Score).
		Int("mistakes", len(s.Mistakes)).
		Msg("session ended")

	e.sink.Persist(ctx, Summary{
		PlayerName:  s.PlayerName,
		Difficulty:  s.Difficulty,
		Score:       s.Score,
		TargetScore: e.cfg.TargetScore,
		Won:         result == ResultWon,
		Mistakes:    s.MistakesSnapshot(),
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
	})

	kind := OutcomeLose
	if result == ResultWon {
		kind = OutcomeWin
	}
	return Outcome{Kind: kind, Score: s.Score, Lives: s.Lives}
}

func (e *Engine) nextWord(s *Session) error {
	idx, entry, err := e.selector.Pick(e.bank, &s.UsedIndices)
	if err != nil {
		return err
	}
	s.Current = newWordProgress(idx, entry)
	return nil
}

func checkPlayable(s *Session) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: no session", ErrInvalidState)
	case s.Finished():
		return fmt.Errorf("%w: session already ended", ErrInvalidState)
	case s.Current == nil:
		return fmt.Errorf("%w: no current word", ErrInvalidState)
	case s.Current.CharIndex < 0 || s.Current.Complete():
		return fmt.Errorf("%w: character index %d out of range", ErrInvalidState, s.Current.CharIndex)
	}
	return nil
}
