package game

import (
	"context"
	"time"
)

// OutcomeKind names the result of one Submit or Skip.
type OutcomeKind string

const (
	OutcomeCorrectChar   OutcomeKind = "correct_char"
	OutcomeWordCompleted OutcomeKind = "word_completed"
	OutcomeWin           OutcomeKind = "win"
	OutcomeIncorrect     OutcomeKind = "incorrect"
	OutcomeLose          OutcomeKind = "lose"
	OutcomeSkipped       OutcomeKind = "skipped"
)

// Terminal reports whether the outcome ends the session.
func (k OutcomeKind) Terminal() bool {
	return k == OutcomeWin || k == OutcomeLose
}

// Outcome is what the player learns after one action.
// Word is set for CorrectChar, WordCompleted and Skipped. Deducted is the life
// cost of an Incorrect or Skipped outcome.
type Outcome struct {
	Kind     OutcomeKind
	Score    int
	Lives    int
	Deducted int
	Word     *WordSnapshot
}

// WordSnapshot is the player-visible view of the current word. It never carries syllables.
type WordSnapshot struct {
	Word       string
	Characters []string
	CharIndex  int
}

// Snapshot returns the player-visible view of the current word, or nil.
func (s *Session) Snapshot() *WordSnapshot {
	if s.Current == nil {
		return nil
	}
	return &WordSnapshot{
		Word:       s.Current.Entry.Word,
		Characters: s.Current.Entry.Characters(),
		CharIndex:  s.Current.CharIndex,
	}
}

// Summary is handed to the ReportSink when a session ends.
type Summary struct {
	PlayerName  string
	Difficulty  Difficulty
	Score       int
	TargetScore int
	Won         bool
	Mistakes    []MistakeRecord
	StartedAt   time.Time
	EndedAt     time.Time
}

// ReportSink persists end-of-session reports. Persist must not block the
// game on storage and reports its own failures.
type ReportSink interface {
	Persist(ctx context.Context, summary Summary)
}

// NopSink discards every report.
type NopSink struct{}

func (NopSink) Persist(context.Context, Summary) {}
