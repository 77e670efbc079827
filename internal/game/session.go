package game

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// DefaultPlayerName is used when a player starts without typing a name.
const DefaultPlayerName = "小朋友"

// Result values recorded on a session once it ends.
const (
	ResultWon  = "won"
	ResultLost = "lost"
)

// Session is one player's game. It is owned by a single caller at a time;
// the transport layer serializes access.
type Session struct {
	PlayerName   string
	Difficulty   Difficulty
	InitialLives int
	Lives        int
	Score        int
	UsedIndices  []int
	Current      *WordProgress
	Mistakes     []MistakeRecord
	Result       string
	StartedAt    time.Time
	EndedAt      time.Time
}

// WordProgress tracks the word currently shown to the player.
type WordProgress struct {
	BankIndex      int
	Entry          WordEntry
	CharIndex      int
	MistakeFlagged [SyllablesPerWord]bool
}

// MistakeRecord collects every distinct wrong answer given for one character.
type MistakeRecord struct {
	Character       string   `json:"character"`
	CorrectSyllable string   `json:"correct"`
	Attempts        []string `json:"attempts"`
}

// Finished reports whether the session has reached Win or Lose.
func (s *Session) Finished() bool {
	return s.Result != ""
}

// Won reports whether the session ended by reaching the target score.
func (s *Session) Won() bool {
	return s.Result == ResultWon
}

func newWordProgress(idx int, entry WordEntry) *WordProgress {
	return &WordProgress{BankIndex: idx, Entry: entry}
}

// Complete reports whether every syllable of the word has been spelled.
func (p *WordProgress) Complete() bool {
	return p.CharIndex >= len(p.Entry.Syllables)
}

// recordMistake adds attempt to the record for char, creating the record if needed.
func (s *Session) recordMistake(char, correct, attempt string) {
	_, idx, found := lo.FindIndexOf(s.Mistakes, func(m MistakeRecord) bool {
		return m.Character == char
	})
	if !found {
		s.Mistakes = append(s.Mistakes, MistakeRecord{
			Character:       char,
			CorrectSyllable: correct,
			Attempts:        []string{attempt},
		})
		return
	}
	if !slices.Contains(s.Mistakes[idx].Attempts, attempt) {
		s.Mistakes[idx].Attempts = append(s.Mistakes[idx].Attempts, attempt)
	}
}

// MistakesSnapshot returns a deep copy of the mistake log.
func (s *Session) MistakesSnapshot() []MistakeRecord {
	return lo.Map(s.Mistakes, func(m MistakeRecord, _ int) MistakeRecord {
		m.Attempts = slices.Clone(m.Attempts)
		return m
	})
}
