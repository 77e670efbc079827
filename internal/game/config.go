package game

import (
	"fmt"
	"strings"
)

// Difficulty selects how many lives a session starts with.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// Default game constants.
const (
	DefaultTargetScore    = 20
	DefaultMistakePenalty = 1
	DefaultSkipPenalty    = 1
	DefaultLivesEasy      = 12
	DefaultLivesHard      = 6
)

// Config holds the rules for every session started by an Engine.
// It is chosen once at startup and never mutated afterwards.
type Config struct {
	TargetScore       int
	MistakePenalty    int
	SkipPenalty       int
	LivesByDifficulty map[Difficulty]int
}

// DefaultConfig returns the standard rule set.
func DefaultConfig() Config {
	return Config{
		TargetScore:    DefaultTargetScore,
		MistakePenalty: DefaultMistakePenalty,
		SkipPenalty:    DefaultSkipPenalty,
		LivesByDifficulty: map[Difficulty]int{
			DifficultyEasy: DefaultLivesEasy,
			DifficultyHard: DefaultLivesHard,
		},
	}
}

// Validate reports whether every rule is usable.
func (c Config) Validate() error {
	if c.TargetScore < 1 {
		return fmt.Errorf("%w: target score %d", ErrInvalidConfig, c.TargetScore)
	}
	if c.MistakePenalty < 0 || c.SkipPenalty < 0 {
		return fmt.Errorf("%w: negative penalty", ErrInvalidConfig)
	}
	if len(c.LivesByDifficulty) == 0 {
		return fmt.Errorf("%w: no difficulties configured", ErrInvalidConfig)
	}
	for d, lives := range c.LivesByDifficulty {
		if lives < 1 {
			return fmt.Errorf("%w: %s starts with %d lives", ErrInvalidConfig, d, lives)
		}
	}
	return nil
}

// LivesFor returns the starting lives for a difficulty.
func (c Config) LivesFor(d Difficulty) (int, error) {
	lives, ok := c.LivesByDifficulty[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return lives, nil
}

// ParseDifficulty maps form input to a Difficulty. Blank input selects easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DifficultyEasy):
		return DifficultyEasy, nil
	case string(DifficultyHard):
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}
