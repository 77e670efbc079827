package game

import "errors"

var (
	// ErrInvalidState is returned when an answer or skip arrives for a session
	// that has no playable current word.
	ErrInvalidState = errors.New("invalid state")

	// ErrEmptyWordBank is returned by Start when no word can be selected.
	ErrEmptyWordBank = errors.New("word bank is empty")

	// ErrExhausted is returned by the selector when the bank has no indices at all.
	ErrExhausted = errors.New("no words available")

	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidConfig     = errors.New("invalid game config")
)
