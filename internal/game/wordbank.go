package game

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// SyllablesPerWord is the number of characters, and therefore syllables, in every word.
const SyllablesPerWord = 2

// FallbackEntry keeps the game playable when the word file cannot be used.
var FallbackEntry = WordEntry{Word: "你好", Syllables: [SyllablesPerWord]string{"ni", "hao"}}

// WordEntry is one two-character word and the pinyin for each character.
type WordEntry struct {
	Word      string
	Syllables [SyllablesPerWord]string
}

// Characters splits the word into its individual characters.
func (e WordEntry) Characters() []string {
	return lo.Map([]rune(e.Word), func(r rune, _ int) string { return string(r) })
}

// Character returns the character at position i, or "" when out of range.
func (e WordEntry) Character(i int) string {
	chars := e.Characters()
	if i < 0 || i >= len(chars) {
		return ""
	}
	return chars[i]
}

// WordBank is the immutable list of playable words shared by all sessions.
type WordBank struct {
	entries []WordEntry
}

// NewWordBank builds a bank from entries. The slice is copied.
func NewWordBank(entries []WordEntry) *WordBank {
	return &WordBank{entries: append([]WordEntry(nil), entries...)}
}

// Len returns the number of words in the bank.
func (b *WordBank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entry returns the word at index i.
func (b *WordBank) Entry(i int) (WordEntry, bool) {
	if i < 0 || i >= b.Len() {
		return WordEntry{}, false
	}
	return b.entries[i], true
}

// LoadWordBank reads a word,syllable1,syllable2 CSV file.
// Rows with a missing field or a word that is not two characters long are skipped.
// Syllables are kept as written after trimming; answers must match them exactly.
// Malformed CSV lines are skipped like any other bad row.
func LoadWordBank(path string) (*WordBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := parseWordRows(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("words", len(entries)).Msg("loaded word bank")
	return NewWordBank(entries), nil
}

// LoadWordBankOrFallback loads path and falls back to a single built-in word
// when the file is missing, unreadable, or yields no usable rows.
func LoadWordBankOrFallback(path string) *WordBank {
	bank, err := LoadWordBank(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("word bank load failed, using fallback word")
		return NewWordBank([]WordEntry{FallbackEntry})
	}
	if bank.Len() == 0 {
		log.Warn().Str("path", path).Msg("word bank is empty, using fallback word")
		return NewWordBank([]WordEntry{FallbackEntry})
	}
	return bank
}

func parseWordRows(r io.Reader) ([]WordEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var entries []WordEntry
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Debug().Err(err).Int("line", parseErr.Line).Msg("skipping malformed word row")
			continue
		}
		if err != nil {
			return nil, err
		}
		entry, ok := parseWordRow(record)
		if !ok {
			log.Debug().Int("line", line).Strs("record", record).Msg("skipping word row")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseWordRow(record []string) (WordEntry, bool) {
	if len(record) != 1+SyllablesPerWord {
		return WordEntry{}, false
	}
	fields := lo.Map(record, func(s string, _ int) string { return strings.TrimSpace(s) })
	if lo.Contains(fields, "") {
		return WordEntry{}, false
	}
	if utf8.RuneCountInString(fields[0]) != SyllablesPerWord {
		return WordEntry{}, false
	}
	return WordEntry{
		Word:      fields[0],
		Syllables: [SyllablesPerWord]string{fields[1], fields[2]},
	}, true
}
