package main

import (
	"bufio"
	"os"
	"strings"
	"testing"
	"unicode"

	"pinyindrill/internal/game"
)

const wordsFile = "data/words.csv"

func TestWordsCSV_AllRowsLoad(t *testing.T) {
	f, err := os.Open(wordsFile)
	if err != nil {
		t.Fatalf("failed to open %s: %v", wordsFile, err)
	}
	defer f.Close()
	rows := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			rows++
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	bank, err := game.LoadWordBank(wordsFile)
	if err != nil {
		t.Fatalf("LoadWordBank: %v", err)
	}
	if bank.Len() != rows {
		t.Errorf("loaded %d words from %d rows; some rows were skipped", bank.Len(), rows)
	}
}

func TestWordsCSV_NoDuplicatesAndWellFormed(t *testing.T) {
	bank, err := game.LoadWordBank(wordsFile)
	if err != nil {
		t.Fatalf("LoadWordBank: %v", err)
	}
	seen := make(map[string]struct{})
	for i := 0; i < bank.Len(); i++ {
		entry, _ := bank.Entry(i)
		if _, ok := seen[entry.Word]; ok {
			t.Errorf("duplicate word in %s: %s", wordsFile, entry.Word)
		}
		seen[entry.Word] = struct{}{}

		for _, r := range entry.Word {
			if !unicode.Is(unicode.Han, r) {
				t.Errorf("%s: %q is not a Han character", entry.Word, r)
			}
		}
		for _, syl := range entry.Syllables {
			if syl != game.Normalize(syl) {
				t.Errorf("%s: syllable %q is not in normalized form", entry.Word, syl)
			}
			if strings.ContainsRune(syl, 'v') {
				t.Errorf("%s: syllable %q should spell ü, not v", entry.Word, syl)
			}
		}
	}
}
