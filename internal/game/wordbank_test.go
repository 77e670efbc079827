package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWordRows(t *testing.T) {
	input := strings.Join([]string{
		"你好,ni,hao",
		" 绿色 , lü , se ",
		"朋友,peng",
		"老师,,shi",
		"学,xue,sheng",
		"学生,xue,sheng,extra",
		"",
		"谢谢,xie,xie",
		"女儿,NV,er",
		"朋\"友,peng,you",
		"再见,zai,jian",
	}, "\n")

	entries, err := parseWordRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseWordRows() error = %v", err)
	}
	want := []WordEntry{
		{Word: "你好", Syllables: [2]string{"ni", "hao"}},
		{Word: "绿色", Syllables: [2]string{"lü", "se"}},
		{Word: "谢谢", Syllables: [2]string{"xie", "xie"}},
		{Word: "女儿", Syllables: [2]string{"NV", "er"}},
		{Word: "再见", Syllables: [2]string{"zai", "jian"}},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestLoadWordBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte("你好,ni,hao\n朋友,peng,you\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bank, err := LoadWordBank(path)
	if err != nil {
		t.Fatalf("LoadWordBank() error = %v", err)
	}
	if bank.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bank.Len())
	}
	e, ok := bank.Entry(1)
	if !ok || e.Word != "朋友" {
		t.Errorf("Entry(1) = %+v, %v", e, ok)
	}
	if _, ok := bank.Entry(2); ok {
		t.Error("Entry(2) should be out of range")
	}
}

func TestLoadWordBank_StrayQuoteKeepsOtherRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	data := "你好,ni,hao\n朋友,peng,you\n朋\"友,peng,you\n老师,lao,shi\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	bank := LoadWordBankOrFallback(path)
	if bank.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", bank.Len())
	}
	if e, _ := bank.Entry(2); e.Word != "老师" {
		t.Errorf("Entry(2) = %+v, want 老师", e)
	}
}

func TestLoadWordBank_Missing(t *testing.T) {
	_, err := LoadWordBank(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestLoadWordBankOrFallback(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("bad,row\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for name, path := range map[string]string{
		"missing": filepath.Join(dir, "missing.csv"),
		"empty":   empty,
	} {
		bank := LoadWordBankOrFallback(path)
		if bank.Len() != 1 {
			t.Errorf("%s: Len() = %d, want 1", name, bank.Len())
			continue
		}
		if e, _ := bank.Entry(0); e != FallbackEntry {
			t.Errorf("%s: Entry(0) = %+v, want fallback", name, e)
		}
	}
}

func TestWordEntryCharacters(t *testing.T) {
	e := WordEntry{Word: "你好", Syllables: [2]string{"ni", "hao"}}
	chars := e.Characters()
	if len(chars) != 2 || chars[0] != "你" || chars[1] != "好" {
		t.Errorf("Characters() = %v", chars)
	}
	if e.Character(1) != "好" || e.Character(2) != "" || e.Character(-1) != "" {
		t.Errorf("Character() out of range handling wrong")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	bad := []Config{
		{TargetScore: 0, LivesByDifficulty: map[Difficulty]int{DifficultyEasy: 1}},
		{TargetScore: 1, MistakePenalty: -1, LivesByDifficulty: map[Difficulty]int{DifficultyEasy: 1}},
		{TargetScore: 1},
		{TargetScore: 1, LivesByDifficulty: map[Difficulty]int{DifficultyEasy: 0}},
	}
	for i, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: Validate() = %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		err  bool
	}{
		{"", DifficultyEasy, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"medium", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", tt.in, got, err)
		}
	}
}
