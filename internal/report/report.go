// Package report turns finished game sessions into mistake reports and
// persists them to disk and to an optional SQL archive.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"

	"pinyindrill/internal/game"
)

const (
	fileTimeLayout    = "20060102_150405"
	displayTimeLayout = "2006-01-02 15:04:05"
)

// Report is the persisted record of one finished session.
type Report struct {
	PlayerName  string
	Difficulty  string
	Score       int
	TargetScore int
	Won         bool
	Mistakes    []game.MistakeRecord
	StartedAt   time.Time
	GeneratedAt time.Time
}

// Writer persists a report somewhere durable.
type Writer interface {
	Write(ctx context.Context, r Report) error
}

// FromSummary builds a report generated at now.
func FromSummary(s game.Summary, now time.Time) Report {
	return Report{
		PlayerName:  s.PlayerName,
		Difficulty:  string(s.Difficulty),
		Score:       s.Score,
		TargetScore: s.TargetScore,
		Won:         s.Won,
		Mistakes:    s.Mistakes,
		StartedAt:   s.StartedAt,
		GeneratedAt: now,
	}
}

// Outcome returns "won" or "lost".
func (r Report) Outcome() string {
	if r.Won {
		return game.ResultWon
	}
	return game.ResultLost
}

// FileName returns the deterministic file name for r: <player>_<timestamp>.txt.
func FileName(r Report) string {
	return fmt.Sprintf("%s_%s.txt", sanitizeName(r.PlayerName), r.GeneratedAt.Format(fileTimeLayout))
}

// Render writes the human-readable report.
func Render(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s 的拼音错题本 ---\n", r.PlayerName)
	fmt.Fprintf(&b, "报告生成时间: %s\n", r.GeneratedAt.Format(displayTimeLayout))
	fmt.Fprintf(&b, "最终得分: %d / %d\n", r.Score, r.TargetScore)
	fmt.Fprintf(&b, "结果: %s\n\n", lo.Ternary(r.Won, "胜利", "失败"))

	if len(r.Mistakes) == 0 {
		b.WriteString("太棒了，本局没有错题！\n")
	}
	for _, m := range r.Mistakes {
		fmt.Fprintf(&b, "汉字: %s\n", m.Character)
		fmt.Fprintf(&b, "  - 正确拼音: %s\n", m.CorrectSyllable)
		fmt.Fprintf(&b, "  - 错误尝试: %s\n\n", strings.Join(m.Attempts, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sanitizeName keeps letters, digits, '-' and '_' so the player name is safe in a file name.
func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "player"
	}
	return cleaned
}
