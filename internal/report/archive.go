package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"pinyindrill/internal/game"
)

// Driver names a supported archive backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Archive keeps one row per finished session in a SQL database.
type Archive struct {
	db     *sql.DB
	driver Driver
}

// Entry is one archived result.
type Entry struct {
	PlayerName  string               `json:"playerName"`
	Difficulty  string               `json:"difficulty"`
	Outcome     string               `json:"outcome"`
	Score       int                  `json:"score"`
	TargetScore int                  `json:"targetScore"`
	Mistakes    []game.MistakeRecord `json:"mistakes"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// OpenArchive opens the database and ensures the reports table exists.
func OpenArchive(ctx context.Context, driver Driver, dsn string) (*Archive, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:data/reports.db?mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/pinyindrill?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported report archive driver: %q", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaFor(driver)); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Archive{db: db, driver: driver}, nil
}

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }

// Write inserts r into the archive.
func (a *Archive) Write(ctx context.Context, r Report) error {
	mistakes, err := json.Marshal(r.Mistakes)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx, a.rebind(`INSERT INTO reports
		(player_name, difficulty, outcome, score, target_score, mistakes_json, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		r.PlayerName, r.Difficulty, r.Outcome(), r.Score, r.TargetScore, string(mistakes), r.GeneratedAt.Unix())
	if err != nil {
		return fmt.Errorf("archive report: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.QueryContext(ctx, a.rebind(`SELECT player_name, difficulty, outcome, score, target_score, mistakes_json, generated_at
		FROM reports ORDER BY generated_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			mistakes  string
			generated int64
		)
		if err := rows.Scan(&e.PlayerName, &e.Difficulty, &e.Outcome, &e.Score, &e.TargetScore, &mistakes, &generated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(mistakes), &e.Mistakes); err != nil {
			return nil, fmt.Errorf("decode mistakes: %w", err)
		}
		e.GeneratedAt = time.Unix(generated, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// rebind rewrites ? placeholders as $n for postgres. It rewrites every '?',
// so it only suits queries with no '?' inside string literals or comments.
func (a *Archive) rebind(query string) string {
	if a.driver != DriverPostgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func schemaFor(driver Driver) string {
	if driver == DriverPostgres {
		return schemaPostgres
	}
	return schemaSQLite
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS reports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  player_name TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  outcome TEXT NOT NULL,
  score INTEGER NOT NULL,
  target_score INTEGER NOT NULL,
  mistakes_json TEXT NOT NULL,
  generated_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS reports (
  id BIGSERIAL PRIMARY KEY,
  player_name TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  outcome TEXT NOT NULL,
  score INTEGER NOT NULL,
  target_score INTEGER NOT NULL,
  mistakes_json TEXT NOT NULL,
  generated_at BIGINT NOT NULL
);
`
