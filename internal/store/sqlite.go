// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/history"
	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/grader"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    question_id TEXT PRIMARY KEY,
    answered_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    role TEXT NOT NULL DEFAULT '',
    level TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    graded_at INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    total INTEGER NOT NULL,
    percentage REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS session_questions (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    correct_choice TEXT NOT NULL,
    selected_choice TEXT,
    is_correct BOOLEAN NOT NULL,
    PRIMARY KEY (session_id, question_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);
`

const filterKey = "filter"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ============================================================================
// History
// ============================================================================

// History exposes the history table as a history.Backend.
func (s *SQLiteStore) History() history.Backend {
	return sqliteHistory{s}
}

type sqliteHistory struct {
	s *SQLiteStore
}

func (h sqliteHistory) LoadAll(ctx context.Context) ([]history.Entry, error) {
	return h.s.LoadHistory(ctx)
}

func (h sqliteHistory) Upsert(ctx context.Context, e history.Entry) error {
	return h.s.UpsertHistory(ctx, e)
}

func (h sqliteHistory) Remove(ctx context.Context, id questionbank.ID) error {
	return h.s.RemoveHistory(ctx, id)
}

func (h sqliteHistory) Clear(ctx context.Context) error {
	return h.s.ClearHistory(ctx)
}

func (s *SQLiteStore) LoadHistory(ctx context.Context) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT question_id, answered_at FROM history ORDER BY answered_at, question_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var answeredAt int64
		if err := rows.Scan(&e.QuestionID, &answeredAt); err != nil {
			return nil, err
		}
		e.AnsweredAt = time.Unix(0, answeredAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) UpsertHistory(ctx context.Context, e history.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (question_id, answered_at) VALUES (?, ?)
		 ON CONFLICT(question_id) DO UPDATE SET answered_at = excluded.answered_at`,
		string(e.QuestionID), e.AnsweredAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) RemoveHistory(ctx context.Context, id questionbank.ID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE question_id = ?", string(id))
	return err
}

func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

// ============================================================================
// Settings
// ============================================================================

// SaveFilter remembers the last applied predicates.
func (s *SQLiteStore) SaveFilter(ctx context.Context, p category.Predicates) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		filterKey, string(data),
	)
	return err
}

// LoadFilter returns the last saved predicates or ErrNotFound.
func (s *SQLiteStore) LoadFilter(ctx context.Context) (category.Predicates, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", filterKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return category.Predicates{}, ErrNotFound
	}
	if err != nil {
		return category.Predicates{}, err
	}

	var p category.Predicates
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return category.Predicates{}, err
	}
	return p, nil
}

// ============================================================================
// Results
// ============================================================================

func (s *SQLiteStore) SaveResult(ctx context.Context, session *practicesession.PracticeSession, result *grader.Result, gradedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, role, level, source, created_at, graded_at, correct, total, percentage)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Predicates.Role, session.Predicates.Level, session.Predicates.Source,
		session.CreatedAt.UnixNano(), gradedAt.UnixNano(),
		result.Correct, result.Total, result.Percentage,
	)
	if err != nil {
		return err
	}

	for i, d := range result.Details {
		var selected sql.NullString
		if d.Selected != nil {
			selected = sql.NullString{String: string(*d.Selected), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_questions (session_id, question_id, position, correct_choice, selected_choice, is_correct)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			session.ID, string(d.QuestionID), i, string(d.CorrectChoice), selected, d.IsCorrect,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListResults returns archived sessions, newest first. limit <= 0 means all.
func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]StoredResult, error) {
	query := `SELECT id, role, level, source, created_at, graded_at, correct, total, percentage
	          FROM sessions ORDER BY graded_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var results []StoredResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range results {
		answers, err := s.loadAnswers(ctx, results[i].SessionID)
		if err != nil {
			return nil, err
		}
		results[i].Questions = answers
	}
	return results, nil
}

func (s *SQLiteStore) GetResult(ctx context.Context, sessionID string) (*StoredResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, role, level, source, created_at, graded_at, correct, total, percentage
		 FROM sessions WHERE id = ?`, sessionID)

	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.Questions, err = s.loadAnswers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (StoredResult, error) {
	var r StoredResult
	var createdAt, gradedAt int64
	err := row.Scan(
		&r.SessionID,
		&r.Predicates.Role, &r.Predicates.Level, &r.Predicates.Source,
		&createdAt, &gradedAt,
		&r.Correct, &r.Total, &r.Percentage,
	)
	if err != nil {
		return StoredResult{}, err
	}
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	r.GradedAt = time.Unix(0, gradedAt).UTC()
	return r, nil
}

func (s *SQLiteStore) loadAnswers(ctx context.Context, sessionID string) ([]StoredAnswer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, correct_choice, selected_choice, is_correct
		 FROM session_questions WHERE session_id = ? ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []StoredAnswer
	for rows.Next() {
		var a StoredAnswer
		var selected sql.NullString
		if err := rows.Scan(&a.QuestionID, &a.CorrectChoice, &selected, &a.IsCorrect); err != nil {
			return nil, err
		}
		if selected.Valid {
			c := questionbank.ChoiceID(selected.String)
			a.Selected = &c
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
