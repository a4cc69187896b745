// Package sqlite is the durable entity store, selected with
// DATA_BACKEND=sqlite. The schema lives in embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drawtrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u core.NewUser) (core.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, avatar_url, is_admin)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.AvatarURL, u.IsAdmin)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user insert id: %w", err)
	}
	return core.User{
		ID:           id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		IsAdmin:      u.IsAdmin,
	}, nil
}

const userColumns = `id, username, email, password, avatar_url, is_admin`

func (s *Store) GetUser(ctx context.Context, id int64) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row, fmt.Sprintf("user %d", id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? ORDER BY id LIMIT 1`, username)
	return scanUser(row, fmt.Sprintf("user %q", username))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY id LIMIT 1`, email)
	return scanUser(row, fmt.Sprintf("user %q", email))
}

func (s *Store) GetAllUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := make([]core.User, 0)
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func scanUser(row *sql.Row, what string) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, fmt.Errorf("%s: %w", what, core.ErrNotFound)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan %s: %w", what, err)
	}
	return u, nil
}

const entryColumns = `id, user_id, client_name, drawing_title, drawing_description,
	deadline, amount, date_created, completed, favorite`

func (s *Store) CreateDrawingEntry(ctx context.Context, e core.DrawingEntry) (core.DrawingEntry, error) {
	if e.DateCreated.IsZero() {
		e.DateCreated = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO drawing_entries
		 (user_id, client_name, drawing_title, drawing_description, deadline, amount, date_created, completed, favorite)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.ClientName, e.DrawingTitle, e.DrawingDescription,
		deadlineValue(e.Deadline), e.Amount, e.DateCreated.UTC().Format(time.RFC3339Nano),
		e.Completed, e.Favorite)
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("entry insert id: %w", err)
	}
	e.ID = id
	return e, nil
}

func (s *Store) GetDrawingEntry(ctx context.Context, id int64) (core.DrawingEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM drawing_entries WHERE id = ?`, id)

	var (
		e           core.DrawingEntry
		deadline    sql.NullString
		dateCreated string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ClientName, &e.DrawingTitle, &e.DrawingDescription,
		&deadline, &e.Amount, &dateCreated, &e.Completed, &e.Favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("scan entry %d: %w", id, err)
	}
	if err := fillEntryTimes(&e, deadline, dateCreated); err != nil {
		return core.DrawingEntry{}, err
	}
	return e, nil
}

func (s *Store) GetDrawingEntries(ctx context.Context, userID int64) ([]core.DrawingEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM drawing_entries WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := make([]core.DrawingEntry, 0)
	for rows.Next() {
		var (
			e           core.DrawingEntry
			deadline    sql.NullString
			dateCreated string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.ClientName, &e.DrawingTitle, &e.DrawingDescription,
			&deadline, &e.Amount, &dateCreated, &e.Completed, &e.Favorite); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if err := fillEntryTimes(&e, deadline, dateCreated); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateDrawingEntry(ctx context.Context, e core.DrawingEntry) (core.DrawingEntry, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE drawing_entries
		 SET client_name = ?, drawing_title = ?, drawing_description = ?,
		     deadline = ?, amount = ?, completed = ?, favorite = ?
		 WHERE id = ?`,
		e.ClientName, e.DrawingTitle, e.DrawingDescription,
		deadlineValue(e.Deadline), e.Amount, e.Completed, e.Favorite, e.ID)
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("update entry %d rows: %w", e.ID, err)
	}
	if n == 0 {
		return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", e.ID, core.ErrNotFound)
	}
	return e, nil
}

func (s *Store) DeleteDrawingEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM drawing_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry %d rows: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func deadlineValue(d core.Date) any {
	if d.IsEmpty() {
		return nil
	}
	return d.String()
}

func fillEntryTimes(e *core.DrawingEntry, deadline sql.NullString, dateCreated string) error {
	if deadline.Valid && deadline.String != "" {
		d, err := core.ParseDate(deadline.String)
		if err != nil {
			return fmt.Errorf("entry %d deadline %q: %w", e.ID, deadline.String, err)
		}
		e.Deadline = d
	}
	t, err := time.Parse(time.RFC3339Nano, dateCreated)
	if err != nil {
		// rows inserted by SQLite's CURRENT_TIMESTAMP default
		t, err = time.Parse("2006-01-02 15:04:05", dateCreated)
		if err != nil {
			return fmt.Errorf("entry %d date_created %q: %w", e.ID, dateCreated, err)
		}
	}
	e.DateCreated = t
	return nil
}
