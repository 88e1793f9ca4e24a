package graveyard

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches the requested name.
var ErrNotFound = errors.New("graveyard: session not found")

// Grave is a session record. ExitedAt is nil while the session is alive.
type Grave struct {
	ID        string
	Name      string
	TmuxKey   string
	Dir       string
	FirstSeen time.Time
	LastSeen  time.Time
	ExitedAt  *time.Time
}

// Sighting is a live session observed on the tmux server.
type Sighting struct {
	Name string
	Key  string
	Dir  string
}

const graveColumns = `id, name, tmux_key, dir, first_seen, last_seen, exited_at`

// Record stores the live sessions observed at seenAt.
//
// Alive records whose tmux key is no longer present are marked exited at their
// last sighting first, so a restarted server reusing session ids can't steal
// them. A live session then either updates the alive record with its key
// (following renames) or upserts by name, which also revives an exited record.
func (db *DB) Record(live []Sighting, seenAt time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seenAt = seenAt.UTC()
	if err := reconcile(tx, live); err != nil {
		return err
	}
	if err := parkRenamed(tx, live); err != nil {
		return err
	}

	for _, s := range live {
		if _, err := tx.Exec(`DELETE FROM graves WHERE name = ? AND exited_at IS NOT NULL`, s.Name); err != nil {
			return fmt.Errorf("failed to clear exited %s: %w", s.Name, err)
		}

		res, err := tx.Exec(`
			UPDATE graves SET name = ?, dir = ?, last_seen = ?
			WHERE tmux_key = ? AND exited_at IS NULL
		`, s.Name, s.Dir, seenAt, s.Key)
		if err != nil {
			return fmt.Errorf("failed to update session %s: %w", s.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			continue
		}

		_, err = tx.Exec(`
			INSERT INTO graves (`+graveColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, NULL)
			ON CONFLICT(name) DO UPDATE SET
				tmux_key = excluded.tmux_key,
				dir = excluded.dir,
				last_seen = excluded.last_seen,
				exited_at = NULL
		`, uuid.New().String(), s.Name, s.Key, s.Dir, seenAt, seenAt)
		if err != nil {
			return fmt.Errorf("failed to insert session %s: %w", s.Name, err)
		}
	}

	return tx.Commit()
}

func reconcile(tx *sql.Tx, live []Sighting) error {
	query := `UPDATE graves SET exited_at = last_seen WHERE exited_at IS NULL`
	args := make([]interface{}, 0, len(live))
	if len(live) > 0 {
		placeholders := make([]string, len(live))
		for i, s := range live {
			placeholders[i] = "?"
			args = append(args, s.Key)
		}
		query += " AND tmux_key NOT IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to reconcile sessions: %w", err)
	}
	return nil
}

// parkRenamed moves every alive record whose key was sighted under another
// name onto its id, which can't clash with a session name. Sessions that
// swapped names between two sightings can then take their new names one by
// one without tripping the unique constraint.
func parkRenamed(tx *sql.Tx, live []Sighting) error {
	for _, s := range live {
		_, err := tx.Exec(`
			UPDATE graves SET name = id
			WHERE tmux_key = ? AND name <> ? AND exited_at IS NULL
		`, s.Key, s.Name)
		if err != nil {
			return fmt.Errorf("failed to park renamed session %s: %w", s.Name, err)
		}
	}
	return nil
}

// MarkExited records that the named session exited at the given time.
// Already-exited or unknown sessions are left alone.
func (db *DB) MarkExited(name string, at time.Time) error {
	at = at.UTC()
	_, err := db.conn.Exec(`
		UPDATE graves SET exited_at = ?, last_seen = ?
		WHERE name = ? AND exited_at IS NULL
	`, at, at, name)
	if err != nil {
		return fmt.Errorf("failed to mark %s exited: %w", name, err)
	}
	return nil
}

// Get retrieves a record by session name.
func (db *DB) Get(name string) (*Grave, error) {
	row := db.conn.QueryRow(`SELECT `+graveColumns+` FROM graves WHERE name = ?`, name)
	g, err := scanGrave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return g, nil
}

// ListExited returns exited sessions, most recently exited first.
func (db *DB) ListExited() ([]*Grave, error) {
	rows, err := db.conn.Query(`
		SELECT ` + graveColumns + `
		FROM graves
		WHERE exited_at IS NOT NULL
		ORDER BY exited_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exited sessions: %w", err)
	}
	defer rows.Close()

	graves := []*Grave{}
	for rows.Next() {
		g, err := scanGrave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		graves = append(graves, g)
	}
	return graves, rows.Err()
}

// Delete forgets an exited session. Live sessions are never deleted.
func (db *DB) Delete(name string) error {
	res, err := db.conn.Exec(`DELETE FROM graves WHERE name = ? AND exited_at IS NOT NULL`, name)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllExited forgets every exited session and reports how many were removed.
func (db *DB) DeleteAllExited() (int, error) {
	res, err := db.conn.Exec(`DELETE FROM graves WHERE exited_at IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete exited sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGrave(s scanner) (*Grave, error) {
	var g Grave
	err := s.Scan(&g.ID, &g.Name, &g.TmuxKey, &g.Dir, &g.FirstSeen, &g.LastSeen, &g.ExitedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
