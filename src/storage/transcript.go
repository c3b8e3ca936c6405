package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

var (
	ErrTranscriptNotFound  = errors.New("transcript not found")
	ErrAmbiguousTranscript = errors.New("transcript id prefix is ambiguous")
)

// SaveTranscript stores a transcript and its turns atomically. Missing IDs and
// timestamps are filled in; turn sequence numbers follow slice order.
func (d *DB) SaveTranscript(ctx context.Context, transcript *Transcript, turns []Turn) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := CreateTranscript(ctx, tx, transcript); err != nil {
		return fmt.Errorf("failed to create transcript: %w", err)
	}

	for i := range turns {
		turns[i].TranscriptID = transcript.ID
		turns[i].Seq = i + 1
		if err := CreateTurn(ctx, tx, &turns[i]); err != nil {
			return fmt.Errorf("failed to save turn %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// CreateTranscript inserts a transcript row.
func CreateTranscript(ctx context.Context, db Execer, transcript *Transcript) error {
	if transcript.ID == "" {
		transcript.ID = uuid.New().String()
	}
	if transcript.ToolNames == nil {
		transcript.ToolNames = JSONStringArray{}
	}
	if transcript.CreatedAt.IsZero() {
		transcript.CreatedAt = time.Now()
	}

	query := `INSERT INTO transcripts (id, title, endpoint, backend, model, tool_names, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		transcript.ID, transcript.Title, transcript.Endpoint, transcript.Backend,
		transcript.Model, transcript.ToolNames, transcript.CreatedAt)
	return err
}

// CreateTurn inserts a single turn row.
func CreateTurn(ctx context.Context, db Execer, turn *Turn) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	query := `INSERT INTO turns (id, transcript_id, seq, user_text, assistant_text, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		turn.ID, turn.TranscriptID, turn.Seq, turn.UserText, turn.AssistantText, turn.CreatedAt)
	return err
}

// ListTranscripts returns saved transcripts, newest first. A limit <= 0
// returns all of them.
func ListTranscripts(ctx context.Context, db sqlscan.Querier, limit int) ([]TranscriptSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
	SELECT t.id, t.title, t.endpoint, t.backend, t.model, t.tool_names, t.created_at,
		(SELECT COUNT(*) FROM turns WHERE turns.transcript_id = t.id) AS turn_count
	FROM transcripts t
	ORDER BY t.created_at DESC, t.id
	LIMIT ?`

	var out []TranscriptSummary
	if err := sqlscan.Select(ctx, db, &out, query, limit); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTranscript finds a transcript by full id or by a unique id prefix.
func GetTranscript(ctx context.Context, db sqlscan.Querier, idOrPrefix string) (*Transcript, error) {
	if idOrPrefix == "" {
		return nil, ErrTranscriptNotFound
	}

	query := `SELECT id, title, endpoint, backend, model, tool_names, created_at FROM transcripts WHERE id = ?`
	var t Transcript
	err := sqlscan.Get(ctx, db, &t, query, idOrPrefix)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var matches []Transcript
	query = `SELECT id, title, endpoint, backend, model, tool_names, created_at FROM transcripts WHERE substr(id, 1, ?) = ? LIMIT 2`
	if err := sqlscan.Select(ctx, db, &matches, query, len(idOrPrefix), idOrPrefix); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, ErrTranscriptNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousTranscript, idOrPrefix)
	}
}

// GetTurns returns the turns of a transcript in order.
func GetTurns(ctx context.Context, db sqlscan.Querier, transcriptID string) ([]Turn, error) {
	query := `SELECT id, transcript_id, seq, user_text, assistant_text, created_at FROM turns WHERE transcript_id = ? ORDER BY seq`
	var turns []Turn
	if err := sqlscan.Select(ctx, db, &turns, query, transcriptID); err != nil {
		return nil, err
	}
	return turns, nil
}

// DeleteTranscript removes a transcript and its turns.
func DeleteTranscript(ctx context.Context, db Execer, transcriptID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM transcripts WHERE id = ?`, transcriptID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTranscriptNotFound
	}
	return nil
}
