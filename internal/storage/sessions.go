package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// creates a session row, or refreshes mode/style on an existing one
func (c *Client) UpsertSession(ctx context.Context, session Session) error {
	_, err := c.pool.Exec(ctx, upsertSessionQuery,
		session.ID,
		session.Collection,
		session.Mode,
		session.Style,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	return nil
}

// returns nil when the session does not exist
func (c *Client) SessionByID(ctx context.Context, sessionID string) (*Session, error) {
	var session Session

	err := c.pool.QueryRow(ctx, sessionByIDQuery, sessionID).Scan(
		&session.ID,
		&session.Collection,
		&session.Mode,
		&session.Style,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	return &session, nil
}

// appends a message to the session transcript and bumps updated_at.
// citations may be nil for user messages.
func (c *Client) InsertMessage(ctx context.Context, sessionID, role, content string, citations json.RawMessage) (int64, error) {
	var messageID int64

	err := c.pool.QueryRow(ctx, insertMessageQuery, sessionID, role, content, citations).Scan(&messageID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	if _, err := c.pool.Exec(ctx, touchSessionQuery, sessionID); err != nil {
		return 0, fmt.Errorf("failed to touch session: %w", err)
	}

	return messageID, nil
}

// returns the last limit messages in chronological order.
// insertion id gives the ordering, timestamps can collide.
func (c *Client) ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	rows, err := c.pool.Query(ctx, recentMessagesQuery, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// returns the full transcript in chronological order
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := c.pool.Query(ctx, listMessagesQuery, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// counts completed turns, one assistant reply per turn
func (c *Client) CountTurns(ctx context.Context, sessionID string) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, countTurnsQuery, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}

	return count, nil
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	var messages []Message

	for rows.Next() {
		var msg Message

		err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Citations, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}
