package storage

import (
	"context"
	"fmt"
)

// records a feedback entry and returns its id.
// the session reference is weak, sessions may be deleted independently.
func (c *Client) InsertFeedback(ctx context.Context, entry FeedbackEntry) (int64, error) {
	var feedbackID int64

	err := c.pool.QueryRow(ctx, insertFeedbackQuery,
		nullIfEmpty(entry.SessionID),
		entry.Question,
		entry.Answer,
		entry.Verdict,
		entry.Comment,
		entry.Collection,
		nullIfEmpty(entry.Mode),
		entry.Citations,
		entry.Metadata,
	).Scan(&feedbackID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}

	return feedbackID, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}

// aggregates verdict counts, optionally scoped to one collection.
// an empty collection means all collections.
func (c *Client) GetFeedbackSummary(ctx context.Context, collection string) (*FeedbackSummary, error) {
	var summary FeedbackSummary

	err := c.pool.QueryRow(ctx, feedbackSummaryQuery, collection).Scan(
		&summary.Total,
		&summary.Positive,
		&summary.Negative,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback summary: %w", err)
	}

	summary.PositiveRate = positiveRate(summary.Positive, summary.Total)

	return &summary, nil
}

// share of positive verdicts; zero when no feedback exists yet
func positiveRate(positive, total int) float64 {
	if total <= 0 {
		return 0
	}

	return float64(positive) / float64(total)
}
