package storage

import (
	"context"
	"fmt"
	"time"
)

// EpisodeRecord is one finished rollout episode.
type EpisodeRecord struct {
	ID          int64
	Policy      string
	Seed        int64
	Steps       int
	Lines       int
	Score       int
	TotalReward float64
	Truncated   bool
	CreatedAt   time.Time
}

// PolicyStats aggregates the stored episodes of one policy.
type PolicyStats struct {
	Policy     string
	Episodes   int
	MeanLines  float64
	MaxLines   int
	MeanReward float64
	MeanSteps  float64
}

// SaveEpisodes inserts all records in one transaction. Either every record is
// stored or none is.
func (s *Store) SaveEpisodes(ctx context.Context, records []EpisodeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO episodes (policy, seed, steps, lines, score, total_reward, truncated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare episode insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Policy, r.Seed, r.Steps, r.Lines, r.Score, r.TotalReward, r.Truncated,
		); err != nil {
			return fmt.Errorf("storage: cannot save episode (seed %d): %w", r.Seed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit episodes: %w", err)
	}
	return nil
}

// TopEpisodes returns the episodes of a policy with the most lines cleared.
// An empty policy matches all policies. A non-positive limit defaults to 10.
func (s *Store) TopEpisodes(policy string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, policy, seed, steps, lines, score, total_reward, truncated, created_at
		 FROM episodes
		 WHERE ? = '' OR policy = ?
		 ORDER BY lines DESC, total_reward DESC, id ASC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Policy, &r.Seed, &r.Steps, &r.Lines, &r.Score,
			&r.TotalReward, &r.Truncated, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan episode: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// PolicyStats aggregates stored episodes per policy, ordered by policy name.
func (s *Store) PolicyStats() ([]PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), AVG(lines), MAX(lines), AVG(total_reward), AVG(steps)
		 FROM episodes
		 GROUP BY policy
		 ORDER BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	defer rows.Close()

	var stats []PolicyStats
	for rows.Next() {
		var p PolicyStats
		if err := rows.Scan(&p.Policy, &p.Episodes, &p.MeanLines, &p.MaxLines, &p.MeanReward, &p.MeanSteps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearEpisodes deletes stored episodes of a policy, or all when policy is empty.
func (s *Store) ClearEpisodes(policy string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE ? = '' OR policy = ?", policy, policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}
