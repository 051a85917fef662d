package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Repo persists leaderboard records. Append must be idempotent on ID.
type Repo interface {
	Append(ctx context.Context, rec PlayerRecord) error
	All(ctx context.Context) ([]PlayerRecord, error)
}

// Fanout writes to every repo concurrently and reads from the first.
type Fanout struct {
	primary Repo
	mirrors []Repo
}

// NewFanout returns a Repo over primary and any number of mirrors.
func NewFanout(primary Repo, mirrors ...Repo) *Fanout {
	return &Fanout{primary: primary, mirrors: mirrors}
}

// Append writes rec to all repos. A failed mirror does not undo the
// primary write; all failures are joined in the returned error.
func (f *Fanout) Append(ctx context.Context, rec PlayerRecord) error {
	repos := append([]Repo{f.primary}, f.mirrors...)
	errs := make([]error, len(repos))

	var g errgroup.Group
	for i, r := range repos {
		g.Go(func() error {
			if err := r.Append(ctx, rec); err != nil {
				errs[i] = fmt.Errorf("repo %d: %w", i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// All reads from the primary repo.
func (f *Fanout) All(ctx context.Context) ([]PlayerRecord, error) {
	return f.primary.All(ctx)
}

// Ranked loads every record from repo and ranks it.
func Ranked(ctx context.Context, repo Repo) ([]PlayerRecord, error) {
	recs, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return Rank(recs), nil
}

// ImportInto appends every record not already in repo and reports how
// many were new.
func ImportInto(ctx context.Context, repo Repo, records []PlayerRecord) (int, error) {
	existing, err := repo.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load leaderboard: %w", err)
	}
	merged, added := Merge(existing, records)
	for _, r := range merged[len(merged)-added:] {
		if err := repo.Append(ctx, r); err != nil {
			return 0, fmt.Errorf("append %s: %w", r.ID, err)
		}
	}
	return added, nil
}
