package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu   sync.Mutex
	recs []PlayerRecord
	err  error
}

func (m *memRepo) Append(_ context.Context, r PlayerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, e := range m.recs {
		if e.ID == r.ID {
			return nil
		}
	}
	m.recs = append(m.recs, r)
	return nil
}

func (m *memRepo) All(context.Context) ([]PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayerRecord(nil), m.recs...), nil
}

func TestFanout_AppendsEverywhere(t *testing.T) {
	primary, mirror := &memRepo{}, &memRepo{}
	f := NewFanout(primary, mirror)

	require.NoError(t, f.Append(context.Background(), rec("a", 5, 10)))
	assert.Len(t, primary.recs, 1)
	assert.Len(t, mirror.recs, 1)

	all, err := f.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFanout_MirrorFailureKeepsPrimary(t *testing.T) {
	boom := errors.New("boom")
	primary, mirror := &memRepo{}, &memRepo{err: boom}
	f := NewFanout(primary, mirror)

	err := f.Append(context.Background(), rec("a", 5, 10))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, primary.recs, 1)
}

func TestRanked(t *testing.T) {
	repo := &memRepo{recs: []PlayerRecord{rec("a", 1, 10), rec("b", 3, 10)}}
	got, err := Ranked(context.Background(), repo)
	require.NoError(t, err)
	equalIDs(t, got, "b", "a")
}

func TestImportInto_Idempotent(t *testing.T) {
	repo := &memRepo{recs: []PlayerRecord{rec("a", 1, 10)}}
	in := []PlayerRecord{rec("a", 1, 10), rec("b", 2, 20)}

	n, err := ImportInto(context.Background(), repo, in)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ImportInto(context.Background(), repo, in)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, repo.recs, 2)
}
