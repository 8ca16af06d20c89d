package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/history"
	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/grader"
	"github.com/questcycle/backend/internal/store"
)

func newSQLite(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newRedis(t *testing.T) *store.RedisHistory {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := store.NewRedisClient(store.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	h, err := store.NewRedisHistory(client, "")
	require.NoError(t, err)
	return h
}

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// Every backend must behave the same way behind history.Store.
func TestHistoryBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) history.Backend{
		"sqlite": func(t *testing.T) history.Backend { return newSQLite(t).History() },
		"redis":  func(t *testing.T) history.Backend { return newRedis(t) },
		"memory": func(t *testing.T) history.Backend { return store.NewMemoryHistory() },
	}

	for name, mk := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := mk(t)

			entries, err := b.LoadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			require.NoError(t, b.Upsert(ctx, history.Entry{QuestionID: "1", AnsweredAt: at(10)}))
			require.NoError(t, b.Upsert(ctx, history.Entry{QuestionID: "2", AnsweredAt: at(20)}))
			require.NoError(t, b.Upsert(ctx, history.Entry{QuestionID: "1", AnsweredAt: at(30)}))

			entries, err = b.LoadAll(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []history.Entry{
				{QuestionID: "1", AnsweredAt: at(30)},
				{QuestionID: "2", AnsweredAt: at(20)},
			}, entries)

			require.NoError(t, b.Remove(ctx, "2"))
			require.NoError(t, b.Remove(ctx, "missing"))
			entries, err = b.LoadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)

			require.NoError(t, b.Clear(ctx))
			entries, err = b.LoadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSQLite_HistorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := store.NewSQLite(path)
	require.NoError(t, err)
	h := history.Open(ctx, s.History(), history.Options{Limit: 2}, nil)
	require.NoError(t, h.Add(ctx, "1"))
	require.NoError(t, h.Add(ctx, "2"))
	require.NoError(t, h.Add(ctx, "3"))
	h.Close()
	require.NoError(t, s.Close())

	s, err = store.NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	reopened := history.Open(ctx, s.History(), history.Options{Limit: 2}, nil)
	defer reopened.Close()
	assert.False(t, reopened.Contains("1"), "evicted entry must not come back")
	assert.True(t, reopened.Contains("2"))
	assert.True(t, reopened.Contains("3"))
}

func TestSQLite_Filter(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)

	_, err := s.LoadFilter(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	want := category.Predicates{Role: "Técnico", Source: "ITAME"}
	require.NoError(t, s.SaveFilter(ctx, want))
	require.NoError(t, s.SaveFilter(ctx, want))

	got, err := s.LoadFilter(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLite_Results(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)

	session := practicesession.New(category.Predicates{Source: "ITAME"}, []questionbank.Question{
		{ID: "1", CorrectChoice: "a"},
		{ID: "2", CorrectChoice: "b"},
	})
	result := grader.Score(session.Questions, map[questionbank.ID]questionbank.ChoiceID{
		"1": "a",
		"2": "c",
	})
	gradedAt := at(100)

	require.NoError(t, s.SaveResult(ctx, session, result, gradedAt))

	got, err := s.GetResult(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Correct)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 50.0, got.Percentage)
	assert.Equal(t, "ITAME", got.Predicates.Source)
	assert.Equal(t, gradedAt, got.GradedAt)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, questionbank.ID("1"), got.Questions[0].QuestionID)
	assert.True(t, got.Questions[0].IsCorrect)
	require.NotNil(t, got.Questions[1].Selected)
	assert.Equal(t, questionbank.ChoiceID("c"), *got.Questions[1].Selected)

	list, err := s.ListResults(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.GetResult(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_ListResultsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)

	for i, q := range []questionbank.ID{"1", "2", "3"} {
		session := practicesession.New(category.Predicates{}, []questionbank.Question{{ID: q, CorrectChoice: "a"}})
		result := grader.Score(session.Questions, map[questionbank.ID]questionbank.ChoiceID{q: "a"})
		require.NoError(t, s.SaveResult(ctx, session, result, at(int64(i))))
	}

	list, err := s.ListResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, at(2), list[0].GradedAt)
	assert.Equal(t, at(1), list[1].GradedAt)
}
