package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/worker"
)

// ErrStorageUnavailable is wrapped by the one-time warning returned after
// the durable backend fails and the store falls back to memory.
var ErrStorageUnavailable = errors.New("history storage unavailable")

const (
	DefaultLimit   = 20
	DefaultTimeout = 2 * time.Second
)

// Entry is one answered question.
type Entry struct {
	QuestionID questionbank.ID `json:"question_id"`
	AnsweredAt time.Time       `json:"answered_at"`
}

// Backend is the durable layer behind the store.
type Backend interface {
	LoadAll(ctx context.Context) ([]Entry, error)
	Upsert(ctx context.Context, e Entry) error
	Remove(ctx context.Context, id questionbank.ID) error
	Clear(ctx context.Context) error
}

// Options configures a Store.
type Options struct {
	Limit   int              // N, maximum retained entries
	Timeout time.Duration    // bound on each backend round trip
	Now     func() time.Time // clock, defaults to time.Now
}

// snapshot is immutable once published.
type snapshot struct {
	entries []Entry // oldest first
	index   map[questionbank.ID]struct{}
}

func newSnapshot(entries []Entry) *snapshot {
	s := &snapshot{
		entries: entries,
		index:   make(map[questionbank.ID]struct{}, len(entries)),
	}
	for _, e := range entries {
		s.index[e.QuestionID] = struct{}{}
	}
	return s
}

// Store is a bounded FIFO set of answered questions. Reads are lock-free
// against an atomically swapped snapshot; writes are serialized and
// persisted through a single-writer queue before being published.
type Store struct {
	backend Backend
	limit   int
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger

	queue *worker.Pool[error]

	writeMu  sync.Mutex
	state    atomic.Pointer[snapshot]
	degraded bool
	warning  error // pending one-time warning
}

// Open loads existing entries from backend. It never fails: when the
// backend is unavailable the store starts in memory-only mode and the
// first mutation reports the warning.
func Open(ctx context.Context, backend Backend, opts Options, logger *slog.Logger) *Store {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		backend: backend,
		limit:   opts.Limit,
		timeout: opts.Timeout,
		now:     opts.Now,
		logger:  logger,
		queue:   worker.NewPool[error](1, 64),
	}
	s.state.Store(newSnapshot(nil))

	if backend == nil {
		s.degraded = true
		return s
	}

	var loaded []Entry
	err := s.persist(ctx, func(ctx context.Context) error {
		var err error
		loaded, err = backend.LoadAll(ctx)
		return err
	})
	if err != nil {
		s.degrade("load", err)
		return s
	}

	s.state.Store(newSnapshot(newest(dedupe(loaded), s.limit)))
	return s
}

// Contains reports whether id is currently tracked as answered.
func (s *Store) Contains(id questionbank.ID) bool {
	_, ok := s.state.Load().index[id]
	return ok
}

// All returns a snapshot of the tracked identifiers.
func (s *Store) All() map[questionbank.ID]struct{} {
	snap := s.state.Load()
	out := make(map[questionbank.ID]struct{}, len(snap.index))
	for id := range snap.index {
		out[id] = struct{}{}
	}
	return out
}

// Entries returns the tracked entries, oldest first.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.state.Load().entries...)
}

func (s *Store) Len() int {
	return len(s.state.Load().entries)
}

func (s *Store) Limit() int {
	return s.limit
}

// Degraded reports whether the store has fallen back to memory.
func (s *Store) Degraded() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.degraded
}

// Add marks id as answered. Re-adding a tracked id is a no-op. When the
// bound is exceeded the oldest entry is evicted. The returned error is only
// ever the one-time storage warning; the in-memory state is updated either way.
func (s *Store) Add(ctx context.Context, id questionbank.ID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.state.Load()
	if _, ok := cur.index[id]; ok {
		return s.takeWarning()
	}

	entry := Entry{QuestionID: id, AnsweredAt: s.now()}
	next := make([]Entry, 0, len(cur.entries)+1)
	next = append(next, cur.entries...)
	next = append(next, entry)

	var evicted []Entry
	if over := len(next) - s.limit; over > 0 {
		evicted = append(evicted, next[:over]...)
		next = next[over:]
	}

	if !s.degraded {
		err := s.persist(ctx, func(ctx context.Context) error {
			if err := s.backend.Upsert(ctx, entry); err != nil {
				return err
			}
			for _, e := range evicted {
				if err := s.backend.Remove(ctx, e.QuestionID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.degrade("add", err)
		}
	}

	s.state.Store(newSnapshot(next))
	return s.takeWarning()
}

// Clear empties the store unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.degraded {
		if err := s.persist(ctx, s.backend.Clear); err != nil {
			s.degrade("clear", err)
		}
	}

	s.state.Store(newSnapshot(nil))
	return s.takeWarning()
}

// Close drains pending backend writes.
func (s *Store) Close() {
	s.queue.Close()
}

// persist runs fn on the single-writer queue, bounded by the store timeout.
func (s *Store) persist(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err, submitErr := s.queue.Submit(ctx, func() error { return fn(ctx) })
	if submitErr != nil {
		return submitErr
	}
	return err
}

// degrade switches to memory-only mode. Caller holds writeMu or is Open.
func (s *Store) degrade(op string, err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.warning = fmt.Errorf("%w: %s: %v (continuing in memory)", ErrStorageUnavailable, op, err)
	s.logger.Warn("history backend unavailable, falling back to memory",
		"op", op,
		"error", err,
	)
}

func (s *Store) takeWarning() error {
	w := s.warning
	s.warning = nil
	return w
}

// dedupe keeps the latest timestamp per question, ordered oldest first.
func dedupe(entries []Entry) []Entry {
	latest := make(map[questionbank.ID]Entry, len(entries))
	for _, e := range entries {
		if e.QuestionID == "" {
			continue
		}
		if prev, ok := latest[e.QuestionID]; !ok || e.AnsweredAt.After(prev.AnsweredAt) {
			latest[e.QuestionID] = e
		}
	}
	out := make([]Entry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AnsweredAt.Equal(out[j].AnsweredAt) {
			return out[i].QuestionID < out[j].QuestionID
		}
		return out[i].AnsweredAt.Before(out[j].AnsweredAt)
	})
	return out
}

func newest(entries []Entry, limit int) []Entry {
	if len(entries) <= limit {
		return entries
	}
	return entries[len(entries)-limit:]
}
