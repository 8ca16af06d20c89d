// internal/service/session_controller.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/questcycle/backend/internal/domain/category"
	practicesession "github.com/questcycle/backend/internal/domain/practice_session"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/grader"
	"github.com/questcycle/backend/internal/source"
	"github.com/questcycle/backend/internal/store"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrNoFilter        = errors.New("no filter applied yet")
	ErrSessionGraded   = errors.New("session already graded")
	ErrUnknownQuestion = errors.New("question is not part of the session")
	ErrUnknownChoice   = errors.New("choice does not belong to the question")
	ErrSuperseded      = errors.New("filter request superseded by a newer one")
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
	StatusNoResults Status = "no_results"
	StatusGraded    Status = "graded"
	StatusError     Status = "error"
)

// History is the answered-question store used by the controller.
type History interface {
	Contains(id questionbank.ID) bool
	Add(ctx context.Context, id questionbank.ID) error
	Clear(ctx context.Context) error
	Len() int
	Limit() int
}

// Archive persists the saved filter and graded sessions. Optional.
type Archive interface {
	SaveFilter(ctx context.Context, p category.Predicates) error
	LoadFilter(ctx context.Context) (category.Predicates, error)
	SaveResult(ctx context.Context, session *practicesession.PracticeSession, result *grader.Result, gradedAt time.Time) error
}

// Stats describes the filtered pool against the history.
type Stats struct {
	Available    int `json:"available"`
	Answered     int `json:"answered"`
	Eligible     int `json:"eligible"`
	HistorySize  int `json:"history_size"`
	HistoryLimit int `json:"history_limit"`
}

// View is a snapshot of the controller state.
type View struct {
	Status     Status                                    `json:"status"`
	Predicates category.Predicates                       `json:"predicates"`
	Message    string                                    `json:"message,omitempty"`
	Warning    string                                    `json:"warning,omitempty"`
	SessionID  string                                    `json:"session_id,omitempty"`
	Questions  []questionbank.Question                   `json:"questions"`
	Answers    map[questionbank.ID]questionbank.ChoiceID `json:"answers"`
	Result     *grader.Result                            `json:"result,omitempty"`
	CycleReset bool                                      `json:"cycle_reset"`
	Stats      Stats                                     `json:"stats"`
}

// Options wires the controller's collaborators.
type Options struct {
	Source  source.Source
	History History
	Sampler *practicesession.Sampler
	Archive Archive // may be nil
	Config  practicesession.SessionConfig
	Now     func() time.Time
}

// SessionController drives one user's practice loop: filter, sample,
// answer, grade, repeat. All state transitions are serialized.
type SessionController struct {
	source  source.Source
	history History
	sampler *practicesession.Sampler
	grader  *grader.Grader
	archive Archive
	size    int
	now     func() time.Time
	logger  *slog.Logger
	events  *Broadcaster

	mu          sync.Mutex
	seq         uint64
	cancelFetch context.CancelFunc

	status     Status
	predicates category.Predicates
	message    string
	warning    string
	pool       []questionbank.Question
	hasPool    bool
	session    *practicesession.PracticeSession
	answers    map[questionbank.ID]questionbank.ChoiceID
	result     *grader.Result
	cycleReset bool
}

func NewSessionController(opts Options, logger *slog.Logger) *SessionController {
	if opts.Sampler == nil {
		opts.Sampler = practicesession.NewSampler(nil, nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionController{
		source:  opts.Source,
		history: opts.History,
		sampler: opts.Sampler,
		grader:  grader.New(opts.History),
		archive: opts.Archive,
		size:    opts.Config.EffectiveSize(),
		now:     opts.Now,
		logger:  logger,
		events:  NewBroadcaster(),
		status:  StatusIdle,
		answers: make(map[questionbank.ID]questionbank.ChoiceID),
	}
}

// Subscribe streams status events until the returned cancel is called.
func (c *SessionController) Subscribe() (<-chan Event, func()) {
	return c.events.Subscribe()
}

// ============================================================================
// Filtering
// ============================================================================

// ApplyFilter fetches the pool for p and samples a new session. A later
// call cancels an in-flight one, which then returns ErrSuperseded.
func (c *SessionController) ApplyFilter(ctx context.Context, p category.Predicates) (*View, error) {
	p = p.Normalize()
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.seq++
	seq := c.seq
	c.cancelFetch = cancel

	c.discardLocked()
	c.status = StatusLoading
	c.predicates = p
	c.message = ""
	c.warning = ""
	c.pool = nil
	c.hasPool = false
	c.publish(Event{Type: EventLoading, Predicates: &p})
	c.mu.Unlock()

	questions, err := c.source.FetchQuestions(fetchCtx, p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return nil, ErrSuperseded
	}
	c.cancelFetch = nil

	if err != nil {
		c.status = StatusError
		c.message = err.Error()
		c.logger.Error("question fetch failed", "predicates", p, "error", err)
		c.publish(Event{Type: EventError, Message: c.message, Predicates: &p})
		return nil, err
	}

	c.pool = category.Filter(questions, p)
	c.hasPool = true

	if c.archive != nil {
		if err := c.archive.SaveFilter(ctx, p); err != nil {
			c.logger.Warn("failed to save filter", "error", err)
		}
	}

	c.resampleLocked(ctx)
	return c.viewLocked(), nil
}

// Restore reapplies the last saved filter, if any.
func (c *SessionController) Restore(ctx context.Context) (*View, error) {
	if c.archive == nil {
		return nil, nil
	}
	p, err := c.archive.LoadFilter(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.logger.Info("restoring saved filter", "predicates", p)
	return c.ApplyFilter(ctx, p)
}

// ============================================================================
// Sampling
// ============================================================================

// Resample discards the session and draws a new one from the cached pool.
func (c *SessionController) Resample(ctx context.Context) (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasPool {
		return nil, ErrNoFilter
	}
	c.warning = ""
	c.resampleLocked(ctx)
	return c.viewLocked(), nil
}

// ResetHistory clears the answer history and, when a filter is active,
// resamples.
func (c *SessionController) ResetHistory(ctx context.Context) (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warning = ""
	c.warnLocked(c.history.Clear(ctx))
	c.logger.Info("history reset")

	if c.hasPool {
		c.resampleLocked(ctx)
	}
	return c.viewLocked(), nil
}

// resampleLocked builds a session from the cached pool. When every
// principal was already answered the history is cleared and the build is
// retried once.
func (c *SessionController) resampleLocked(ctx context.Context) {
	c.discardLocked()
	p := c.predicates

	if len(c.pool) == 0 {
		c.status = StatusNoResults
		c.message = p.Describe()
		c.publish(Event{Type: EventNoResults, Message: c.message, Predicates: &p})
		return
	}

	built := c.sampler.Build(c.pool, c.history, c.size)
	if built.Exhausted {
		c.warnLocked(c.history.Clear(ctx))
		c.cycleReset = true
		c.logger.Info("question cycle completed, history cleared", "predicates", p)
		c.publish(Event{Type: EventCycleCompleted, Predicates: &p})

		built = c.sampler.Build(c.pool, c.history, c.size)
		if built.Exhausted {
			c.status = StatusNoResults
			c.message = p.Describe()
			c.publish(Event{Type: EventNoResults, Message: c.message, Predicates: &p})
			return
		}
	}

	c.session = practicesession.New(p, built.Questions)
	c.status = StatusReady
	c.message = ""
	c.publish(Event{Type: EventReady, Predicates: &p, SessionID: c.session.ID})
}

// discardLocked drops the session and its transient answers.
func (c *SessionController) discardLocked() {
	c.session = nil
	c.answers = make(map[questionbank.ID]questionbank.ChoiceID)
	c.result = nil
	c.cycleReset = false
}

// ============================================================================
// Answering
// ============================================================================

// SelectChoice records the answer for one question, replacing any earlier one.
func (c *SessionController) SelectChoice(qid questionbank.ID, cid questionbank.ChoiceID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoSession
	}
	if c.result != nil {
		return ErrSessionGraded
	}
	q, ok := c.session.Question(qid)
	if !ok {
		return ErrUnknownQuestion
	}
	if !q.HasChoice(cid) {
		return ErrUnknownChoice
	}
	c.answers[qid] = cid
	return nil
}

// Submit grades the session. An incomplete submission changes nothing and
// returns grader.ErrIncompleteSubmission.
func (c *SessionController) Submit(ctx context.Context) (*grader.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, ErrNoSession
	}
	if c.result != nil {
		return nil, ErrSessionGraded
	}

	c.warning = ""
	result, err := c.grader.Grade(ctx, c.session, c.answers)
	if result == nil {
		return nil, err
	}
	c.warnLocked(err)

	c.result = result
	c.status = StatusGraded
	gradedAt := c.now().UTC()

	if c.archive != nil {
		if err := c.archive.SaveResult(ctx, c.session, result, gradedAt); err != nil {
			c.logger.Error("failed to archive result", "session_id", c.session.ID, "error", err)
		}
	}

	c.logger.Info("session graded",
		"session_id", c.session.ID,
		"correct", result.Correct,
		"total", result.Total,
		"percentage", result.Percentage,
	)
	c.publish(Event{Type: EventGraded, SessionID: c.session.ID, Result: result})
	return result, nil
}

// ============================================================================
// Views
// ============================================================================

// Current returns a snapshot of the controller state.
func (c *SessionController) Current() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *SessionController) viewLocked() *View {
	v := &View{
		Status:     c.status,
		Predicates: c.predicates,
		Message:    c.message,
		Warning:    c.warning,
		Questions:  []questionbank.Question{},
		Answers:    make(map[questionbank.ID]questionbank.ChoiceID, len(c.answers)),
		Result:     c.result,
		CycleReset: c.cycleReset,
		Stats: Stats{
			HistorySize:  c.history.Len(),
			HistoryLimit: c.history.Limit(),
		},
	}
	if c.session != nil {
		v.SessionID = c.session.ID
		v.Questions = c.session.Questions
	}
	for id, choice := range c.answers {
		v.Answers[id] = choice
	}
	if c.hasPool {
		s := questionbank.ComputeStats(c.pool, c.history, c.sampler.Catalog().IsDependent)
		v.Stats.Available = s.Available
		v.Stats.Answered = s.Answered
		v.Stats.Eligible = s.Eligible
	}
	return v
}

// warnLocked surfaces a one-time storage warning.
func (c *SessionController) warnLocked(err error) {
	if err == nil {
		return
	}
	c.warning = err.Error()
	c.publish(Event{Type: EventWarning, Message: c.warning})
}

func (c *SessionController) publish(e Event) {
	if e.At.IsZero() {
		e.At = c.now().UTC()
	}
	c.events.Publish(e)
}
