// Package controller owns one learner session end to end: it validates
// form input, calls the backend, normalizes the reply and commits it to
// the session, posting notices along the way. The TUI and the one-shot
// commands both drive the app through a Controller.
package controller

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/progress"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/transport"
)

// ErrAnalysisInProgress is returned when a progress analysis is requested
// while another one is still outstanding.
var ErrAnalysisInProgress = errors.New("progress analysis already in progress")

const (
	DefaultPollInterval = 30 * time.Second
	DefaultDemoRefresh  = 2 * time.Second
)

// StatusUpdate is delivered after every status poll. Err is set when the
// poll failed; Status then holds the last good value, if any.
type StatusUpdate struct {
	Status *normalize.SystemStatus
	Err    error
}

// Options configures a Controller. Client is required.
type Options struct {
	Client *transport.Client

	// DemoClient, when set, serves every call made in a demo session.
	DemoClient *transport.Client

	Notices *notice.Board
	Logger  *slog.Logger

	// DemoRefresh is the delay between a demo trigger and the status
	// refresh that follows it.
	DemoRefresh time.Duration
}

// Controller coordinates the session store, the progress window, the
// notice board and the backend client.
type Controller struct {
	client      *transport.Client
	demoClient  *transport.Client
	sessions    *session.Store
	progress    *progress.Aggregator
	notices     *notice.Board
	logger      *slog.Logger
	demoRefresh time.Duration
	now         func() time.Time

	analyzing atomic.Bool

	mu       sync.Mutex
	onStatus func(StatusUpdate)
	timers   []*time.Timer
}

// New creates a Controller with an empty, anonymous session.
func New(opts Options) *Controller {
	c := &Controller{
		client:      opts.Client,
		demoClient:  opts.DemoClient,
		sessions:    session.NewStore(),
		progress:    progress.NewAggregator(),
		notices:     opts.Notices,
		logger:      opts.Logger,
		demoRefresh: opts.DemoRefresh,
		now:         time.Now,
	}
	if c.notices == nil {
		c.notices = notice.NewBoard(notice.DefaultDuration)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.demoRefresh <= 0 {
		c.demoRefresh = DefaultDemoRefresh
	}
	// The progress window belongs to the session and goes with it.
	c.sessions.OnReset(c.progress.Reset)
	return c
}

// Session returns the session store.
func (c *Controller) Session() *session.Store { return c.sessions }

// Progress returns the rolling progress window of the current session.
func (c *Controller) Progress() *progress.Aggregator { return c.progress }

// Notices returns the notice board.
func (c *Controller) Notices() *notice.Board { return c.notices }

// Endpoint returns the backend the current session talks to.
func (c *Controller) Endpoint() string { return c.backend().Endpoint() }

// Analyzing reports whether a progress analysis is outstanding.
func (c *Controller) Analyzing() bool { return c.analyzing.Load() }

// SetOnStatus registers fn to receive every status poll result.
func (c *Controller) SetOnStatus(fn func(StatusUpdate)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// Close stops pending delayed work.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

func (c *Controller) backend() *transport.Client {
	if c.demoClient != nil && c.sessions.IsDemo() {
		return c.demoClient
	}
	return c.client
}

// settle commits fn under epoch. A stale epoch means the identity changed
// while the request was in flight, so the result is dropped quietly.
func (c *Controller) settle(op transport.Operation, epoch session.Epoch, fn func(*session.Tx) error) error {
	err := c.sessions.Commit(epoch, fn)
	if errors.Is(err, session.ErrStaleSession) {
		c.logger.Debug("dropped stale response", "op", string(op))
	}
	return err
}

// reportFailure posts the notice for a failed backend call.
func (c *Controller) reportFailure(op transport.Operation, err error) {
	c.logger.Warn("backend call failed", "op", string(op), "error", err)
	c.notices.Error(failureNotice(op))
}

// reportInvalid posts the notice for input that failed validation.
func (c *Controller) reportInvalid(err error) {
	c.notices.Warning(invalidNotice(err))
}

func (c *Controller) notifyStatus(u StatusUpdate) {
	c.mu.Lock()
	fn := c.onStatus
	c.mu.Unlock()
	if fn != nil {
		fn(u)
	}
}

// after runs fn once d has passed. A fired timer leaves c.timers.
func (c *Controller) after(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		c.mu.Lock()
		c.timers = slices.DeleteFunc(c.timers, func(x *time.Timer) bool { return x == t })
		c.mu.Unlock()
		fn()
	})
	c.timers = append(c.timers, t)
}

// pendingTimers reports how many delayed calls have not fired yet.
func (c *Controller) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
