// Package notice keeps the transient, auto-dismissing messages shown to
// the user. Notices never block and never need acknowledgement.
package notice

import (
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Level is the severity of a notice.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

const (
	DefaultDuration = 5 * time.Second
	DefaultMax      = 5
)

// Notice is one transient message.
type Notice struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// Board holds the active notices. The zero value is not usable; call
// NewBoard.
type Board struct {
	mu       sync.Mutex
	notices  []Notice
	timers   map[string]*time.Timer
	duration time.Duration
	maxCount int
	onChange func([]Notice)
}

// NewBoard creates a board whose notices dismiss themselves after d.
// A non-positive d means DefaultDuration.
func NewBoard(d time.Duration) *Board {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Board{
		timers:   make(map[string]*time.Timer),
		duration: d,
		maxCount: DefaultMax,
	}
}

// SetOnChange registers fn to receive the active notices after every
// change. fn is called outside the board lock.
func (b *Board) SetOnChange(fn func([]Notice)) {
	b.mu.Lock()
	b.onChange = fn
	snap := b.snapshotLocked()
	b.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// Show posts a notice and returns its ID.
func (b *Board) Show(level Level, msg string) string {
	n := Notice{
		ID:        ulid.Make().String(),
		Level:     level,
		Message:   strings.TrimSpace(msg),
		CreatedAt: time.Now(),
		Duration:  b.duration,
	}

	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.timers[n.ID] = time.AfterFunc(b.duration, func() {
		b.Dismiss(n.ID)
	})
	if overflow := len(b.notices) - b.maxCount; overflow > 0 {
		for _, old := range b.notices[:overflow] {
			b.stopTimerLocked(old.ID)
		}
		b.notices = append([]Notice(nil), b.notices[overflow:]...)
	}
	snap := b.snapshotLocked()
	cb := b.onChange
	b.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
	return n.ID
}

func (b *Board) Info(msg string) string    { return b.Show(Info, msg) }
func (b *Board) Success(msg string) string { return b.Show(Success, msg) }
func (b *Board) Warning(msg string) string { return b.Show(Warning, msg) }
func (b *Board) Error(msg string) string   { return b.Show(Error, msg) }

// Dismiss removes a notice early. Unknown IDs are ignored.
func (b *Board) Dismiss(id string) {
	b.mu.Lock()
	idx := -1
	for i, n := range b.notices {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return
	}
	b.stopTimerLocked(id)
	b.notices = append(b.notices[:idx:idx], b.notices[idx+1:]...)
	snap := b.snapshotLocked()
	cb := b.onChange
	b.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
}

// Active returns the notices currently shown, oldest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Close stops every pending dismissal timer and drops all notices.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id := range b.timers {
		b.stopTimerLocked(id)
	}
	b.notices = nil
}

func (b *Board) stopTimerLocked(id string) {
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
}

func (b *Board) snapshotLocked() []Notice {
	if len(b.notices) == 0 {
		return nil
	}
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}
