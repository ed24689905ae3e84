// Package session holds the in-memory state of one signed-in learner.
// The whole session is replaced on every identity change, and every
// mutation is tagged with the epoch it was started under so that late
// responses from a previous identity are dropped.
package session

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/progress"
)

// ErrStaleSession is returned when a mutation carries an epoch that no
// longer matches the active session.
var ErrStaleSession = errors.New("session changed since the request started")

// Epoch identifies one session lifetime.
type Epoch string

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one line of the chat transcript.
type ChatMessage struct {
	Text      string
	Sender    Sender
	CreatedAt time.Time
}

// PlanRecord is one generated study plan.
type PlanRecord struct {
	CreatedAt  time.Time
	RawPayload json.RawMessage
	View       normalize.PlanResult
}

// ProgressRecord is one completed progress analysis.
type ProgressRecord struct {
	CreatedAt time.Time
	Snapshot  progress.Snapshot
	Analysis  normalize.Analysis
}

// NotesRecord is one processed notes upload.
type NotesRecord struct {
	CreatedAt time.Time
	Title     string
	Subject   string
	Result    normalize.NotesResult
}

// Session is the full in-memory state for one identity.
type Session struct {
	Epoch            Epoch
	User             *Identity
	IsDemo           bool
	StartedAt        time.Time
	ChatHistory      []ChatMessage
	StudyPlans       []PlanRecord
	ProgressEntries  []ProgressRecord
	UploadedNotes    []NotesRecord
	LastSystemStatus *normalize.SystemStatus
}

// Store owns the current Session.
type Store struct {
	mu      sync.RWMutex
	current Session
	onReset []func()
	now     func() time.Time
}

// NewStore creates a store holding an empty, anonymous session.
func NewStore() *Store {
	s := &Store{now: time.Now}
	s.current = s.fresh(nil, false)
	return s
}

// OnReset registers fn to run, under the store lock, whenever the session
// is replaced or cleared. It keeps derived state in step with the session.
func (s *Store) OnReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReset = append(s.onReset, fn)
}

// ResetForNewIdentity replaces the whole session with an empty one owned
// by id and returns the new epoch.
func (s *Store) ResetForNewIdentity(id Identity, demo bool) Epoch {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.fresh(&id, demo)
	s.runResetHooks()
	return s.current.Epoch
}

// Clear drops the identity and all history, as on logout.
func (s *Store) Clear() Epoch {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.fresh(nil, false)
	s.runResetHooks()
	return s.current.Epoch
}

// Epoch returns the active session epoch.
func (s *Store) Epoch() Epoch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Epoch
}

// User returns the signed-in identity, if any.
func (s *Store) User() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.User == nil {
		return Identity{}, false
	}
	return *s.current.User, true
}

// Active reports whether someone is signed in.
func (s *Store) Active() bool {
	_, ok := s.User()
	return ok
}

// IsDemo reports whether the session is a demo session.
func (s *Store) IsDemo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsDemo
}

// Current returns a copy of the session that callers may keep.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.current
	if c.User != nil {
		u := *c.User
		c.User = &u
	}
	if c.LastSystemStatus != nil {
		st := *c.LastSystemStatus
		st.Agents = slices.Clone(st.Agents)
		st.Events = slices.Clone(st.Events)
		c.LastSystemStatus = &st
	}
	c.ChatHistory = append([]ChatMessage(nil), c.ChatHistory...)
	c.StudyPlans = append([]PlanRecord(nil), c.StudyPlans...)
	for i := range c.StudyPlans {
		c.StudyPlans[i].RawPayload = slices.Clone(c.StudyPlans[i].RawPayload)
	}
	c.ProgressEntries = append([]ProgressRecord(nil), c.ProgressEntries...)
	c.UploadedNotes = append([]NotesRecord(nil), c.UploadedNotes...)
	return c
}

// Tx applies several mutations to one session atomically.
type Tx struct {
	s *Session
}

func (tx *Tx) AppendChat(msgs ...ChatMessage) {
	tx.s.ChatHistory = append(tx.s.ChatHistory, msgs...)
}

func (tx *Tx) AppendPlan(rec PlanRecord) {
	tx.s.StudyPlans = append(tx.s.StudyPlans, rec)
}

func (tx *Tx) AppendProgress(rec ProgressRecord) {
	tx.s.ProgressEntries = append(tx.s.ProgressEntries, rec)
}

func (tx *Tx) AppendNotes(rec NotesRecord) {
	tx.s.UploadedNotes = append(tx.s.UploadedNotes, rec)
}

// SetSystemStatus replaces the last known status wholesale.
func (tx *Tx) SetSystemStatus(st normalize.SystemStatus) {
	tx.s.LastSystemStatus = &st
}

// Commit runs fn against the session if epoch is still current. fn runs
// under the store lock and must not call back into the Store.
func (s *Store) Commit(epoch Epoch, fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.current.Epoch {
		return ErrStaleSession
	}
	return fn(&Tx{s: &s.current})
}

// AppendChat appends messages to the transcript of session epoch.
func (s *Store) AppendChat(epoch Epoch, msgs ...ChatMessage) error {
	return s.Commit(epoch, func(tx *Tx) error {
		tx.AppendChat(msgs...)
		return nil
	})
}

// AppendPlan records a generated plan.
func (s *Store) AppendPlan(epoch Epoch, rec PlanRecord) error {
	return s.Commit(epoch, func(tx *Tx) error {
		tx.AppendPlan(rec)
		return nil
	})
}

// AppendProgress records a completed analysis.
func (s *Store) AppendProgress(epoch Epoch, rec ProgressRecord) error {
	return s.Commit(epoch, func(tx *Tx) error {
		tx.AppendProgress(rec)
		return nil
	})
}

// AppendNotes records a processed notes upload.
func (s *Store) AppendNotes(epoch Epoch, rec NotesRecord) error {
	return s.Commit(epoch, func(tx *Tx) error {
		tx.AppendNotes(rec)
		return nil
	})
}

// SetSystemStatus replaces the last known system status.
func (s *Store) SetSystemStatus(epoch Epoch, st normalize.SystemStatus) error {
	return s.Commit(epoch, func(tx *Tx) error {
		tx.SetSystemStatus(st)
		return nil
	})
}

func (s *Store) fresh(id *Identity, demo bool) Session {
	return Session{
		Epoch:     Epoch(uuid.NewString()),
		User:      id,
		IsDemo:    demo,
		StartedAt: s.now(),
	}
}

func (s *Store) runResetHooks() {
	for _, fn := range s.onReset {
		fn()
	}
}
