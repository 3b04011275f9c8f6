// Package confirmation drives a single payment confirmation attempt from input to unlock.
package confirmation

import (
	"errors"
	"sync"
	"time"

	"github.com/studyia/career/internal/payment"
)

type State string

const (
	StateIdle      State = "IDLE"
	StateVerifying State = "VERIFYING"
	StateConfirmed State = "CONFIRMED"
	StateCancelled State = "CANCELLED"
	StateExpired   State = "EXPIRED"
)

var ErrNotIdle = errors.New("confirmation is not accepting input")

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules on real timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Checker is the validation dependency of a flow.
type Checker interface {
	Validate(id string, provider payment.Provider) bool
}

// Config tunes delays and the rotating rejection messages.
type Config struct {
	VerifyDelay  time.Duration
	ConfirmDelay time.Duration
	Messages     []string
	// Retention keeps a finished flow readable before it is dropped.
	Retention time.Duration
	// IdleTTL drops a flow that is still Idle this long after it was opened.
	IdleTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		VerifyDelay:  2000 * time.Millisecond,
		ConfirmDelay: 1500 * time.Millisecond,
		Retention:    5 * time.Minute,
		IdleTTL:      15 * time.Minute,
		Messages: []string{
			"Invalid transaction ID. Please check the code in your payment SMS.",
			"We could not verify this transaction ID. Make sure you copied it exactly.",
		},
	}
}

// Snapshot is a point-in-time view of a flow.
type Snapshot struct {
	State         State  `json:"state"`
	ErrorMessage  string `json:"error_message,omitempty"`
	AttemptCount  int    `json:"attempt_count"`
	TransactionID string `json:"transaction_id,omitempty"`
	Notified      bool   `json:"notified"`
	Unlocked      bool   `json:"unlocked"`
	UnlockError   string `json:"unlock_error,omitempty"`
}

// Flow is one confirmation dialog. It lives only in memory.
type Flow struct {
	provider  payment.Provider
	checker   Checker
	scheduler Scheduler
	cfg       Config

	onComplete func(id string) error
	onCancel   func()

	mu        sync.Mutex
	state     State
	errMsg    string
	attempts  int
	txID      string
	notified  bool
	unlockErr error
}

// Option configures a Flow.
type Option func(*Flow)

// OnComplete is called with the accepted identifier once the flow has shown Confirmed.
// Its error is reported on the snapshot as the unlock outcome.
func OnComplete(f func(id string) error) Option {
	return func(fl *Flow) { fl.onComplete = f }
}

func OnCancel(f func()) Option {
	return func(fl *Flow) { fl.onCancel = f }
}

func NewFlow(provider payment.Provider, checker Checker, scheduler Scheduler, cfg Config, opts ...Option) *Flow {
	if len(cfg.Messages) == 0 {
		cfg.Messages = DefaultConfig().Messages
	}
	f := &Flow{
		provider:  provider,
		checker:   checker,
		scheduler: scheduler,
		cfg:       cfg,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit validates id. A rejected id leaves the flow Idle with the next rotating message;
// an accepted one starts verification.
func (f *Flow) Submit(id string) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return f.snapshotLocked(), ErrNotIdle
	}

	if !f.checker.Validate(id, f.provider) {
		f.attempts++
		f.errMsg = f.cfg.Messages[f.attempts%len(f.cfg.Messages)]
		return f.snapshotLocked(), nil
	}

	f.state = StateVerifying
	f.errMsg = ""
	f.txID = id
	f.scheduler.AfterFunc(f.cfg.VerifyDelay, f.confirm)
	return f.snapshotLocked(), nil
}

// Cancel closes an idle flow. Once verification has started it cannot be cancelled.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return ErrNotIdle
	}
	f.state = StateCancelled
	cb := f.onCancel
	f.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Flow) Provider() payment.Provider {
	return f.provider
}

func (f *Flow) confirm() {
	f.mu.Lock()
	f.state = StateConfirmed
	f.mu.Unlock()

	f.scheduler.AfterFunc(f.cfg.ConfirmDelay, f.notify)
}

func (f *Flow) notify() {
	f.mu.Lock()
	id, cb := f.txID, f.onComplete
	f.mu.Unlock()

	var err error
	if cb != nil {
		err = cb(id)
	}

	f.mu.Lock()
	f.notified = true
	f.unlockErr = err
	f.mu.Unlock()
}

// expireIdle moves a flow nobody submitted to StateExpired. It reports false once the
// flow has left Idle.
func (f *Flow) expireIdle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return false
	}
	f.state = StateExpired
	return true
}

func (f *Flow) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         f.state,
		ErrorMessage:  f.errMsg,
		AttemptCount:  f.attempts,
		TransactionID: f.txID,
		Notified:      f.notified,
	}
	if f.notified {
		snap.Unlocked = f.unlockErr == nil
		if f.unlockErr != nil {
			snap.UnlockError = f.unlockErr.Error()
		}
	}
	return snap
}
