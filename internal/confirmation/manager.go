package confirmation

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/studyia/career/internal/payment"
)

var ErrNotFound = errors.New("confirmation not found")

// Hooks are the caller's side of a managed flow.
type Hooks struct {
	// Complete receives the flow id and the accepted identifier. Its error is shown on
	// the flow's snapshot.
	Complete func(flowID, txID string) error
	// Expire runs when a flow is dropped for sitting Idle past IdleTTL.
	Expire func(flowID string)
}

// Manager tracks flows by id for the HTTP layer. Cancelled flows are dropped at once,
// abandoned ones after IdleTTL and completed ones after Retention.
type Manager struct {
	checker   Checker
	scheduler Scheduler
	cfg       Config

	mu    sync.RWMutex
	flows map[string]*Flow
}

func NewManager(checker Checker, scheduler Scheduler, cfg Config) *Manager {
	return &Manager{
		checker:   checker,
		scheduler: scheduler,
		cfg:       cfg,
		flows:     make(map[string]*Flow),
	}
}

// Open starts a new flow.
func (m *Manager) Open(provider payment.Provider, hooks Hooks) (string, *Flow) {
	id := uuid.NewString()
	flow := NewFlow(provider, m.checker, m.scheduler, m.cfg,
		OnComplete(func(txID string) error {
			m.scheduler.AfterFunc(m.cfg.Retention, func() { m.forget(id) })
			if hooks.Complete == nil {
				return nil
			}
			return hooks.Complete(id, txID)
		}),
		OnCancel(func() { m.forget(id) }),
	)

	m.mu.Lock()
	m.flows[id] = flow
	m.mu.Unlock()

	m.scheduler.AfterFunc(m.cfg.IdleTTL, func() {
		if !flow.expireIdle() {
			return
		}
		m.forget(id)
		if hooks.Expire != nil {
			hooks.Expire(id)
		}
	})
	return id, flow
}

func (m *Manager) Get(id string) (*Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	flow, ok := m.flows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return flow, nil
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	delete(m.flows, id)
	m.mu.Unlock()
}
