package confirmation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyia/career/internal/payment"
)

func TestManager_OpenGetComplete(t *testing.T) {
	sched := &manualScheduler{}
	cfg := DefaultConfig()
	m := NewManager(stubChecker{valid: goodID}, sched, cfg)

	var gotFlow, gotTx string
	id, flow := m.Open(payment.ProviderB, Hooks{
		Complete: func(flowID, txID string) error {
			gotFlow, gotTx = flowID, txID
			return nil
		},
	})
	assert.Equal(t, payment.ProviderB, flow.Provider())

	same, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, flow, same)

	_, err = flow.Submit(goodID)
	require.NoError(t, err)
	sched.fire(t, cfg.VerifyDelay)
	sched.fire(t, cfg.ConfirmDelay)

	assert.Equal(t, id, gotFlow)
	assert.Equal(t, goodID, gotTx)
	assert.True(t, flow.Snapshot().Unlocked)

	// the idle timer no longer applies once submitted
	sched.fire(t, cfg.IdleTTL)
	_, err = m.Get(id)
	require.NoError(t, err, "still readable until retention elapses")

	sched.fire(t, cfg.Retention)
	_, err = m.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_CompleteErrorOnSnapshot(t *testing.T) {
	sched := &manualScheduler{}
	cfg := DefaultConfig()
	m := NewManager(stubChecker{valid: goodID}, sched, cfg)

	_, flow := m.Open(payment.ProviderB, Hooks{
		Complete: func(string, string) error { return errors.New("duplicated key") },
	})
	_, err := flow.Submit(goodID)
	require.NoError(t, err)
	sched.fire(t, cfg.VerifyDelay)
	sched.fire(t, cfg.ConfirmDelay)

	snap := flow.Snapshot()
	assert.False(t, snap.Unlocked)
	assert.Equal(t, "duplicated key", snap.UnlockError)
}

func TestManager_AbandonedFlowsExpire(t *testing.T) {
	sched := &manualScheduler{}
	cfg := DefaultConfig()
	m := NewManager(stubChecker{}, sched, cfg)

	var expired []string
	hooks := Hooks{Expire: func(id string) { expired = append(expired, id) }}

	ids := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		id, flow := m.Open(payment.ProviderA, hooks)
		ids = append(ids, id)
		if i%2 == 0 {
			// rejected attempts keep the flow Idle
			_, _ = flow.Submit("nope")
		}
	}
	assert.Equal(t, 100, m.Len())
	assert.Equal(t, 100, sched.len())

	for i := 0; i < 100; i++ {
		sched.fire(t, cfg.IdleTTL)
	}
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, sched.len())
	assert.Equal(t, ids, expired)
}

func TestManager_CancelForgets(t *testing.T) {
	sched := &manualScheduler{}
	cfg := DefaultConfig()
	m := NewManager(stubChecker{}, sched, cfg)

	expired := 0
	id, flow := m.Open(payment.ProviderA, Hooks{Expire: func(string) { expired++ }})
	assert.Equal(t, 1, m.Len())

	require.NoError(t, flow.Cancel())
	_, err := m.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	sched.fire(t, cfg.IdleTTL)
	assert.Equal(t, 0, expired, "cancelled flows do not expire again")
}

func TestManager_UnknownID(t *testing.T) {
	m := NewManager(stubChecker{}, &manualScheduler{}, DefaultConfig())
	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
