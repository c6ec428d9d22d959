package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender is an in-memory MessageSender.
type fakeSender struct {
	mu       sync.Mutex
	state    string
	stateErr error
	failFor  map[string]bool
	sent     []string
	texts    []string
	gate     chan struct{}
}

func newFakeSender() *fakeSender {
	return &fakeSender{state: handlers.InstanceOpen, failFor: map[string]bool{}}
}

func (f *fakeSender) ConnectionState(ctx context.Context, instance string) (*handlers.InstanceStatus, error) {
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	return &handlers.InstanceStatus{Instance: instance, Status: f.state}, nil
}

func (f *fakeSender) SendText(ctx context.Context, instance, number, text string) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, number)
	f.texts = append(f.texts, text)
	if f.failFor[number] {
		return fmt.Errorf("number not on whatsapp")
	}
	return nil
}

func (f *fakeSender) attempts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func testAudience() []dto.Contact {
	return []dto.Contact{
		{Name: "Serraria Bom Pinho", Phone: "5514998876655"},
		{Name: "Transportadora União", Phone: "5514997770000"},
		{Name: "Madeireira Central", Phone: "5514996660000"},
	}
}

func newTestProcessor(sender MessageSender) *BroadcastProcessor {
	p := NewBroadcastProcessor(sender, time.Second, time.Second)
	p.SetDelaySampler(func() time.Duration { return 0 })
	return p
}

func waitForStatus(t *testing.T, p *BroadcastProcessor, id, status string) dto.BroadcastRunStatus {
	t.Helper()
	assert.Eventually(t, func() bool {
		run, ok := p.Get(id)
		return ok && run.Status == status
	}, 2*time.Second, 5*time.Millisecond)
	run, _ := p.Get(id)
	return run
}

func TestBroadcast_CountsAndProgress(t *testing.T) {
	sender := newFakeSender()
	sender.failFor["5514997770000"] = true
	p := newTestProcessor(sender)

	var progress []int
	var mu sync.Mutex
	p.SetAttemptObserver(func(run dto.BroadcastRunStatus) {
		mu.Lock()
		progress = append(progress, run.Progress)
		mu.Unlock()
	})

	id, err := p.Start("madeiras", "Olá [NOME]!", testAudience())
	require.NoError(t, err)

	run := waitForStatus(t, p, id, RunStatusCompleted)
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, 2, run.Sent)
	assert.Equal(t, 1, run.Failed, "a failed recipient is counted, not fatal")
	assert.Equal(t, 100, run.Progress)

	assert.Equal(t, []string{"5514998876655", "5514997770000", "5514996660000"}, sender.attempts(),
		"every recipient gets exactly one attempt, in order")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{34, 67, 100}, progress)
}

func TestBroadcast_Personalization(t *testing.T) {
	sender := newFakeSender()
	p := newTestProcessor(sender)

	id, err := p.Start("madeiras", "Olá [nome], promoção válida até [DATA].", testAudience()[:1])
	require.NoError(t, err)
	waitForStatus(t, p, id, RunStatusCompleted)

	require.Len(t, sender.texts, 1)
	assert.Equal(t,
		fmt.Sprintf("Olá Serraria, promoção válida até %s.", time.Now().Format("02/01/2006")),
		sender.texts[0],
		"first name only, placeholders are case-insensitive")
}

func TestBroadcast_Preconditions(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		p := newTestProcessor(newFakeSender())
		_, err := p.Start("madeiras", "   ", testAudience())
		assert.ErrorIs(t, err, ErrInvalidBroadcast)
	})

	t.Run("empty audience", func(t *testing.T) {
		p := newTestProcessor(newFakeSender())
		_, err := p.Start("madeiras", "Olá!", nil)
		assert.ErrorIs(t, err, ErrInvalidBroadcast)
	})

	t.Run("instance not connected", func(t *testing.T) {
		sender := newFakeSender()
		sender.state = handlers.InstanceClosed
		p := newTestProcessor(sender)
		_, err := p.Start("madeiras", "Olá!", testAudience())
		assert.ErrorIs(t, err, ErrInvalidBroadcast)
	})

	t.Run("state check failed", func(t *testing.T) {
		sender := newFakeSender()
		sender.stateErr = fmt.Errorf("gateway down")
		p := newTestProcessor(sender)
		_, err := p.Start("madeiras", "Olá!", testAudience())
		assert.ErrorIs(t, err, ErrInvalidBroadcast)
	})
}

func TestBroadcast_Cancel(t *testing.T) {
	sender := newFakeSender()
	sender.gate = make(chan struct{})
	p := newTestProcessor(sender)

	id, err := p.Start("madeiras", "Olá [NOME]!", testAudience())
	require.NoError(t, err)

	// Let the first send through, then cancel before the second.
	sender.gate <- struct{}{}
	require.True(t, p.Cancel(id))
	close(sender.gate)

	run := waitForStatus(t, p, id, RunStatusCancelled)
	assert.LessOrEqual(t, len(sender.attempts()), 2, "remaining recipients are never contacted")
	assert.Equal(t, run.Sent+run.Failed, len(sender.attempts()))
}

func TestBroadcast_GetUnknownRun(t *testing.T) {
	p := newTestProcessor(newFakeSender())
	_, ok := p.Get("nope")
	assert.False(t, ok)
}

func TestBroadcast_CancelUnknownRun(t *testing.T) {
	p := newTestProcessor(newFakeSender())
	assert.False(t, p.Cancel("nope"))
}

func TestPersonalizeMessage_NoPlaceholders(t *testing.T) {
	out := personalizeMessage("Tabela de preços atualizada.", "Serraria Bom Pinho", "01/09/2026")
	assert.Equal(t, "Tabela de preços atualizada.", out)
	assert.False(t, strings.Contains(out, "["))
}

func TestPersonalizeMessage_DateIsRunLevel(t *testing.T) {
	// The date string is fixed for the whole run and injected; every
	// recipient of one run gets the same date regardless of send time.
	out := personalizeMessage("Carga de [DATA] confirmada, [NOME]?", "Transportadora União", "31/12/2025")
	assert.Equal(t, "Carga de 31/12/2025 confirmada, Transportadora?", out)
}
