package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"
)

const (
	// DefaultMinDelay and DefaultMaxDelay bound the random pause between two
	// sends. The jitter keeps the gateway account from looking like a bot.
	DefaultMinDelay = 12 * time.Second
	DefaultMaxDelay = 20 * time.Second

	// Run statuses.
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusCancelled = "cancelled"
)

// ErrInvalidBroadcast marks a broadcast request that cannot start: empty
// message, empty audience or a disconnected instance.
var ErrInvalidBroadcast = errors.New("invalid broadcast request")

// Placeholders substituted per recipient before sending.
var (
	namePlaceholderRe = regexp.MustCompile(`(?i)\[NOME\]`)
	datePlaceholderRe = regexp.MustCompile(`(?i)\[DATA\]`)
)

// MessageSender is the gateway surface the processor needs. Satisfied by
// handlers.EvolutionHandler; tests use a fake.
type MessageSender interface {
	ConnectionState(ctx context.Context, instance string) (*handlers.InstanceStatus, error)
	SendText(ctx context.Context, instance, number, text string) error
}

// DelaySampler produces the pause between two consecutive sends.
type DelaySampler func() time.Duration

// DefaultDelaySampler returns a sampler drawing uniformly from [min, max].
func DefaultDelaySampler(min, max time.Duration) DelaySampler {
	if max < min {
		max = min
	}
	return func() time.Duration {
		return min + time.Duration(rand.Int63n(int64(max-min)+1))
	}
}

// BroadcastRun tracks one paced transmission.
type BroadcastRun struct {
	mu       sync.Mutex
	id       string
	status   string
	total    int
	sent     int
	failed   int
	progress int
	started  time.Time
	cancel   context.CancelFunc
}

// Snapshot returns the run's current state.
func (r *BroadcastRun) Snapshot() dto.BroadcastRunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return dto.BroadcastRunStatus{
		ID:        r.id,
		Status:    r.status,
		Total:     r.total,
		Sent:      r.sent,
		Failed:    r.failed,
		Progress:  r.progress,
		StartedAt: r.started,
	}
}

// BroadcastProcessor runs paced WhatsApp transmissions: one recipient at a
// time, a random pause between sends, per-recipient placeholder substitution
// and live progress tracking.
type BroadcastProcessor struct {
	sender   MessageSender
	supabase *handlers.SupabaseHandler
	sampler  DelaySampler

	// onAttempt, when set, observes each send attempt. Used by tests.
	onAttempt func(run dto.BroadcastRunStatus)

	mu   sync.Mutex
	runs map[string]*BroadcastRun
}

// NewBroadcastProcessor creates a new BroadcastProcessor instance.
func NewBroadcastProcessor(sender MessageSender, minDelay, maxDelay time.Duration) *BroadcastProcessor {
	if minDelay == 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay == 0 {
		maxDelay = DefaultMaxDelay
	}
	return &BroadcastProcessor{
		sender:  sender,
		sampler: DefaultDelaySampler(minDelay, maxDelay),
		runs:    make(map[string]*BroadcastRun),
	}
}

// SetSupabase enables audit events for run lifecycle.
func (p *BroadcastProcessor) SetSupabase(supabase *handlers.SupabaseHandler) {
	p.supabase = supabase
}

// SetDelaySampler overrides the inter-send pause source (used in tests).
func (p *BroadcastProcessor) SetDelaySampler(s DelaySampler) {
	p.sampler = s
}

// SetAttemptObserver registers a callback invoked after every send attempt.
func (p *BroadcastProcessor) SetAttemptObserver(fn func(run dto.BroadcastRunStatus)) {
	p.onAttempt = fn
}

// Start validates a broadcast and launches it in the background. Returns the
// run ID for polling.
func (p *BroadcastProcessor) Start(instance, message string, contacts []dto.Contact) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidBroadcast)
	}
	if len(contacts) == 0 {
		return "", fmt.Errorf("%w: no reachable contacts in the audience", ErrInvalidBroadcast)
	}

	status, err := p.sender.ConnectionState(context.Background(), instance)
	if err != nil {
		return "", fmt.Errorf("%w: could not check instance state: %v", ErrInvalidBroadcast, err)
	}
	if status.Status != handlers.InstanceOpen {
		return "", fmt.Errorf("%w: instance %s is not connected", ErrInvalidBroadcast, status.Instance)
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &BroadcastRun{
		id:      strconv.FormatInt(time.Now().UnixMilli(), 10),
		status:  RunStatusRunning,
		total:   len(contacts),
		started: time.Now(),
		cancel:  cancel,
	}

	p.mu.Lock()
	p.runs[run.id] = run
	p.mu.Unlock()

	log.Printf("[BroadcastProcessor] Run %s started: %d recipients on instance %s", run.id, run.total, status.Instance)
	p.recordEvent("broadcast_started", map[string]interface{}{
		"run_id": run.id,
		"total":  run.total,
	})

	go p.process(ctx, run, status.Instance, message, contacts)

	return run.id, nil
}

// Get returns the state of a run, or false when the ID is unknown.
func (p *BroadcastProcessor) Get(id string) (dto.BroadcastRunStatus, bool) {
	p.mu.Lock()
	run, ok := p.runs[id]
	p.mu.Unlock()
	if !ok {
		return dto.BroadcastRunStatus{}, false
	}
	return run.Snapshot(), true
}

// Cancel stops a running broadcast. Recipients already attempted keep their
// outcome; the rest are never contacted.
func (p *BroadcastProcessor) Cancel(id string) bool {
	p.mu.Lock()
	run, ok := p.runs[id]
	p.mu.Unlock()
	if !ok {
		return false
	}
	run.cancel()
	return true
}

// process walks the audience sequentially. Every recipient gets exactly one
// attempt; a failed send is counted and the run moves on.
func (p *BroadcastProcessor) process(ctx context.Context, run *BroadcastRun, instance, message string, contacts []dto.Contact) {
	// One date for the whole run, even when it crosses midnight.
	dateStr := time.Now().Format("02/01/2006")

	for i, contact := range contacts {
		select {
		case <-ctx.Done():
			p.finish(run, RunStatusCancelled)
			return
		default:
		}

		text := personalizeMessage(message, contact.Name, dateStr)

		err := p.sender.SendText(ctx, instance, contact.Phone, text)

		run.mu.Lock()
		if err != nil {
			run.failed++
			log.Printf("[BroadcastProcessor] Run %s: send to %s failed: %v", run.id, contact.Phone, err)
		} else {
			run.sent++
		}
		run.progress = (100*(i+1) + run.total - 1) / run.total
		run.mu.Unlock()

		if p.onAttempt != nil {
			p.onAttempt(run.Snapshot())
		}

		if i < len(contacts)-1 {
			select {
			case <-ctx.Done():
				p.finish(run, RunStatusCancelled)
				return
			case <-time.After(p.sampler()):
			}
		}
	}

	p.finish(run, RunStatusCompleted)
}

func (p *BroadcastProcessor) finish(run *BroadcastRun, status string) {
	run.mu.Lock()
	run.status = status
	snapshot := dto.BroadcastRunStatus{
		ID:       run.id,
		Status:   run.status,
		Total:    run.total,
		Sent:     run.sent,
		Failed:   run.failed,
		Progress: run.progress,
	}
	run.mu.Unlock()

	log.Printf("[BroadcastProcessor] Run %s %s: %d sent, %d failed of %d",
		snapshot.ID, snapshot.Status, snapshot.Sent, snapshot.Failed, snapshot.Total)
	p.recordEvent("broadcast_"+status, map[string]interface{}{
		"run_id": snapshot.ID,
		"sent":   snapshot.Sent,
		"failed": snapshot.Failed,
		"total":  snapshot.Total,
	})
}

func (p *BroadcastProcessor) recordEvent(eventType string, details map[string]interface{}) {
	if p.supabase == nil {
		return
	}
	if err := p.supabase.InsertEvent(eventType, "broadcast", details); err != nil {
		log.Printf("[BroadcastProcessor] Failed to record %s event: %v", eventType, err)
	}
}

// personalizeMessage substitutes the per-recipient placeholders: [NOME] with
// the contact's first name and [DATA] with the run's date in dd/mm/yyyy.
func personalizeMessage(message, name, dateStr string) string {
	firstName := name
	if fields := strings.Fields(name); len(fields) > 0 {
		firstName = fields[0]
	}
	out := namePlaceholderRe.ReplaceAllLiteralString(message, firstName)
	out = datePlaceholderRe.ReplaceAllLiteralString(out, dateStr)
	return out
}
