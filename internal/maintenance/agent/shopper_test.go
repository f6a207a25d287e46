package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	contractors []Contractor
	err         error
}

func (d *fakeDirectory) FindContractors(context.Context, Request) ([]Contractor, error) {
	return d.contractors, d.err
}

type fakeGenerator struct {
	failFor map[string]bool
}

func (g *fakeGenerator) GenerateOutreach(_ context.Context, _ Request, c Contractor) (string, error) {
	if g.failFor[c.Name] {
		return "", errors.New("generation failed")
	}
	return "outreach to " + c.Name, nil
}

type fakeCollector struct {
	failFor map[string]bool
}

func (c *fakeCollector) CollectQuote(_ context.Context, _ Request, contractor Contractor, outreach string) (Quote, error) {
	if c.failFor[contractor.Name] {
		return Quote{}, errors.New("collection failed")
	}
	return Quote{ContractorName: contractor.Name, Amount: 100, Transcript: []TranscriptEntry{{Role: "sent", Message: outreach}}}, nil
}

type fakeRequestStore struct {
	statuses []string
	err      error
}

// SetAgentStatus rejects done contexts the way a real pool does.
func (s *fakeRequestStore) SetAgentStatus(ctx context.Context, _ uuid.UUID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.err != nil {
		return s.err
	}
	s.statuses = append(s.statuses, status)
	return nil
}

type fakeQuoteWriter struct {
	saved   []Quote
	failFor map[string]bool
}

func (w *fakeQuoteWriter) SaveQuote(_ context.Context, _ uuid.UUID, quote Quote) error {
	if w.failFor[quote.ContractorName] {
		return errors.New("save failed")
	}
	w.saved = append(w.saved, quote)
	return nil
}

type notification struct {
	userID   uuid.UUID
	title    string
	message  string
	metadata map[string]any
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message string, metadata map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.sent = append(n.sent, notification{userID: userID, title: title, message: message, metadata: metadata})
	return nil
}

func candidates(n int) []Contractor {
	out := make([]Contractor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Contractor{PlaceID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Contractor %d", i)})
	}
	return out
}

type shopperFixture struct {
	shopper  *Shopper
	store    *fakeRequestStore
	quotes   *fakeQuoteWriter
	notifier *fakeNotifier
}

func newShopperFixture(directory Directory, generator MessageGenerator, collector QuoteCollector) shopperFixture {
	store := &fakeRequestStore{}
	quotes := &fakeQuoteWriter{}
	notifier := &fakeNotifier{}
	shopper := NewShopper(directory, generator, collector, store, quotes, notifier, logger.New("test"))
	return shopperFixture{shopper: shopper, store: store, quotes: quotes, notifier: notifier}
}

func TestShopper_CollectsQuotesAndCompletes(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{contractors: candidates(3)}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()
	req.LandlordID = uuid.New()

	if err := f.shopper.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(f.quotes.saved) != 3 {
		t.Fatalf("expected 3 saved quotes, got %d", len(f.quotes.saved))
	}
	if len(f.store.statuses) != 1 || f.store.statuses[0] != repository.AgentStatusCompleted {
		t.Fatalf("expected a single completed transition, got %v", f.store.statuses)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if n.userID != req.LandlordID {
		t.Fatalf("notification went to %s, want landlord %s", n.userID, req.LandlordID)
	}
	if n.title != "Quotes ready" {
		t.Fatalf("unexpected title %q", n.title)
	}
	if n.message != "The agent collected 3 quotes for: Leaking kitchen sink" {
		t.Fatalf("unexpected message %q", n.message)
	}
	if n.metadata["quotes_count"] != 3 {
		t.Fatalf("unexpected quotes_count %v", n.metadata["quotes_count"])
	}
	if n.metadata["maintenance_request_id"] != req.ID.String() {
		t.Fatalf("unexpected maintenance_request_id %v", n.metadata["maintenance_request_id"])
	}
}

func TestShopper_SingleQuoteUsesSingularMessage(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{contractors: candidates(1)}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()

	if err := f.shopper.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.notifier.sent[0].message; !strings.Contains(got, "1 quote for:") {
		t.Fatalf("expected singular wording, got %q", got)
	}
}

func TestShopper_NoContractorsCompletesWithNotice(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{contractors: nil}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()

	if err := f.shopper.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(f.store.statuses) != 1 || f.store.statuses[0] != repository.AgentStatusCompleted {
		t.Fatalf("expected completed status, got %v", f.store.statuses)
	}
	n := f.notifier.sent[0]
	if n.title != "No contractors found" {
		t.Fatalf("unexpected title %q", n.title)
	}
	if n.message != "The agent could not find any contractors for: Leaking kitchen sink" {
		t.Fatalf("unexpected message %q", n.message)
	}
	if _, ok := n.metadata["quotes_count"]; ok {
		t.Fatal("quotes_count should not be set when no contractors were found")
	}
}

func TestShopper_DirectoryErrorFailsRun(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{err: errors.New("places down")}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()

	err := f.shopper.Run(context.Background(), req)
	if err == nil {
		t.Fatal("expected an error when the directory fails")
	}
	if len(f.store.statuses) != 1 || f.store.statuses[0] != repository.AgentStatusFailed {
		t.Fatalf("expected failed status, got %v", f.store.statuses)
	}
	if f.notifier.sent[0].title != "Agent failed" {
		t.Fatalf("unexpected title %q", f.notifier.sent[0].title)
	}
}

func TestShopper_PerCandidateFailuresAreSkipped(t *testing.T) {
	generator := &fakeGenerator{failFor: map[string]bool{"Contractor 0": true}}
	collector := &fakeCollector{failFor: map[string]bool{"Contractor 1": true}}
	f := newShopperFixture(&fakeDirectory{contractors: candidates(4)}, generator, collector)
	f.quotes.failFor = map[string]bool{"Contractor 2": true}
	req := testRequest()
	req.ID = uuid.New()

	if err := f.shopper.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(f.quotes.saved) != 1 || f.quotes.saved[0].ContractorName != "Contractor 3" {
		t.Fatalf("expected only Contractor 3 saved, got %+v", f.quotes.saved)
	}
	if got := f.notifier.sent[0].message; !strings.Contains(got, "1 quote for:") {
		t.Fatalf("expected a single collected quote reported, got %q", got)
	}
	if f.store.statuses[0] != repository.AgentStatusCompleted {
		t.Fatalf("run with skipped candidates should still complete, got %v", f.store.statuses)
	}
}

func TestShopper_CapsCandidatesAtFive(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{contractors: candidates(8)}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()

	if err := f.shopper.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.quotes.saved) != maxCandidates {
		t.Fatalf("expected %d saved quotes, got %d", maxCandidates, len(f.quotes.saved))
	}
}

func TestShopper_CancelledContextFailsRun(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{contractors: candidates(2)}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.shopper.Run(ctx, req); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if len(f.store.statuses) != 1 || f.store.statuses[0] != repository.AgentStatusFailed {
		t.Fatalf("expected failed status, got %v", f.store.statuses)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].title != "Agent failed" {
		t.Fatalf("expected a failure notification, got %+v", f.notifier.sent)
	}
}

func TestShopper_FailedStatusSurvivesExpiredRunContext(t *testing.T) {
	f := newShopperFixture(&fakeDirectory{err: errors.New("places down")}, &fakeGenerator{}, &fakeCollector{})
	req := testRequest()
	req.ID = uuid.New()
	req.LandlordID = uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.shopper.Run(ctx, req); err == nil {
		t.Fatal("expected the directory error to surface")
	}

	// The store and notifier reject done contexts, so these only succeed if
	// the terminal write runs detached from the expired run context.
	if len(f.store.statuses) != 1 || f.store.statuses[0] != repository.AgentStatusFailed {
		t.Fatalf("terminal failed status was not persisted, got %v", f.store.statuses)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
	}
	if n := f.notifier.sent[0]; n.userID != req.LandlordID || n.title != "Agent failed" {
		t.Fatalf("unexpected notification %+v", n)
	}
}
