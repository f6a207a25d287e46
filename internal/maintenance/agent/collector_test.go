package agent

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"
)

func noSleep(context.Context, time.Duration) {}

func testRequest() Request {
	return Request{
		Title:           "Leaking kitchen sink",
		Description:     "Water pooling under the cabinet",
		Category:        "plumbing",
		Priority:        "high",
		PropertyAddress: "12 Oak St",
		PropertyCity:    "Springfield",
		PropertyState:   "IL",
		PropertyZipCode: "62701",
	}
}

func testContractor() Contractor {
	phone := "(555) 123-4567"
	rating := 4.6
	return Contractor{
		PlaceID:     "place_1",
		Name:        "ABC Plumbing",
		Address:     "34 Elm St, Springfield",
		Phone:       &phone,
		Rating:      &rating,
		ReviewCount: 87,
	}
}

func TestSimulatedCollector_AmountWithinPricingBounds(t *testing.T) {
	collector := NewSimulatedCollector(rand.New(rand.NewSource(1)), noSleep, nil)

	for category, base := range basePrices {
		for priority, mult := range priorityMultipliers {
			req := testRequest()
			req.Category = category
			req.Priority = priority

			for i := 0; i < 20; i++ {
				quote, err := collector.CollectQuote(context.Background(), req, testContractor(), "hello")
				if err != nil {
					t.Fatalf("CollectQuote(%s/%s): %v", category, priority, err)
				}

				lo := base * mult * 0.8
				hi := base * mult * 1.2
				if quote.Amount < lo-0.5 || quote.Amount > hi+0.5 {
					t.Fatalf("amount %.2f for %s/%s outside [%.2f, %.2f]", quote.Amount, category, priority, lo, hi)
				}
			}
		}
	}
}

func TestSimulatedCollector_UnknownCategoryUsesGeneralPricing(t *testing.T) {
	collector := NewSimulatedCollector(rand.New(rand.NewSource(2)), noSleep, nil)
	req := testRequest()
	req.Category = "landscaping"
	req.Priority = "medium"

	quote, err := collector.CollectQuote(context.Background(), req, testContractor(), "hello")
	if err != nil {
		t.Fatalf("CollectQuote: %v", err)
	}
	if quote.Amount < 300*0.8-0.5 || quote.Amount > 300*1.2+0.5 {
		t.Fatalf("expected general pricing bounds, got %.2f", quote.Amount)
	}
}

func TestSimulatedCollector_AvailabilityFormat(t *testing.T) {
	collector := NewSimulatedCollector(rand.New(rand.NewSource(3)), noSleep, nil)
	pattern := regexp.MustCompile(`^Available in [1-7] day(s)?$`)

	sawSingular := false
	sawPlural := false
	for i := 0; i < 100; i++ {
		quote, err := collector.CollectQuote(context.Background(), testRequest(), testContractor(), "hello")
		if err != nil {
			t.Fatalf("CollectQuote: %v", err)
		}
		if !pattern.MatchString(quote.Availability) {
			t.Fatalf("unexpected availability %q", quote.Availability)
		}
		if quote.Availability == "Available in 1 day" {
			sawSingular = true
		}
		if strings.HasSuffix(quote.Availability, "days") {
			sawPlural = true
		}
	}
	if !sawSingular || !sawPlural {
		t.Fatalf("expected both singular and plural availability over 100 runs")
	}
}

func TestSimulatedCollector_TranscriptRecordsBothSides(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	collector := NewSimulatedCollector(rand.New(rand.NewSource(4)), noSleep, func() time.Time { return fixed })

	quote, err := collector.CollectQuote(context.Background(), testRequest(), testContractor(), "outreach body")
	if err != nil {
		t.Fatalf("CollectQuote: %v", err)
	}

	if len(quote.Transcript) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(quote.Transcript))
	}
	sent, received := quote.Transcript[0], quote.Transcript[1]
	if sent.Role != "sent" || sent.Message != "outreach body" {
		t.Fatalf("unexpected sent entry: %+v", sent)
	}
	if received.Role != "received" {
		t.Fatalf("expected received role, got %q", received.Role)
	}
	if !strings.Contains(received.Message, "Thank you for reaching out.") {
		t.Fatalf("unexpected reply %q", received.Message)
	}
	if !strings.Contains(received.Message, quote.Availability) {
		t.Fatalf("reply %q does not mention availability %q", received.Message, quote.Availability)
	}
	if !sent.Timestamp.Equal(fixed) || !received.Timestamp.Equal(fixed) {
		t.Fatalf("expected injected timestamps, got %v and %v", sent.Timestamp, received.Timestamp)
	}

	if !strings.Contains(quote.Notes, "Quote for Leaking kitchen sink.") {
		t.Fatalf("unexpected notes %q", quote.Notes)
	}
	if quote.ContractorName != "ABC Plumbing" || quote.ContractorReviewCount != 87 {
		t.Fatalf("contractor fields not carried over: %+v", quote)
	}
}
