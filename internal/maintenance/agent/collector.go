package agent

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// basePrices are the baseline quote amounts per maintenance category.
var basePrices = map[string]float64{
	"plumbing":   250,
	"electrical": 300,
	"hvac":       400,
	"appliance":  200,
	"security":   150,
	"exterior":   500,
	"general":    300,
}

// priorityMultipliers scale the base price by request urgency.
var priorityMultipliers = map[string]float64{
	"low":       0.9,
	"medium":    1.0,
	"high":      1.2,
	"emergency": 1.5,
}

func basePriceFor(category string) float64 {
	if p, ok := basePrices[category]; ok {
		return p
	}
	return basePrices["general"]
}

func multiplierFor(priority string) float64 {
	if m, ok := priorityMultipliers[priority]; ok {
		return m
	}
	return 1.0
}

// Sleeper abstracts time.Sleep so tests can skip the simulated latency.
type Sleeper func(ctx context.Context, d time.Duration)

// SleepFor waits for the duration or until the context is done.
func SleepFor(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// SimulatedCollector fabricates contractor replies. The quote amount is the
// category base price scaled by the priority multiplier and a random factor
// in [0.8, 1.2]; availability is one to seven days out. It never fails.
type SimulatedCollector struct {
	rng   *rand.Rand
	sleep Sleeper
	now   func() time.Time
}

// NewSimulatedCollector creates a collector with the given random source.
func NewSimulatedCollector(rng *rand.Rand, sleep Sleeper, now func() time.Time) *SimulatedCollector {
	if sleep == nil {
		sleep = SleepFor
	}
	if now == nil {
		now = time.Now
	}
	return &SimulatedCollector{rng: rng, sleep: sleep, now: now}
}

// CollectQuote simulates sending the outreach message and receiving a quote.
func (c *SimulatedCollector) CollectQuote(ctx context.Context, req Request, contractor Contractor, outreach string) (Quote, error) {
	c.sleep(ctx, time.Duration(1000+c.rng.Intn(2000))*time.Millisecond)

	amount := math.Round(basePriceFor(req.Category) * multiplierFor(req.Priority) * (0.8 + c.rng.Float64()*0.4))

	days := c.rng.Intn(7) + 1
	availability := fmt.Sprintf("Available in %d day", days)
	if days > 1 {
		availability += "s"
	}

	sentAt := c.now()
	reply := fmt.Sprintf("Thank you for reaching out. We can complete this work for $%.0f. %s. Please let us know if you'd like to proceed.", amount, availability)

	return Quote{
		ContractorName:        contractor.Name,
		ContractorPhone:       contractor.Phone,
		ContractorEmail:       contractor.Email,
		ContractorAddress:     contractor.Address,
		ContractorRating:      contractor.Rating,
		ContractorReviewCount: contractor.ReviewCount,
		Amount:                amount,
		Notes:                 fmt.Sprintf("Quote for %s. %s.", req.Title, availability),
		Availability:          availability,
		Transcript: []TranscriptEntry{
			{Role: "sent", Message: outreach, Timestamp: sentAt},
			{Role: "received", Message: reply, Timestamp: c.now()},
		},
	}, nil
}
