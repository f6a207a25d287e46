package agent

import (
	"context"
	"fmt"
	"time"

	"leasewell_backend/internal/maintenance/repository"
	"leasewell_backend/platform/logger"
)

// Call timeouts bound each collaborator so one slow candidate cannot stall
// the whole run.
const (
	directoryTimeout = 20 * time.Second
	outreachTimeout  = 30 * time.Second
	collectTimeout   = 15 * time.Second
	terminalTimeout  = 10 * time.Second
)

// Shopper runs the contractor shopping pipeline for one maintenance request.
// The caller transitions the request to shopping and sends the start
// notification before invoking Run; Run owns the terminal transition.
type Shopper struct {
	directory Directory
	generator MessageGenerator
	collector QuoteCollector
	requests  RequestStore
	quotes    QuoteWriter
	notifier  Notifier
	log       *logger.Logger
}

// NewShopper wires the pipeline collaborators.
func NewShopper(directory Directory, generator MessageGenerator, collector QuoteCollector,
	requests RequestStore, quotes QuoteWriter, notifier Notifier, log *logger.Logger) *Shopper {
	return &Shopper{
		directory: directory,
		generator: generator,
		collector: collector,
		requests:  requests,
		quotes:    quotes,
		notifier:  notifier,
		log:       log,
	}
}

// Run executes the pipeline: directory lookup, per-candidate outreach and
// quote collection, then the terminal status and notification. Per-candidate
// errors skip the candidate; a pipeline-level error fails the run.
func (s *Shopper) Run(ctx context.Context, req Request) error {
	s.log.AgentEvent("shopping_started", req.ID.String(), 0)

	dirCtx, cancel := context.WithTimeout(ctx, directoryTimeout)
	contractors, err := s.directory.FindContractors(dirCtx, req)
	cancel()
	if err != nil {
		return s.fail(ctx, req, fmt.Errorf("directory lookup: %w", err))
	}

	if len(contractors) == 0 {
		if err := s.requests.SetAgentStatus(ctx, req.ID, repository.AgentStatusCompleted); err != nil {
			return s.fail(ctx, req, err)
		}
		s.notify(ctx, req, "No contractors found",
			fmt.Sprintf("The agent could not find any contractors for: %s", req.Title), nil)
		s.log.AgentEvent("shopping_completed", req.ID.String(), 0)
		return nil
	}

	if len(contractors) > maxCandidates {
		contractors = contractors[:maxCandidates]
	}

	collected := 0
	for _, contractor := range contractors {
		if ctx.Err() != nil {
			return s.fail(ctx, req, ctx.Err())
		}
		if s.shopOne(ctx, req, contractor) {
			collected++
		}
	}

	if err := s.requests.SetAgentStatus(ctx, req.ID, repository.AgentStatusCompleted); err != nil {
		return s.fail(ctx, req, err)
	}

	plural := "s"
	if collected == 1 {
		plural = ""
	}
	s.notify(ctx, req, "Quotes ready",
		fmt.Sprintf("The agent collected %d quote%s for: %s", collected, plural, req.Title),
		map[string]any{"quotes_count": collected})
	s.log.AgentEvent("shopping_completed", req.ID.String(), collected)
	return nil
}

// shopOne handles a single candidate and reports whether a quote was stored.
func (s *Shopper) shopOne(ctx context.Context, req Request, contractor Contractor) bool {
	genCtx, cancel := context.WithTimeout(ctx, outreachTimeout)
	outreach, err := s.generator.GenerateOutreach(genCtx, req, contractor)
	cancel()
	if err != nil {
		s.log.Warn("outreach generation failed, skipping contractor",
			"maintenanceRequestId", req.ID, "contractor", contractor.Name, "error", err)
		return false
	}

	colCtx, cancel := context.WithTimeout(ctx, collectTimeout)
	quote, err := s.collector.CollectQuote(colCtx, req, contractor, outreach)
	cancel()
	if err != nil {
		s.log.Warn("quote collection failed, skipping contractor",
			"maintenanceRequestId", req.ID, "contractor", contractor.Name, "error", err)
		return false
	}

	if err := s.quotes.SaveQuote(ctx, req.ID, quote); err != nil {
		s.log.Warn("quote save failed, skipping contractor",
			"maintenanceRequestId", req.ID, "contractor", contractor.Name, "error", err)
		return false
	}
	return true
}

func (s *Shopper) fail(ctx context.Context, req Request, cause error) error {
	s.log.Error("shopping pipeline failed", "maintenanceRequestId", req.ID, "error", cause)

	// The run context may itself be the cause of the failure. The terminal
	// write must still land, or the request stays in shopping and every
	// later deploy hits the single-run guard.
	termCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalTimeout)
	defer cancel()

	if err := s.requests.SetAgentStatus(termCtx, req.ID, repository.AgentStatusFailed); err != nil {
		s.log.Error("failed to record agent failure", "maintenanceRequestId", req.ID, "error", err)
	}
	s.notify(termCtx, req, "Agent failed",
		fmt.Sprintf("The contractor shopping agent encountered an error for: %s", req.Title), nil)
	return cause
}

func (s *Shopper) notify(ctx context.Context, req Request, title, message string, extra map[string]any) {
	metadata := map[string]any{"maintenance_request_id": req.ID.String()}
	for k, v := range extra {
		metadata[k] = v
	}
	if err := s.notifier.Notify(ctx, req.LandlordID, title, message, metadata); err != nil {
		s.log.Warn("notification delivery failed", "maintenanceRequestId", req.ID, "title", title, "error", err)
	}
}
