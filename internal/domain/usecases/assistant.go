// Package usecases - assistant.go is the explicitly constructed service
// object with the init/ready/reload lifecycle. Handlers receive it by
// injection; there is no ambient global instance.
package usecases

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// Assistant coordinates domain routing, querying, and agreement drafting.
type Assistant struct {
	registry     *Registry
	orchestrator *Orchestrator
	drafter      *AgreementDrafter

	initialized atomic.Bool
}

// NewAssistant wires the assistant from its collaborators.
func NewAssistant(registry *Registry, orchestrator *Orchestrator, drafter *AgreementDrafter) *Assistant {
	return &Assistant{
		registry:     registry,
		orchestrator: orchestrator,
		drafter:      drafter,
	}
}

// Initialize attaches all domain indexes. It must complete before any query
// is accepted.
func (a *Assistant) Initialize(ctx context.Context) error {
	log.Info().Msg("initializing assistant")
	if err := a.registry.Reload(ctx); err != nil {
		return err
	}
	a.initialized.Store(true)
	log.Info().Msg("assistant initialized")
	return nil
}

// Ready reports whether all required domain indexes are attached.
func (a *Assistant) Ready() bool {
	return a.initialized.Load() && a.registry.Ready()
}

// Reload re-runs index loading to pick up rebuilt indexes without a process
// restart. Requests in flight keep serving from the previous index set.
func (a *Assistant) Reload(ctx context.Context) error {
	log.Info().Msg("reloading domain indexes")
	return a.registry.Reload(ctx)
}

// Query answers a legal question, routing it to a domain by explicit hint or
// keyword classification.
func (a *Assistant) Query(ctx context.Context, question string, history []entities.ChatTurn, hint entities.Domain) (*entities.QueryResult, error) {
	if !a.Ready() {
		return nil, ErrNotReady
	}
	domain := SelectDomain(question, hint)
	return a.orchestrator.Query(ctx, domain, question, history)
}

// QueryStream answers a legal question with incrementally streamed output.
func (a *Assistant) QueryStream(ctx context.Context, question string, history []entities.ChatTurn, hint entities.Domain) (<-chan entities.StreamEvent, error) {
	if !a.Ready() {
		return nil, ErrNotReady
	}
	domain := SelectDomain(question, hint)
	return a.orchestrator.QueryStream(ctx, domain, question, history), nil
}

// GenerateAgreement drafts an agreement from the clause libraries.
func (a *Assistant) GenerateAgreement(ctx context.Context, agreementType, requirements string, isMutual bool) (*entities.AgreementResult, error) {
	if !a.Ready() {
		return nil, ErrNotReady
	}
	return a.drafter.Generate(ctx, agreementType, requirements, isMutual)
}
