// Package usecases - agreement.go drafts agreements from clause libraries.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// AgreementDrafter generates agreement documents by running the retrieval
// orchestrator against an NDA clause library. Chat history is never used for
// drafting requests.
type AgreementDrafter struct {
	orchestrator *Orchestrator
	registry     *Registry
}

// NewAgreementDrafter creates a drafter over the shared orchestrator.
func NewAgreementDrafter(orchestrator *Orchestrator, registry *Registry) *AgreementDrafter {
	return &AgreementDrafter{orchestrator: orchestrator, registry: registry}
}

// Generate drafts an agreement. The clause library is selected by the
// explicit isMutual flag, not keyword detection.
func (d *AgreementDrafter) Generate(ctx context.Context, agreementType, requirements string, isMutual bool) (*entities.AgreementResult, error) {
	domain := entities.DomainNDAUnilateral
	if isMutual {
		domain = entities.DomainNDAMutual
	}
	if !d.registry.Has(domain) {
		return nil, errors.Wrapf(ErrUnknownDomain, "no clause index for %s", domain)
	}

	query := buildDraftingQuery(agreementType, requirements, isMutual)
	result, err := d.orchestrator.Query(ctx, domain, query, nil)
	if err != nil {
		return nil, errors.Wrap(err, "drafting agreement")
	}

	return &entities.AgreementResult{
		AgreementType: agreementType,
		Document:      result.Answer,
		ClausesUsed:   result.Sources,
		Sources:       result.Sources,
	}, nil
}

// buildDraftingQuery synthesizes the retrieval/generation query. With no
// requirements the fixed comprehensive-clause request is used verbatim.
func buildDraftingQuery(agreementType, requirements string, isMutual bool) string {
	mode := "unilateral"
	if isMutual {
		mode = "mutual"
	}
	upper := strings.ToUpper(agreementType)

	if requirements != "" {
		return fmt.Sprintf("Generate a comprehensive %s %s with the following requirements: %s", mode, upper, requirements)
	}
	return fmt.Sprintf("Generate a comprehensive %s %s with all standard clauses including definitions, obligations, exclusions, term, remedies, and general provisions.", mode, upper)
}
