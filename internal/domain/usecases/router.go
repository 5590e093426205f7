// Package usecases - router.go selects the legal domain for a query.
package usecases

import (
	"strings"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// Keyword sets evaluated in fixed priority order; first match wins.
// The ordering is a deliberate tie-break: "unilateral" outranks "mutual" so a
// question mentioning both resolves to the unilateral clause library.
var (
	unilateralKeywords = []string{"unilateral", "one-way", "one way", "single party", "single-party"}
	mutualKeywords     = []string{"mutual", "two-way", "two way", "both parties", "bilateral"}
	contractKeywords   = []string{"nda", "non-disclosure", "nondisclosure", "confidentiality agreement", "agreement", "contract", "draft"}
	criminalKeywords   = []string{"ipc", "crpc", "bns", "section", "penalty", "punishment", "offence", "offense", "bail", "crime", "criminal"}
)

// SelectDomain classifies a query into a legal domain. An explicit valid hint
// wins; otherwise case-insensitive keyword membership decides, falling back
// to criminal law when nothing matches.
func SelectDomain(query string, hint entities.Domain) entities.Domain {
	if hint != "" && hint.Valid() {
		return hint
	}

	q := strings.ToLower(query)
	switch {
	case containsAny(q, unilateralKeywords):
		return entities.DomainNDAUnilateral
	case containsAny(q, mutualKeywords):
		return entities.DomainNDAMutual
	case containsAny(q, contractKeywords):
		// Generic contract work uses the mutual clause library.
		return entities.DomainNDAMutual
	case containsAny(q, criminalKeywords):
		return entities.DomainCriminal
	default:
		return entities.DomainCriminal
	}
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
