package usecases

import (
	"testing"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

func TestSelectDomain_ExplicitHintWins(t *testing.T) {
	got := SelectDomain("what is the punishment for theft?", entities.DomainNDAMutual)
	if got != entities.DomainNDAMutual {
		t.Errorf("hint must win, got %s", got)
	}
}

func TestSelectDomain_InvalidHintIgnored(t *testing.T) {
	got := SelectDomain("what is the punishment for theft?", entities.Domain("bogus"))
	if got != entities.DomainCriminal {
		t.Errorf("invalid hint must fall through to classification, got %s", got)
	}
}

func TestSelectDomain_UnilateralBeatsMutual(t *testing.T) {
	// Both keyword families present: the unilateral check runs first.
	got := SelectDomain("Draft a unilateral or mutual NDA for my startup", "")
	if got != entities.DomainNDAUnilateral {
		t.Errorf("expected unilateral precedence, got %s", got)
	}
}

func TestSelectDomain_Mutual(t *testing.T) {
	got := SelectDomain("I need a MUTUAL non-disclosure agreement", "")
	if got != entities.DomainNDAMutual {
		t.Errorf("expected nda_mutual, got %s", got)
	}
}

func TestSelectDomain_GenericContractUsesMutualLibrary(t *testing.T) {
	got := SelectDomain("help me draft a confidentiality agreement", "")
	if got != entities.DomainNDAMutual {
		t.Errorf("expected nda_mutual for generic contract work, got %s", got)
	}
}

func TestSelectDomain_CriminalKeywords(t *testing.T) {
	got := SelectDomain("what is the penalty under section 378?", "")
	if got != entities.DomainCriminal {
		t.Errorf("expected criminal, got %s", got)
	}
}

func TestSelectDomain_DefaultsToCriminal(t *testing.T) {
	got := SelectDomain("hello there", "")
	if got != entities.DomainCriminal {
		t.Errorf("expected criminal default, got %s", got)
	}
}

func TestSelectDomain_CaseInsensitive(t *testing.T) {
	got := SelectDomain("UNILATERAL NDA please", "")
	if got != entities.DomainNDAUnilateral {
		t.Errorf("keyword matching must be case-insensitive, got %s", got)
	}
}
