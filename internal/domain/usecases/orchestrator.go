// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/ports"
)

const (
	// Trailing conversation windows included in prompts. Earlier turns are
	// dropped entirely, never summarized.
	reformulationWindow = 6
	generationWindow    = 8
)

const fallbackPhrase = "I don't have information about this in the provided legal sections."

const reformulationSystemPrompt = `You are a helpful assistant that reformulates follow-up questions to be standalone questions.

Given a conversation history and a follow-up question, reformulate the question to include necessary context from the conversation.
The reformulated question should be a complete, standalone question that can be understood without the conversation history.

If the question is already standalone, return it as-is.`

// Orchestrator coordinates the reformulate/retrieve/generate pipeline.
// It holds no per-request state: every call builds a fresh QueryContext.
type Orchestrator struct {
	llm      ports.LLMService
	registry *Registry
	topK     int
}

// NewOrchestrator creates an orchestrator with injected dependencies.
func NewOrchestrator(llm ports.LLMService, registry *Registry, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 5
	}
	return &Orchestrator{llm: llm, registry: registry, topK: topK}
}

// Query runs the full pipeline and returns the complete answer with
// formatted source strings, in retrieval order.
func (o *Orchestrator) Query(ctx context.Context, domain entities.Domain, question string, history []entities.ChatTurn) (*entities.QueryResult, error) {
	qc := &entities.QueryContext{Question: question, History: history}

	qc.SearchQuery = o.reformulate(ctx, question, history)
	o.retrieve(ctx, domain, qc)

	answer, err := o.llm.Complete(ctx, o.buildGenerationMessages(domain, qc))
	if err != nil {
		return nil, errors.Wrap(err, "generating answer")
	}
	qc.Answer = answer

	return &entities.QueryResult{
		Question: question,
		Answer:   answer,
		Sources:  formatSources(qc.Passages),
	}, nil
}

// QueryStream runs the pipeline with incrementally streamed output. The
// returned channel carries one sources event, then content fragments, then a
// terminal done event; a generation failure produces a single error event and
// closes the channel early. The producer stops when ctx is done.
func (o *Orchestrator) QueryStream(ctx context.Context, domain entities.Domain, question string, history []entities.ChatTurn) <-chan entities.StreamEvent {
	events := make(chan entities.StreamEvent, 16)

	go func() {
		defer close(events)

		qc := &entities.QueryContext{Question: question, History: history}
		qc.SearchQuery = o.reformulate(ctx, question, history)
		o.retrieve(ctx, domain, qc)

		if !emit(ctx, events, entities.StreamEvent{Type: entities.StreamSources, Sources: qc.Passages}) {
			return
		}

		tokens, err := o.llm.Stream(ctx, o.buildGenerationMessages(domain, qc))
		if err != nil {
			emit(ctx, events, entities.StreamEvent{Type: entities.StreamError, Err: err.Error()})
			return
		}

		var answer strings.Builder
		for tok := range tokens {
			if tok.Err != nil {
				emit(ctx, events, entities.StreamEvent{Type: entities.StreamError, Err: tok.Err.Error()})
				return
			}
			if tok.Content == "" {
				continue
			}
			answer.WriteString(tok.Content)
			if !emit(ctx, events, entities.StreamEvent{Type: entities.StreamContent, Content: tok.Content}) {
				return
			}
		}

		emit(ctx, events, entities.StreamEvent{
			Type:     entities.StreamDone,
			Question: question,
			Answer:   answer.String(),
		})
	}()

	return events
}

// reformulate rewrites a follow-up question into a standalone search query.
// An empty history short-circuits without a model call, and any failure falls
// back to the verbatim question: reformulation must never abort a request.
func (o *Orchestrator) reformulate(ctx context.Context, question string, history []entities.ChatTurn) string {
	if len(history) == 0 {
		return question
	}

	conversation := renderHistory(history, reformulationWindow)
	messages := []ports.Message{
		{Role: ports.MessageRoleSystem, Content: reformulationSystemPrompt},
		{Role: ports.MessageRoleUser, Content: fmt.Sprintf(
			"Conversation History:\n%s\n\nFollow-up Question: %s\n\nReformulated Question:",
			conversation, question)},
	}

	reformulated, err := o.llm.Complete(ctx, messages)
	if err != nil {
		log.Warn().Err(err).Msg("question reformulation failed, using original question")
		return question
	}
	reformulated = strings.TrimSpace(reformulated)
	if reformulated == "" {
		return question
	}
	log.Info().Str("question", question).Str("reformulated", reformulated).Msg("question reformulated")
	return reformulated
}

// retrieve fills qc.Passages and qc.Context. Retrieval failure degrades to an
// empty context: an unbuilt index is a valid operating mode and the model's
// own instructions produce the honest no-information answer.
func (o *Orchestrator) retrieve(ctx context.Context, domain entities.Domain, qc *entities.QueryContext) {
	passages, err := o.registry.SearchText(ctx, domain, qc.SearchQuery, o.topK)
	if err != nil {
		log.Warn().Err(err).Str("domain", string(domain)).Msg("retrieval failed, proceeding with empty context")
		return
	}
	qc.Passages = passages
	qc.Context = buildContext(domain, passages)
	log.Info().Str("domain", string(domain)).Int("passages", len(passages)).Msg("passages retrieved")
}

// buildContext concatenates passages into the prompt context block, in the
// order returned by the search. No local re-ranking.
func buildContext(domain entities.Domain, passages []entities.Passage) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		law := p.Law
		if law == "" {
			law = domain.Label()
		}
		parts[i] = fmt.Sprintf("Source: %s Section %s: %s\n%s", law, p.SectionID, p.Title, p.Body)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// buildGenerationMessages assembles the system+human pair. A non-empty
// history uses a distinct prompt shape with a Previous Conversation block;
// with no history that block is omitted entirely rather than left blank.
func (o *Orchestrator) buildGenerationMessages(domain entities.Domain, qc *entities.QueryContext) []ports.Message {
	system := fmt.Sprintf(`You are an expert Indian legal assistant specializing in %s.

IMPORTANT: You must ONLY answer questions based on the legal sections provided in the context below. Do NOT use external knowledge.

Rules:
- ONLY cite legal sections that are provided in the context
- If the provided context doesn't contain information to answer the question, clearly state: "%s"
- Always cite specific section numbers and titles from the context
- Provide clear, accurate legal guidance based ONLY on the provided sections
- Recommend consulting a qualified lawyer for specific legal advice
- Do NOT make up or assume information not present in the context

Context from %s:
%s`, domainDescriptor(domain), fallbackPhrase, domainContextHeader(domain), qc.Context)

	var human string
	if len(qc.History) > 0 {
		human = fmt.Sprintf(
			"Previous Conversation:\n%s\n\nCurrent Question: %s\n\nAnswer based ONLY on the legal sections provided in the context above.",
			renderHistory(qc.History, generationWindow), qc.Question)
	} else {
		human = fmt.Sprintf(
			"Question: %s\n\nAnswer based ONLY on the legal sections provided in the context above.",
			qc.Question)
	}

	return []ports.Message{
		{Role: ports.MessageRoleSystem, Content: system},
		{Role: ports.MessageRoleUser, Content: human},
	}
}

// renderHistory renders the trailing window of turns as "Role: content"
// lines in original order.
func renderHistory(history []entities.ChatTurn, window int) string {
	if len(history) > window {
		history = history[len(history)-window:]
	}
	lines := make([]string, len(history))
	for i, turn := range history {
		lines[i] = fmt.Sprintf("%s: %s", capitalize(string(turn.Role)), turn.Content)
	}
	return strings.Join(lines, "\n")
}

// formatSources renders passages as "<sectionId> - <title>" strings, in
// retrieval order.
func formatSources(passages []entities.Passage) []string {
	sources := make([]string, len(passages))
	for i, p := range passages {
		sources[i] = fmt.Sprintf("%s - %s", p.SectionID, p.Title)
	}
	return sources
}

func domainDescriptor(domain entities.Domain) string {
	switch domain {
	case entities.DomainNDAMutual:
		return "mutual non-disclosure agreements and contract drafting"
	case entities.DomainNDAUnilateral:
		return "unilateral non-disclosure agreements and contract drafting"
	default:
		return "the Indian criminal law (IPC and CrPC)"
	}
}

func domainContextHeader(domain entities.Domain) string {
	switch domain {
	case entities.DomainNDAMutual:
		return "Mutual NDA Clause Library"
	case entities.DomainNDAUnilateral:
		return "Unilateral NDA Clause Library"
	default:
		return "Indian Laws (IPC & CrPC)"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// emit sends an event unless the consumer is gone.
func emit(ctx context.Context, events chan<- entities.StreamEvent, ev entities.StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
