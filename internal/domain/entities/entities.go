// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the accepted values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatTurn represents a single conversation turn.
// Order in a history slice is significant: most recent last.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Domain is a named subject-matter partition with its own vector index.
type Domain string

const (
	DomainCriminal      Domain = "criminal"
	DomainNDAMutual     Domain = "nda_mutual"
	DomainNDAUnilateral Domain = "nda_unilateral"
)

// Valid reports whether the domain is one of the known partitions.
func (d Domain) Valid() bool {
	switch d {
	case DomainCriminal, DomainNDAMutual, DomainNDAUnilateral:
		return true
	}
	return false
}

// Label returns the source label used when a passage carries no law metadata.
func (d Domain) Label() string {
	switch d {
	case DomainNDAMutual:
		return "Mutual NDA"
	case DomainNDAUnilateral:
		return "Unilateral NDA"
	default:
		return "IPC"
	}
}

// Passage is a retrieved unit of source text with identifying metadata.
// Produced fresh per query, never mutated, discarded after the response.
type Passage struct {
	SectionID string `json:"section"`
	Title     string `json:"title"`
	Body      string `json:"content"`
	Law       string `json:"law,omitempty"`
	Domain    Domain `json:"domain,omitempty"`
}

// QueryContext is the request-scoped aggregate threaded through the
// reformulate/retrieve/generate pipeline. Visible to exactly one request.
type QueryContext struct {
	Question    string
	History     []ChatTurn
	SearchQuery string
	Passages    []Passage
	Context     string
	Answer      string
}

// QueryResult is the blocking-mode answer with formatted source strings.
type QueryResult struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

// AgreementResult is the output of a drafting request.
type AgreementResult struct {
	AgreementType string   `json:"agreement_type"`
	Document      string   `json:"document"`
	ClausesUsed   []string `json:"clauses_used"`
	Sources       []string `json:"sources"`
}

// StreamEventType tags the events of a streaming query.
type StreamEventType string

const (
	StreamSources StreamEventType = "sources"
	StreamContent StreamEventType = "content"
	StreamDone    StreamEventType = "done"
	StreamError   StreamEventType = "error"
)

// StreamEvent is one element of a streaming response sequence:
// one sources event, zero or more content fragments, then a terminal
// done event carrying the reconstructed answer. A failure mid-stream
// produces a single error event and ends the sequence.
type StreamEvent struct {
	Type     StreamEventType `json:"type"`
	Sources  []Passage       `json:"sources,omitempty"`
	Content  string          `json:"content,omitempty"`
	Question string          `json:"question,omitempty"`
	Answer   string          `json:"answer,omitempty"`
	Err      string          `json:"error,omitempty"`
}
