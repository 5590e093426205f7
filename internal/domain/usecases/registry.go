// Package usecases - registry.go holds the loaded domain index bindings.
package usecases

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/ports"
)

// IndexOpener opens the current on-disk index for a domain. It must return
// an index that yields zero passages when the domain has no built index.
type IndexOpener func(domain entities.Domain) (ports.VectorIndex, error)

// generation is one immutable set of domain bindings. Requests in flight keep
// the generation they started with; Reload swaps in a complete replacement.
type generation struct {
	indexes map[entities.Domain]ports.VectorIndex
}

// Registry maps domains to vector indexes and answers text searches against
// them. Bindings are replaced wholesale on Reload, never mutated in place.
type Registry struct {
	embedder ports.EmbeddingService
	opener   IndexOpener
	domains  []entities.Domain

	gen atomic.Pointer[generation]
}

// NewRegistry creates a registry for the given domains. No indexes are bound
// until the first Reload.
func NewRegistry(embedder ports.EmbeddingService, opener IndexOpener, domains []entities.Domain) *Registry {
	return &Registry{
		embedder: embedder,
		opener:   opener,
		domains:  domains,
	}
}

// Reload opens every domain's index and swaps the complete set in atomically.
// A failure leaves the previous generation serving.
//
// Indexes of the replaced generation are left open: a request that began
// before the swap may still be reading them, and index handles are cheap
// enough to retire with the process.
func (r *Registry) Reload(ctx context.Context) error {
	next := &generation{indexes: make(map[entities.Domain]ports.VectorIndex, len(r.domains))}
	for _, d := range r.domains {
		idx, err := r.opener(d)
		if err != nil {
			return errors.Wrapf(err, "opening index for domain %s", d)
		}
		next.indexes[d] = idx
		count, err := idx.Count(ctx)
		if err == nil {
			log.Info().Str("domain", string(d)).Int("passages", count).Msg("domain index attached")
		}
	}
	r.gen.Store(next)
	return nil
}

// Ready reports whether all required domain indexes are attached.
func (r *Registry) Ready() bool {
	gen := r.gen.Load()
	return gen != nil && len(gen.indexes) == len(r.domains)
}

// Has reports whether the domain has a bound index.
func (r *Registry) Has(domain entities.Domain) bool {
	gen := r.gen.Load()
	if gen == nil {
		return false
	}
	_, ok := gen.indexes[domain]
	return ok
}

// SearchText embeds the query and runs a top-k similarity search against the
// domain's index. An unbound domain is ErrUnknownDomain; everything else the
// caller decides how to degrade.
func (r *Registry) SearchText(ctx context.Context, domain entities.Domain, query string, topK int) ([]entities.Passage, error) {
	gen := r.gen.Load()
	if gen == nil {
		return nil, ErrNotReady
	}
	idx, ok := gen.indexes[domain]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDomain, "%s", domain)
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "embedding query")
	}
	passages, err := idx.Search(ctx, embedding, topK)
	if err != nil {
		return nil, errors.Wrap(err, "searching index")
	}
	return passages, nil
}
