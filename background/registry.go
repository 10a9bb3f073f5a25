package background

import (
	"context"
	"strings"

	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/store"
)

// Registry keeps the push tokens of responders
type Registry struct {
	store store.ResponderStore
}

func NewRegistry(s store.ResponderStore) *Registry {
	return &Registry{
		store: s,
	}
}

// Register records a push token. Registering the same token again only
// refreshes it. Blank tokens are ignored.
func (r *Registry) Register(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	return r.store.UpsertResponder(ctx, schema.ResponderKey(token), token)
}

// ListTokens returns the distinct tokens of every registered responder
func (r *Registry) ListTokens(ctx context.Context) ([]string, error) {
	values, err := r.store.ListResponderTokens(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(values))
	tokens := make([]string, 0, len(values))
	for _, t := range values {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}

	return tokens, nil
}
