// ABOUTME: Startup session rehydration from the persisted token
// ABOUTME: Validates the stored token against the backend before trusting it

package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthorized marks a backend response that means the presented token
// is no longer valid. The API client wraps its 401 responses with it so
// session-owning callers can drop the stale token.
var ErrUnauthorized = errors.New("unauthorized")

// IdentityFetcher fetches the identity a token belongs to.
type IdentityFetcher interface {
	Me(ctx context.Context, token string) (*Identity, error)
}

// Rehydrate restores the session from the persisted token, if any.
// A token the backend rejects is cleared; the user simply starts as a
// guest. Transient failures leave the token in place so a later start
// can retry.
func Rehydrate(ctx context.Context, api IdentityFetcher, store *Store) error {
	token := store.PersistedToken()
	if token == "" {
		return nil
	}

	identity, err := api.Me(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			store.Logout()
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	return store.Login(Session{Token: token, Identity: identity})
}
