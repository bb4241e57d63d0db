// Package cart provides session-scoped cart persistence. A cart is
// ephemeral state keyed by the shopper's session token: handlers load it,
// mutate it through the domain.Cart methods, and save it back. Orders never
// reference a cart; they snapshot its lines at creation.
package cart

import (
	"context"
	"time"

	"github.com/lamsashop/lamsa/internal/domain"
)

// TTL is how long an untouched cart survives. Every save refreshes it.
const TTL = 30 * 24 * time.Hour

// Store persists session carts.
type Store interface {
	// Get loads the cart for a session token. A session with no cart yet
	// gets a fresh empty cart, not an error.
	Get(ctx context.Context, token string) (*domain.Cart, error)

	// Save writes the cart back and refreshes its TTL.
	Save(ctx context.Context, token string, c *domain.Cart) error

	// Delete drops the cart, e.g. after checkout or logout.
	Delete(ctx context.Context, token string) error
}
