package ports

import (
	"context"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
)

// TierRepository defines the persistence contract for pricing tier reference
// data. Range-overlap prevention is a tier-management concern and is not
// enforced here.
type TierRepository interface {
	// Add persists a new pricing tier.
	Add(ctx context.Context, tier *pricing.Tier) error

	// Get retrieves a tier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pricing.Tier, error)

	// FindMatching returns the single tier covering the location whose
	// inclusive volume range contains volume. Returns an
	// ObjectNotFoundError when no tier matches; absence is an expected
	// outcome, not a failure.
	FindMatching(ctx context.Context, country, city string, volume int) (*pricing.Tier, error)
}
