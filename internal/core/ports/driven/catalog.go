package driven

import (
	"context"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// CatalogStore loads the static course catalog.
// Either the full catalog loads and validates, or Load fails; there are
// no partial loads. Records are immutable for the process lifetime.
type CatalogStore interface {
	// Load returns all catalog courses in document order.
	// Fails with domain.ErrCatalogLoad if the backing document is missing,
	// malformed, or any record fails validation.
	Load(ctx context.Context) ([]domain.Course, error)
}
