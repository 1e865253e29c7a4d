package usecases

import (
	"context"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
)

// PlanCatalogCache caches the public plan listing per product line. A nil
// plans return with nil error means cache miss. Implementations must be
// safe for concurrent use.
type PlanCatalogCache interface {
	GetActivePlans(ctx context.Context, productLine vo.ProductLine) ([]*subscription.Plan, error)
	SetActivePlans(ctx context.Context, productLine vo.ProductLine, plans []*subscription.Plan) error
	InvalidateActivePlans(ctx context.Context, productLine vo.ProductLine) error
}
