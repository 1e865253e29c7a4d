package mappers

import (
	"fmt"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/infrastructure/persistence/models"
)

// SubscriptionMapper handles the conversion between domain entities and persistence models
type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type subscriptionMapper struct{}

// NewSubscriptionMapper creates a new subscription mapper
func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		vo.ProductLine(model.ProductLine),
		vo.SubscriptionStatus(model.Status),
		model.StartDate,
		model.EndDate,
		model.AutoRenew,
		model.CancelledAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}

	return entity, nil
}

func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		UserID:      entity.UserID(),
		PlanID:      entity.PlanID(),
		ProductLine: string(entity.ProductLine()),
		Status:      string(entity.Status()),
		ActiveKey:   ActiveKeyFor(entity),
		StartDate:   entity.StartDate(),
		EndDate:     entity.EndDate(),
		AutoRenew:   entity.AutoRenew(),
		CancelledAt: entity.CancelledAt(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *subscriptionMapper) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

// ActiveKeyFor derives the uniqueness key that guards the one-active-
// subscription-per-line invariant: set while the status is active, NULL
// once the subscription ends.
func ActiveKeyFor(entity *subscription.Subscription) *string {
	if entity.Status() != vo.StatusActive {
		return nil
	}
	key := fmt.Sprintf("%d:%s", entity.UserID(), entity.ProductLine())
	return &key
}
