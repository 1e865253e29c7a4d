package mappers

import (
	"fmt"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/infrastructure/persistence/models"
)

// UsageCounterMapper handles the conversion between domain entities and persistence models
type UsageCounterMapper interface {
	ToEntity(model *models.UsageCounterModel) (*subscription.UsageCounter, error)
	ToEntities(models []*models.UsageCounterModel) ([]*subscription.UsageCounter, error)
}

type usageCounterMapper struct{}

// NewUsageCounterMapper creates a new usage counter mapper
func NewUsageCounterMapper() UsageCounterMapper {
	return &usageCounterMapper{}
}

func (m *usageCounterMapper) ToEntity(model *models.UsageCounterModel) (*subscription.UsageCounter, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructUsageCounter(
		model.ID,
		model.SubscriptionID,
		vo.Feature(model.Feature),
		model.Count,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct usage counter: %w", err)
	}

	return entity, nil
}

func (m *usageCounterMapper) ToEntities(counterModels []*models.UsageCounterModel) ([]*subscription.UsageCounter, error) {
	entities := make([]*subscription.UsageCounter, 0, len(counterModels))
	for _, model := range counterModels {
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
