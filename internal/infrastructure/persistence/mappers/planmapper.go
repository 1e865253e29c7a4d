package mappers

import (
	"encoding/json"
	"fmt"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/infrastructure/persistence/models"
)

// PlanMapper handles the conversion between domain entities and persistence models
type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*subscription.Plan, error)
	ToModel(entity *subscription.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*subscription.Plan, error)
}

type planMapper struct{}

// NewPlanMapper creates a new plan mapper
func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}

	ceilings, err := decodeCeilings(model.Ceilings)
	if err != nil {
		return nil, fmt.Errorf("plan %d: %w", model.ID, err)
	}

	entity, err := subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.Description,
		vo.PlanCategory(model.Category),
		vo.ProductLine(model.ProductLine),
		ceilings,
		model.ValidityDays,
		model.Price,
		model.Currency,
		model.Status,
		model.SortOrder,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan: %w", err)
	}

	return entity, nil
}

func (m *planMapper) ToModel(entity *subscription.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	ceilings, err := encodeCeilings(entity.Ceilings())
	if err != nil {
		return nil, err
	}

	return &models.PlanModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		Name:         entity.Name(),
		Description:  entity.Description(),
		Category:     string(entity.Category()),
		ProductLine:  string(entity.ProductLine()),
		Ceilings:     ceilings,
		ValidityDays: entity.ValidityDays(),
		Price:        entity.Price(),
		Currency:     entity.Currency(),
		Status:       string(entity.Status()),
		SortOrder:    entity.SortOrder(),
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(planModels []*models.PlanModel) ([]*subscription.Plan, error) {
	entities := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
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

// decodeCeilings parses the stored JSON map. The sentinel -1 becomes an
// unlimited ceiling; it exists only at this boundary.
func decodeCeilings(data []byte) (map[vo.Feature]vo.Ceiling, error) {
	if len(data) == 0 {
		return map[vo.Feature]vo.Ceiling{}, nil
	}

	var encoded map[string]int64
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ceilings: %w", err)
	}

	ceilings := make(map[vo.Feature]vo.Ceiling, len(encoded))
	for name, value := range encoded {
		ceiling, err := vo.CeilingFromEncoded(value)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", name, err)
		}
		ceilings[vo.Feature(name)] = ceiling
	}
	return ceilings, nil
}

func encodeCeilings(ceilings map[vo.Feature]vo.Ceiling) ([]byte, error) {
	encoded := make(map[string]int64, len(ceilings))
	for feature, ceiling := range ceilings {
		encoded[string(feature)] = ceiling.Encoded()
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ceilings: %w", err)
	}
	return data, nil
}
