package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	"talenthub/internal/shared/logger"
)

type ListUserSubscriptionsQuery struct {
	UserID uint
}

type ListUserSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewListUserSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Execute lists the user's subscription history, newest first, with each
// entry's plan resolved.
func (uc *ListUserSubscriptionsUseCase) Execute(ctx context.Context, query ListUserSubscriptionsQuery) ([]*dto.SubscriptionDTO, error) {
	subs, err := uc.subscriptionRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err, "user_id", query.UserID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	// Plans repeat across renewals; resolve each ID once.
	plans := make(map[uint]*subscription.Plan)
	dtos := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		plan, ok := plans[sub.PlanID()]
		if !ok {
			plan, err = uc.planRepo.GetByID(ctx, sub.PlanID())
			if err != nil {
				uc.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
				return nil, fmt.Errorf("failed to get plan: %w", err)
			}
			plans[sub.PlanID()] = plan
		}
		dtos = append(dtos, dto.ToSubscriptionDTO(sub, plan))
	}

	return dtos, nil
}
