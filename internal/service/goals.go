package service

import (
	"context"
	"errors"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
)

// GoalService manages goals of the current user.
type GoalService interface {
	CreateGoal(ctx context.Context, g model.Goal) (model.Goal, error)
	Goals(ctx context.Context) ([]model.Goal, error)
	UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error)
	// UpdateProgress sets the current value; the goal completes once the target is reached.
	UpdateProgress(ctx context.Context, id string, value float64) (model.Goal, error)
	// DeleteGoal removes a goal; reports false if it was already gone.
	DeleteGoal(ctx context.Context, id string) (bool, error)
}

type GoalServiceImpl struct {
	auth  Authenticator
	goals repository.GoalRepository
}

var _ GoalService = (*GoalServiceImpl)(nil)

// NewGoalService constructs GoalService.
func NewGoalService(auth Authenticator, goals repository.GoalRepository) *GoalServiceImpl {
	return &GoalServiceImpl{auth: auth, goals: goals}
}

func (s *GoalServiceImpl) CreateGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.Goal{}, err
	}
	g.UserID = u.ID
	return s.goals.Add(ctx, g)
}

func (s *GoalServiceImpl) Goals(ctx context.Context) ([]model.Goal, error) {
	return listMine[model.Goal, model.GoalPatch](ctx, s.auth, s.goals)
}

func (s *GoalServiceImpl) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error) {
	return updateMine[model.Goal, model.GoalPatch](ctx, s.auth, s.goals, id, patch)
}

func (s *GoalServiceImpl) UpdateProgress(ctx context.Context, id string, value float64) (model.Goal, error) {
	return s.UpdateGoal(ctx, id, model.GoalPatch{CurrentValue: &value})
}

func (s *GoalServiceImpl) DeleteGoal(ctx context.Context, id string) (bool, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return false, err
	}
	_, err = getMine[model.Goal, model.GoalPatch](ctx, u, s.goals, id)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.goals.Delete(ctx, id)
}
