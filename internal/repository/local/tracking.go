package local

import (
	"context"

	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"go.uber.org/zap"
)

var (
	_ repository.ActivityRepository  = (*ActivityRepo)(nil)
	_ repository.BMIRepository       = (*BMIRepo)(nil)
	_ repository.NutritionRepository = (*NutritionRepo)(nil)
	_ repository.SleepRepository     = (*SleepRepo)(nil)
	_ repository.HydrationRepository = (*HydrationRepo)(nil)
	_ repository.GoalRepository      = (*GoalRepo)(nil)
)

// ActivityRepo stores activities under kv.KeyActivities.
type ActivityRepo struct {
	*owned[model.Activity, model.ActivityPatch, *model.Activity]
}

// NewActivityRepo constructs an activity repository.
func NewActivityRepo(store kv.Store, log *zap.Logger) *ActivityRepo {
	return &ActivityRepo{newOwned[model.Activity, model.ActivityPatch](store, kv.KeyActivities, log,
		func(a *model.Activity) error { return a.Validate() })}
}

// BMIRepo stores BMI records under kv.KeyBMIRecords. BMI value and category are derived on write.
type BMIRepo struct {
	*owned[model.BMIRecord, model.BMIPatch, *model.BMIRecord]
}

// NewBMIRepo constructs a BMI repository.
func NewBMIRepo(store kv.Store, log *zap.Logger) *BMIRepo {
	return &BMIRepo{newOwned[model.BMIRecord, model.BMIPatch](store, kv.KeyBMIRecords, log,
		func(r *model.BMIRecord) error {
			if err := r.Validate(); err != nil {
				return err
			}
			return r.Derive()
		})}
}

// NutritionRepo stores nutrition entries under kv.KeyNutrition.
type NutritionRepo struct {
	*owned[model.NutritionEntry, model.NutritionPatch, *model.NutritionEntry]
}

// NewNutritionRepo constructs a nutrition repository.
func NewNutritionRepo(store kv.Store, log *zap.Logger) *NutritionRepo {
	return &NutritionRepo{newOwned[model.NutritionEntry, model.NutritionPatch](store, kv.KeyNutrition, log,
		func(e *model.NutritionEntry) error { return e.Validate() })}
}

// SleepRepo stores sleep records under kv.KeySleep. Quality is derived on write.
type SleepRepo struct {
	*owned[model.SleepRecord, model.SleepPatch, *model.SleepRecord]
}

// NewSleepRepo constructs a sleep repository.
func NewSleepRepo(store kv.Store, log *zap.Logger) *SleepRepo {
	return &SleepRepo{newOwned[model.SleepRecord, model.SleepPatch](store, kv.KeySleep, log,
		func(r *model.SleepRecord) error {
			if err := r.Validate(); err != nil {
				return err
			}
			r.Derive()
			return nil
		})}
}

// HydrationRepo stores hydration records under kv.KeyHydration.
type HydrationRepo struct {
	*owned[model.HydrationRecord, model.HydrationPatch, *model.HydrationRecord]
}

// NewHydrationRepo constructs a hydration repository.
func NewHydrationRepo(store kv.Store, log *zap.Logger) *HydrationRepo {
	return &HydrationRepo{newOwned[model.HydrationRecord, model.HydrationPatch](store, kv.KeyHydration, log,
		func(r *model.HydrationRecord) error { return r.Validate() })}
}

// GoalRepo stores goals under kv.KeyGoals. Completion is derived on write.
type GoalRepo struct {
	*owned[model.Goal, model.GoalPatch, *model.Goal]
}

// NewGoalRepo constructs a goal repository.
func NewGoalRepo(store kv.Store, log *zap.Logger) *GoalRepo {
	return &GoalRepo{newOwned[model.Goal, model.GoalPatch](store, kv.KeyGoals, log,
		func(g *model.Goal) error {
			if err := g.Validate(); err != nil {
				return err
			}
			g.Derive()
			return nil
		})}
}

// Delete removes a goal; reports false if it was already gone.
func (r *GoalRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.remove(ctx, id)
}
