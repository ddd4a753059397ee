package service

import (
	"context"

	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
	"go.uber.org/zap"
)

// TrackingService records activities, BMI, nutrition, sleep and hydration for the current user.
type TrackingService interface {
	LogActivity(ctx context.Context, a model.Activity) (model.Activity, error)
	Activities(ctx context.Context) ([]model.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch model.ActivityPatch) (model.Activity, error)

	RecordBMI(ctx context.Context, r model.BMIRecord) (model.BMIRecord, error)
	BMIHistory(ctx context.Context) ([]model.BMIRecord, error)
	UpdateBMI(ctx context.Context, id string, patch model.BMIPatch) (model.BMIRecord, error)

	LogMeal(ctx context.Context, e model.NutritionEntry) (model.NutritionEntry, error)
	Meals(ctx context.Context) ([]model.NutritionEntry, error)
	UpdateMeal(ctx context.Context, id string, patch model.NutritionPatch) (model.NutritionEntry, error)

	LogSleep(ctx context.Context, r model.SleepRecord) (model.SleepRecord, error)
	SleepHistory(ctx context.Context) ([]model.SleepRecord, error)
	UpdateSleep(ctx context.Context, id string, patch model.SleepPatch) (model.SleepRecord, error)

	LogWater(ctx context.Context, r model.HydrationRecord) (model.HydrationRecord, error)
	WaterHistory(ctx context.Context) ([]model.HydrationRecord, error)
	UpdateWater(ctx context.Context, id string, patch model.HydrationPatch) (model.HydrationRecord, error)
}

type TrackingServiceImpl struct {
	auth       Authenticator
	activities repository.ActivityRepository
	bmi        repository.BMIRepository
	nutrition  repository.NutritionRepository
	sleep      repository.SleepRepository
	hydration  repository.HydrationRepository
	log        *zap.Logger
}

var _ TrackingService = (*TrackingServiceImpl)(nil)

// TrackingRepos groups the repositories used by TrackingService.
type TrackingRepos struct {
	Activities repository.ActivityRepository
	BMI        repository.BMIRepository
	Nutrition  repository.NutritionRepository
	Sleep      repository.SleepRepository
	Hydration  repository.HydrationRepository
}

// NewTrackingService constructs TrackingService.
func NewTrackingService(auth Authenticator, repos TrackingRepos, log *zap.Logger) *TrackingServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &TrackingServiceImpl{
		auth:       auth,
		activities: repos.Activities,
		bmi:        repos.BMI,
		nutrition:  repos.Nutrition,
		sleep:      repos.Sleep,
		hydration:  repos.Hydration,
		log:        log,
	}
}

func estimateFor(u model.User, a model.Activity) int {
	w := model.DefaultWeightKg
	if u.Weight != nil {
		w = *u.Weight
	}
	return model.EstimateCalories(a.Type, a.Intensity, a.Duration, w)
}

// LogActivity stores an activity of the current user. Calories are estimated when not given.
func (s *TrackingServiceImpl) LogActivity(ctx context.Context, a model.Activity) (model.Activity, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.Activity{}, err
	}
	a.UserID = u.ID
	a.Date = defaultDate(a.Date)
	if a.CaloriesBurned == nil {
		kcal := estimateFor(u, a)
		a.CaloriesBurned = &kcal
	}
	return s.activities.Add(ctx, a)
}

func (s *TrackingServiceImpl) Activities(ctx context.Context) ([]model.Activity, error) {
	return listMine(ctx, s.auth, s.activities)
}

// UpdateActivity re-estimates calories when the workout changes and no explicit value is given.
func (s *TrackingServiceImpl) UpdateActivity(ctx context.Context, id string, patch model.ActivityPatch) (model.Activity, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.Activity{}, err
	}
	cur, err := getMine[model.Activity, model.ActivityPatch](ctx, u, s.activities, id)
	if err != nil {
		return model.Activity{}, err
	}
	if patch.CaloriesBurned == nil && (patch.Type != nil || patch.Duration != nil || patch.Intensity != nil) {
		patch.Apply(&cur)
		kcal := estimateFor(u, cur)
		patch.CaloriesBurned = &kcal
	}
	return s.activities.Update(ctx, id, patch)
}

// RecordBMI stores a BMI measurement; value and category are derived from height and weight.
func (s *TrackingServiceImpl) RecordBMI(ctx context.Context, r model.BMIRecord) (model.BMIRecord, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.BMIRecord{}, err
	}
	r.UserID = u.ID
	r.Date = defaultDate(r.Date)
	return s.bmi.Add(ctx, r)
}

func (s *TrackingServiceImpl) BMIHistory(ctx context.Context) ([]model.BMIRecord, error) {
	return listMine(ctx, s.auth, s.bmi)
}

func (s *TrackingServiceImpl) UpdateBMI(ctx context.Context, id string, patch model.BMIPatch) (model.BMIRecord, error) {
	return updateMine[model.BMIRecord](ctx, s.auth, s.bmi, id, patch)
}

func (s *TrackingServiceImpl) LogMeal(ctx context.Context, e model.NutritionEntry) (model.NutritionEntry, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.NutritionEntry{}, err
	}
	e.UserID = u.ID
	e.Date = defaultDate(e.Date)
	return s.nutrition.Add(ctx, e)
}

func (s *TrackingServiceImpl) Meals(ctx context.Context) ([]model.NutritionEntry, error) {
	return listMine(ctx, s.auth, s.nutrition)
}

func (s *TrackingServiceImpl) UpdateMeal(ctx context.Context, id string, patch model.NutritionPatch) (model.NutritionEntry, error) {
	return updateMine[model.NutritionEntry](ctx, s.auth, s.nutrition, id, patch)
}

func (s *TrackingServiceImpl) LogSleep(ctx context.Context, r model.SleepRecord) (model.SleepRecord, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.SleepRecord{}, err
	}
	r.UserID = u.ID
	r.Date = defaultDate(r.Date)
	return s.sleep.Add(ctx, r)
}

func (s *TrackingServiceImpl) SleepHistory(ctx context.Context) ([]model.SleepRecord, error) {
	return listMine(ctx, s.auth, s.sleep)
}

func (s *TrackingServiceImpl) UpdateSleep(ctx context.Context, id string, patch model.SleepPatch) (model.SleepRecord, error) {
	return updateMine[model.SleepRecord](ctx, s.auth, s.sleep, id, patch)
}

func (s *TrackingServiceImpl) LogWater(ctx context.Context, r model.HydrationRecord) (model.HydrationRecord, error) {
	u, err := requireUser(ctx, s.auth)
	if err != nil {
		return model.HydrationRecord{}, err
	}
	r.UserID = u.ID
	r.Date = defaultDate(r.Date)
	return s.hydration.Add(ctx, r)
}

func (s *TrackingServiceImpl) WaterHistory(ctx context.Context) ([]model.HydrationRecord, error) {
	return listMine(ctx, s.auth, s.hydration)
}

func (s *TrackingServiceImpl) UpdateWater(ctx context.Context, id string, patch model.HydrationPatch) (model.HydrationRecord, error) {
	return updateMine[model.HydrationRecord](ctx, s.auth, s.hydration, id, patch)
}
