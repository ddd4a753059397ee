package local

import (
	"github.com/and161185/proglo/internal/kv"
	"go.uber.org/zap"
)

// Repositories bundles every repository backed by one store.
type Repositories struct {
	Users      *UserRepo
	Sessions   *SessionRepo
	Activities *ActivityRepo
	BMI        *BMIRepo
	Nutrition  *NutritionRepo
	Sleep      *SleepRepo
	Hydration  *HydrationRepo
	Goals      *GoalRepo
}

// Open constructs all repositories on top of store.
func Open(store kv.Store, log *zap.Logger) *Repositories {
	return &Repositories{
		Users:      NewUserRepo(store, log),
		Sessions:   NewSessionRepo(store, log),
		Activities: NewActivityRepo(store, log),
		BMI:        NewBMIRepo(store, log),
		Nutrition:  NewNutritionRepo(store, log),
		Sleep:      NewSleepRepo(store, log),
		Hydration:  NewHydrationRepo(store, log),
		Goals:      NewGoalRepo(store, log),
	}
}
