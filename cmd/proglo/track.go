package main

import (
	"context"

	"github.com/and161185/proglo/internal/model"
)

type activityFlags struct {
	typ, intensity, date, photo, address *string
	duration, calories                   *int
	lat, lng                             *float64
}

func bindActivity(fs *cmdFlags) activityFlags {
	return activityFlags{
		typ:       fs.String("type", "", "walking, running, cycling, swimming, strength, yoga or other"),
		duration:  fs.Int("duration", 0, "minutes"),
		intensity: fs.String("intensity", model.IntensityMedium, "low, medium or high"),
		date:      fs.String("date", "", "YYYY-MM-DD, default today"),
		calories:  fs.Int("calories", 0, "kcal burned, estimated when omitted"),
		lat:       fs.Float64("lat", 0, "latitude"),
		lng:       fs.Float64("lng", 0, "longitude"),
		address:   fs.String("address", "", "place name"),
		photo:     fs.String("photo", "", "photo URL or data URI"),
	}
}

func (f activityFlags) location(fs *cmdFlags) *model.Location {
	if !fs.given("lat") && !fs.given("lng") && !fs.given("address") {
		return nil
	}
	return &model.Location{Lat: *f.lat, Lng: *f.lng, Address: *f.address}
}

func activityAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("activity add", a.errOut)
	f := bindActivity(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("type", "duration"); err != nil {
		return err
	}
	rec, err := a.tracking.LogActivity(ctx, model.Activity{
		Type:           *f.typ,
		Duration:       *f.duration,
		Intensity:      *f.intensity,
		Date:           *f.date,
		CaloriesBurned: opt(fs, "calories", f.calories),
		Location:       f.location(fs),
		Photo:          opt(fs, "photo", f.photo),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func activityList(ctx context.Context, a *app, _ []string) error {
	list, err := a.tracking.Activities(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func activityUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("activity update", a.errOut)
	id := fs.String("id", "", "activity id")
	f := bindActivity(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	rec, err := a.tracking.UpdateActivity(ctx, *id, model.ActivityPatch{
		Type:           opt(fs, "type", f.typ),
		Duration:       opt(fs, "duration", f.duration),
		Intensity:      opt(fs, "intensity", f.intensity),
		Date:           opt(fs, "date", f.date),
		CaloriesBurned: opt(fs, "calories", f.calories),
		Location:       f.location(fs),
		Photo:          opt(fs, "photo", f.photo),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func bmiAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("bmi add", a.errOut)
	height := fs.Float64("height", 0, "height, cm")
	weight := fs.Float64("weight", 0, "weight, kg")
	date := fs.String("date", "", "YYYY-MM-DD, default today")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("height", "weight"); err != nil {
		return err
	}
	rec, err := a.tracking.RecordBMI(ctx, model.BMIRecord{Height: *height, Weight: *weight, Date: *date})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func bmiList(ctx context.Context, a *app, _ []string) error {
	list, err := a.tracking.BMIHistory(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func bmiUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("bmi update", a.errOut)
	id := fs.String("id", "", "record id")
	height := fs.Float64("height", 0, "height, cm")
	weight := fs.Float64("weight", 0, "weight, kg")
	date := fs.String("date", "", "YYYY-MM-DD")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	rec, err := a.tracking.UpdateBMI(ctx, *id, model.BMIPatch{
		Height: opt(fs, "height", height),
		Weight: opt(fs, "weight", weight),
		Date:   opt(fs, "date", date),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

type mealFlags struct {
	food, category, portion, meal, date, photo *string
	calories, proteins, carbs, fats            *float64
}

func bindMeal(fs *cmdFlags) mealFlags {
	return mealFlags{
		food:     fs.String("food", "", "food name"),
		category: fs.String("category", "", "fruits, vegetables, grains, proteins, dairy, beverages or snacks"),
		portion:  fs.String("portion", "medium", "small, medium or large"),
		meal:     fs.String("meal", "", "breakfast, lunch, dinner or snack"),
		date:     fs.String("date", "", "YYYY-MM-DD, default today"),
		photo:    fs.String("photo", "", "photo URL or data URI"),
		calories: fs.Float64("calories", 0, "kcal"),
		proteins: fs.Float64("proteins", 0, "g"),
		carbs:    fs.Float64("carbs", 0, "g"),
		fats:     fs.Float64("fats", 0, "g"),
	}
}

func (f mealFlags) macros(fs *cmdFlags) *model.Macros {
	if !fs.given("calories") && !fs.given("proteins") && !fs.given("carbs") && !fs.given("fats") {
		return nil
	}
	return &model.Macros{Calories: *f.calories, Proteins: *f.proteins, Carbs: *f.carbs, Fats: *f.fats}
}

func nutritionAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("nutrition add", a.errOut)
	f := bindMeal(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("food", "category", "meal"); err != nil {
		return err
	}
	rec, err := a.tracking.LogMeal(ctx, model.NutritionEntry{
		FoodName: *f.food,
		Category: *f.category,
		Portion:  *f.portion,
		MealTime: *f.meal,
		Date:     *f.date,
		Macros:   f.macros(fs),
		Photo:    opt(fs, "photo", f.photo),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func nutritionList(ctx context.Context, a *app, _ []string) error {
	list, err := a.tracking.Meals(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func nutritionUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("nutrition update", a.errOut)
	id := fs.String("id", "", "entry id")
	f := bindMeal(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	rec, err := a.tracking.UpdateMeal(ctx, *id, model.NutritionPatch{
		FoodName: opt(fs, "food", f.food),
		Category: opt(fs, "category", f.category),
		Portion:  opt(fs, "portion", f.portion),
		MealTime: opt(fs, "meal", f.meal),
		Date:     opt(fs, "date", f.date),
		Macros:   f.macros(fs),
		Photo:    opt(fs, "photo", f.photo),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func sleepAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("sleep add", a.errOut)
	hours := fs.Float64("hours", 0, "hours slept, 0-24")
	date := fs.String("date", "", "YYYY-MM-DD, default today")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("hours"); err != nil {
		return err
	}
	rec, err := a.tracking.LogSleep(ctx, model.SleepRecord{HoursSlept: *hours, Date: *date})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func sleepList(ctx context.Context, a *app, _ []string) error {
	list, err := a.tracking.SleepHistory(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func sleepUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("sleep update", a.errOut)
	id := fs.String("id", "", "record id")
	hours := fs.Float64("hours", 0, "hours slept, 0-24")
	date := fs.String("date", "", "YYYY-MM-DD")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	rec, err := a.tracking.UpdateSleep(ctx, *id, model.SleepPatch{
		HoursSlept: opt(fs, "hours", hours),
		Date:       opt(fs, "date", date),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func waterAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("water add", a.errOut)
	ml := fs.Int("ml", 0, "amount, ml")
	date := fs.String("date", "", "YYYY-MM-DD, default today")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("ml"); err != nil {
		return err
	}
	rec, err := a.tracking.LogWater(ctx, model.HydrationRecord{Amount: *ml, Date: *date})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func waterList(ctx context.Context, a *app, _ []string) error {
	list, err := a.tracking.WaterHistory(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func waterUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("water update", a.errOut)
	id := fs.String("id", "", "record id")
	ml := fs.Int("ml", 0, "amount, ml")
	date := fs.String("date", "", "YYYY-MM-DD")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	rec, err := a.tracking.UpdateWater(ctx, *id, model.HydrationPatch{
		Amount: opt(fs, "ml", ml),
		Date:   opt(fs, "date", date),
	})
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}
