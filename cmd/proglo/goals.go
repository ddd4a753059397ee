package main

import (
	"context"

	"github.com/and161185/proglo/internal/model"
)

// goalView adds the computed progress to the stored goal.
type goalView struct {
	model.Goal
	Progress int `json:"progress"`
}

func viewGoal(g model.Goal) goalView { return goalView{Goal: g, Progress: g.Progress()} }

type goalFlags struct {
	title, desc, category, unit, deadline *string
	start, current, target                *float64
}

func bindGoal(fs *cmdFlags) goalFlags {
	return goalFlags{
		title:    fs.String("title", "", "goal title"),
		desc:     fs.String("desc", "", "description"),
		category: fs.String("category", "", "fitness, nutrition, sleep, weight or other"),
		unit:     fs.String("unit", "", "unit of the values, e.g. kg"),
		deadline: fs.String("deadline", "", "YYYY-MM-DD"),
		start:    fs.Float64("start", 0, "start value"),
		current:  fs.Float64("current", 0, "current value, defaults to start"),
		target:   fs.Float64("target", 0, "target value"),
	}
}

func goalAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("goal add", a.errOut)
	f := bindGoal(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("title", "category", "target", "unit"); err != nil {
		return err
	}
	current := *f.start
	if fs.given("current") {
		current = *f.current
	}
	g, err := a.goals.CreateGoal(ctx, model.Goal{
		Title:        *f.title,
		Description:  *f.desc,
		Category:     *f.category,
		StartValue:   *f.start,
		CurrentValue: current,
		TargetValue:  *f.target,
		Unit:         *f.unit,
		Deadline:     opt(fs, "deadline", f.deadline),
	})
	if err != nil {
		return err
	}
	return a.printJSON(viewGoal(g))
}

func goalList(ctx context.Context, a *app, _ []string) error {
	goals, err := a.goals.Goals(ctx)
	if err != nil {
		return err
	}
	out := make([]goalView, len(goals))
	for i, g := range goals {
		out[i] = viewGoal(g)
	}
	return a.printJSON(out)
}

func goalUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("goal update", a.errOut)
	id := fs.String("id", "", "goal id")
	f := bindGoal(fs)
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	g, err := a.goals.UpdateGoal(ctx, *id, model.GoalPatch{
		Title:        opt(fs, "title", f.title),
		Description:  opt(fs, "desc", f.desc),
		Category:     opt(fs, "category", f.category),
		StartValue:   opt(fs, "start", f.start),
		CurrentValue: opt(fs, "current", f.current),
		TargetValue:  opt(fs, "target", f.target),
		Unit:         opt(fs, "unit", f.unit),
		Deadline:     opt(fs, "deadline", f.deadline),
	})
	if err != nil {
		return err
	}
	return a.printJSON(viewGoal(g))
}

func goalProgress(ctx context.Context, a *app, args []string) error {
	fs := newFlags("goal progress", a.errOut)
	id := fs.String("id", "", "goal id")
	value := fs.Float64("value", 0, "current value")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id", "value"); err != nil {
		return err
	}
	g, err := a.goals.UpdateProgress(ctx, *id, *value)
	if err != nil {
		return err
	}
	return a.printJSON(viewGoal(g))
}

func goalRemove(ctx context.Context, a *app, args []string) error {
	fs := newFlags("goal rm", a.errOut)
	id := fs.String("id", "", "goal id")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	removed, err := a.goals.DeleteGoal(ctx, *id)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]bool{"removed": removed})
}
