package main

import (
	"context"
	"fmt"

	"github.com/and161185/proglo/internal/config"
	"github.com/and161185/proglo/internal/migrate"
	"github.com/and161185/proglo/internal/model"
)

var commands map[string]command

func init() {
	commands = map[string]command{
		"register":  cmdRegister,
		"login":     cmdLogin,
		"logout":    cmdLogout,
		"whoami":    cmdWhoami,
		"profile":   cmdProfile,
		"passwd":    cmdPasswd,
		"activity":  group("activity", map[string]command{"add": activityAdd, "list": activityList, "update": activityUpdate}),
		"bmi":       group("bmi", map[string]command{"add": bmiAdd, "list": bmiList, "update": bmiUpdate}),
		"nutrition": group("nutrition", map[string]command{"add": nutritionAdd, "list": nutritionList, "update": nutritionUpdate}),
		"sleep":     group("sleep", map[string]command{"add": sleepAdd, "list": sleepList, "update": sleepUpdate}),
		"water":     group("water", map[string]command{"add": waterAdd, "list": waterList, "update": waterUpdate}),
		"goal":      group("goal", map[string]command{"add": goalAdd, "list": goalList, "update": goalUpdate, "progress": goalProgress, "rm": goalRemove}),
		"summary":   cmdSummary,
		"users":     group("users", map[string]command{"list": usersList, "add": usersAdd, "update": usersUpdate, "rm": usersRemove}),
		"migrate":   cmdMigrate,
		"rekey":     cmdRekey,
	}
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register", a.errOut)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	p := fs.String("p", "", "password")
	role := fs.String("role", string(model.RoleUser), "role: user or admin")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("name", "email", "p"); err != nil {
		return err
	}
	u, err := a.auth.Register(ctx, *name, *email, *p, model.Role(*role))
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login", a.errOut)
	email := fs.String("email", "", "email")
	p := fs.String("p", "", "password")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("email", "p"); err != nil {
		return err
	}
	u, err := a.auth.Login(ctx, *email, *p)
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return a.printJSON(map[string]bool{"logged_in": false})
}

func cmdWhoami(ctx context.Context, a *app, _ []string) error {
	u, ok, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return a.printJSON(map[string]bool{"logged_in": false})
	}
	return a.printJSON(u)
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile", a.errOut)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	avatar := fs.String("avatar", "", "avatar URL or data URI")
	height := fs.Float64("height", 0, "height, cm")
	weight := fs.Float64("weight", 0, "weight, kg")
	gender := fs.String("gender", "", "gender")
	age := fs.Int("age", 0, "age, years")
	if err := fs.parse(args); err != nil {
		return err
	}
	u, err := a.auth.UpdateProfile(ctx, model.UserPatch{
		Name:   opt(fs, "name", name),
		Email:  opt(fs, "email", email),
		Avatar: opt(fs, "avatar", avatar),
		Height: opt(fs, "height", height),
		Weight: opt(fs, "weight", weight),
		Gender: opt(fs, "gender", gender),
		Age:    opt(fs, "age", age),
	})
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func cmdPasswd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("passwd", a.errOut)
	oldPw := fs.String("old", "", "current password")
	newPw := fs.String("new", "", "new password")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("old", "new"); err != nil {
		return err
	}
	if err := a.auth.ChangePassword(ctx, *oldPw, *newPw); err != nil {
		return err
	}
	return a.printJSON(map[string]bool{"changed": true})
}

func cmdSummary(ctx context.Context, a *app, _ []string) error {
	s, err := a.summary.Summary(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(s)
}

func cmdMigrate(ctx context.Context, a *app, _ []string) error {
	if a.cfg.Backend != config.BackendPostgres {
		return fmt.Errorf("%w: migrate needs -backend postgres", errUsage)
	}
	ver, err := migrate.Up(ctx, a.cfg.DSN)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]int64{"schema_version": ver})
}

func cmdRekey(ctx context.Context, a *app, args []string) error {
	fs := newFlags("rekey", a.errOut)
	newPass := fs.String("new", "", "new seal passphrase")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("new"); err != nil {
		return err
	}
	if a.sealed == nil {
		return fmt.Errorf("%w: rekey needs -seal-passphrase", errUsage)
	}
	if err := a.sealed.Rekey(ctx, *newPass); err != nil {
		return err
	}
	return a.printJSON(map[string]bool{"rekeyed": true})
}
