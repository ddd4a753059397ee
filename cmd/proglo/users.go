package main

import (
	"context"

	"github.com/and161185/proglo/internal/model"
)

func usersList(ctx context.Context, a *app, _ []string) error {
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(users)
}

func usersAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("users add", a.errOut)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	p := fs.String("p", "", "initial password")
	role := fs.String("role", string(model.RoleUser), "role: user or admin")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("name", "email", "p"); err != nil {
		return err
	}
	u, err := a.admin.CreateUser(ctx, *name, *email, *p, model.Role(*role))
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func usersUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("users update", a.errOut)
	id := fs.String("id", "", "user id")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	role := fs.String("role", "", "role: user or admin")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	var r *model.Role
	if fs.given("role") {
		v := model.Role(*role)
		r = &v
	}
	u, err := a.admin.UpdateUser(ctx, *id, model.UserPatch{
		Name:  opt(fs, "name", name),
		Email: opt(fs, "email", email),
		Role:  r,
	})
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func usersRemove(ctx context.Context, a *app, args []string) error {
	fs := newFlags("users rm", a.errOut)
	id := fs.String("id", "", "user id")
	if err := fs.parse(args); err != nil {
		return err
	}
	if err := fs.require("id"); err != nil {
		return err
	}
	removed, err := a.admin.DeleteUser(ctx, *id)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]bool{"removed": removed})
}
