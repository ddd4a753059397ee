package service

import (
	"context"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/model"
	"github.com/and161185/proglo/internal/repository"
)

type ownedRecord[T any] interface {
	*T
	OwnerID() string
}

func listMine[T any, P any](ctx context.Context, auth Authenticator, repo repository.OwnedRepository[T, P]) ([]T, error) {
	u, err := requireUser(ctx, auth)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, u.ID)
}

// getMine loads a record of the current user. Records of other users are reported as missing.
func getMine[T any, P any, R ownedRecord[T]](ctx context.Context, u model.User, repo repository.OwnedRepository[T, P], id string) (T, error) {
	var zero T
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if R(&rec).OwnerID() != u.ID {
		return zero, errs.ErrNotFound
	}
	return rec, nil
}

func updateMine[T any, P any, R ownedRecord[T]](ctx context.Context, auth Authenticator, repo repository.OwnedRepository[T, P], id string, patch P) (T, error) {
	var zero T
	u, err := requireUser(ctx, auth)
	if err != nil {
		return zero, err
	}
	if _, err := getMine[T, P, R](ctx, u, repo, id); err != nil {
		return zero, err
	}
	return repo.Update(ctx, id, patch)
}

func defaultDate(d string) string {
	if d == "" {
		return model.Today()
	}
	return d
}
