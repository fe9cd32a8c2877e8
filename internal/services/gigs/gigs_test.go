package gigs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/db/dbtest"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
)

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))
	svc := NewService(repo)

	owner := &models.User{Name: "owner", Email: "owner@gigflow.test", Password: "h"}
	require.NoError(t, repo.CreateUser(ctx, owner))

	invalid := []struct {
		name, title, desc string
		budget            float64
	}{
		{"no_title", " ", "d", 10},
		{"no_description", "t", "", 10},
		{"zero_budget", "t", "d", 0},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner.ID, tc.title, tc.desc, tc.budget)
			require.ErrorIs(t, err, apperrors.ErrInvalid)
		})
	}

	gig, err := svc.Create(ctx, owner.ID, " Mobile app ", "flutter", 1200)
	require.NoError(t, err)
	require.Equal(t, models.GigStatusOpen, gig.Status)
	require.Equal(t, "Mobile app", gig.Title)

	open, err := svc.ListOpen(ctx, "MOBILE")
	require.NoError(t, err)
	require.Len(t, open, 1)

	got, err := svc.Get(ctx, gig.ID)
	require.NoError(t, err)
	require.Equal(t, owner.ID, got.Owner.ID)

	_, err = svc.Get(ctx, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrGigNotFound)

	mine, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}
