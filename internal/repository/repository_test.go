package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/db/dbtest"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
)

func newUser(t *testing.T, r *Repository, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@gigflow.test", Password: "hash"}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func newGig(t *testing.T, r *Repository, owner uuid.UUID, title string, at time.Time) *models.Gig {
	t.Helper()
	g := &models.Gig{Title: title, Description: "desc", Budget: 100, OwnerID: owner, CreatedAt: at}
	require.NoError(t, r.CreateGig(context.Background(), g))
	return g
}

func newBid(t *testing.T, r *Repository, gig, freelancer uuid.UUID) *models.Bid {
	t.Helper()
	b := &models.Bid{GigID: gig, FreelancerID: freelancer, Message: "pick me", Price: 80}
	require.NoError(t, r.CreateBid(context.Background(), b))
	return b
}

func TestUsers(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()

	u := newUser(t, r, "alice")

	got, err := r.FindUserByEmail(ctx, "alice@gigflow.test")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = r.FindUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	dup := &models.User{Name: "alice2", Email: "alice@gigflow.test", Password: "x"}
	require.ErrorIs(t, r.CreateUser(ctx, dup), apperrors.ErrEmailTaken)
}

func TestListOpenGigs(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()
	owner := newUser(t, r, "owner")
	base := time.Now().Add(-time.Hour)

	oldest := newGig(t, r, owner.ID, "Logo design", base)
	newest := newGig(t, r, owner.ID, "LOGO animation", base.Add(2*time.Minute))
	backend := newGig(t, r, owner.ID, "Backend API", base.Add(time.Minute))
	assigned := newGig(t, r, owner.ID, "logo for assigned", base.Add(3*time.Minute))
	require.NoError(t, r.AssignGig(ctx, assigned.ID))
	pct := newGig(t, r, owner.ID, "100%_done", base.Add(4*time.Minute))
	ecole := newGig(t, r, owner.ID, "ÉCOLE website", base.Add(5*time.Minute))

	tests := []struct {
		name   string
		search string
		want   []uuid.UUID
	}{
		{"all_open_newest_first", "", []uuid.UUID{ecole.ID, pct.ID, newest.ID, backend.ID, oldest.ID}},
		{"blank_is_all", "   ", []uuid.UUID{ecole.ID, pct.ID, newest.ID, backend.ID, oldest.ID}},
		{"case_insensitive_substring", "logo", []uuid.UUID{newest.ID, oldest.ID}},
		{"unicode_case_fold", "école", []uuid.UUID{ecole.ID}},
		{"no_match", "kotlin", nil},
		{"wildcards_are_literal", "%_", []uuid.UUID{pct.ID}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gigs, err := r.ListOpenGigs(ctx, tc.search)
			require.NoError(t, err)

			var ids []uuid.UUID
			for _, g := range gigs {
				ids = append(ids, g.ID)
			}
			require.Equal(t, tc.want, ids)
		})
	}
}

func TestAssignGig_CompareAndSet(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()
	owner := newUser(t, r, "owner")
	g := newGig(t, r, owner.ID, "gig", time.Now())

	require.NoError(t, r.AssignGig(ctx, g.ID))
	require.ErrorIs(t, r.AssignGig(ctx, g.ID), apperrors.ErrGigAssigned)

	got, err := r.FindGig(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, models.GigStatusAssigned, got.Status)
	require.Equal(t, owner.ID, got.Owner.ID)
}

func TestBidTransitions(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()
	owner := newUser(t, r, "owner")
	f1 := newUser(t, r, "f1")
	f2 := newUser(t, r, "f2")
	f3 := newUser(t, r, "f3")
	g := newGig(t, r, owner.ID, "gig", time.Now())

	b1 := newBid(t, r, g.ID, f1.ID)
	b2 := newBid(t, r, g.ID, f2.ID)
	b3 := newBid(t, r, g.ID, f3.ID)
	require.Equal(t, models.BidStatusPending, b1.Status)

	require.NoError(t, r.MarkBidHired(ctx, b1.ID))
	require.ErrorIs(t, r.MarkBidHired(ctx, b1.ID), apperrors.ErrAlreadyHired)

	n, err := r.CountHiredBids(ctx, g.ID, b2.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	rejected, err := r.RejectPendingBids(ctx, g.ID, b1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, rejected)

	// Rejected bids are terminal.
	require.ErrorIs(t, r.MarkBidHired(ctx, b3.ID), apperrors.ErrAlreadyHired)

	bids, err := r.ListBidsByGig(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for _, b := range bids {
		require.NotNil(t, b.Freelancer)
		require.NotNil(t, b.Gig)
		require.Equal(t, owner.ID, b.Gig.Owner.ID)
		if b.ID == b1.ID {
			require.Equal(t, models.BidStatusHired, b.Status)
		} else {
			require.Equal(t, models.BidStatusRejected, b.Status)
		}
	}

	mine, err := r.ListBidsByFreelancer(ctx, f2.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, g.ID, mine[0].Gig.ID)
}

func TestWithTx_RollsBack(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()
	owner := newUser(t, r, "owner")
	g := newGig(t, r, owner.ID, "gig", time.Now())

	err := r.WithTx(ctx, func(tx *Repository) error {
		require.NoError(t, tx.AssignGig(ctx, g.ID))
		return apperrors.ErrAlreadyHired
	})
	require.ErrorIs(t, err, apperrors.ErrAlreadyHired)

	got, err := r.FindGig(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, models.GigStatusOpen, got.Status)

	err = r.WithTx(ctx, func(tx *Repository) error { return errors.New("driver: bad connection") })
	require.ErrorIs(t, err, apperrors.ErrTransient)
}

func TestNotifications(t *testing.T) {
	r := New(dbtest.Open(t))
	ctx := context.Background()
	u := newUser(t, r, "u")

	for i := 0; i < 3; i++ {
		require.NoError(t, r.CreateNotification(ctx, &models.Notification{
			UserID:    u.ID,
			Kind:      models.NotificationHired,
			Severity:  models.SeveritySuccess,
			Message:   "hired",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := r.ListNotifications(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	unread, err := r.CountUnreadNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, unread)

	marked, err := r.MarkAllNotificationsRead(ctx, u.ID, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 3, marked)

	unread, err = r.CountUnreadNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}
