package commands_test

import (
	"testing"
	"time"

	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/notification"
	"donation/internal/core/domain/model/user"
	"donation/internal/core/domain/services"
	"donation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var postedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type cast struct {
	donor, taker, courier *user.User
}

func newCast(t *testing.T) cast {
	t.Helper()
	mk := func(email string, kind actor.Kind) *user.User {
		u, err := user.NewUser(kernel.NewUUID(), email, kind, "hash")
		require.NoError(t, err)
		return u
	}
	return cast{
		donor:   mk("donor@example.org", actor.Member),
		taker:   mk("taker@example.org", actor.Member),
		courier: mk("courier@example.org", actor.Volunteer),
	}
}

func actorOf(t *testing.T, u *user.User) actor.Actor {
	t.Helper()
	a, err := u.Actor()
	require.NoError(t, err)
	return a
}

func storedItem(t *testing.T, c cast, status item.Status, requested []kernel.UUID, assigned *kernel.UUID) *item.Item {
	t.Helper()
	it, err := item.RestoreItem(kernel.NewUUID(), "Bookshelf", "oak", c.donor.ID(), requested, assigned, status, postedAt, 5)
	require.NoError(t, err)
	return it
}

func engine() services.LifecycleEngine {
	return services.NewLifecycleEngine(item.DefaultEmbargo)
}

func retrier() commands.ConflictRetrier {
	return commands.NewConflictRetrier(2, nil)
}

func conflict(it *item.Item) error {
	return errs.NewConflictError("item", it.ID().String(), it.Version())
}

func TestRequestItemCommandHandler_Handle(t *testing.T) {
	c := newCast(t)

	t.Run("should add requester and commit", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.IsRequestedBy(c.taker.ID()) && u.Version() == it.Version()
		})).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewRequestItemCommand(it.ID(), actorOf(t, c.taker))
		require.NoError(t, err)

		got, err := commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Len(t, got.RequestedBy(), 1)
		assert.Empty(t, it.RequestedBy(), "loaded item must stay untouched")
		f.assertExpectations(t)
	})

	t.Run("should not write repeated request", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, []kernel.UUID{c.taker.ID()}, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()

		cmd, err := commands.NewRequestItemCommand(it.ID(), actorOf(t, c.taker))
		require.NoError(t, err)

		got, err := commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Len(t, got.RequestedBy(), 1)
		f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should forbid own item without retrying", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()

		cmd, err := commands.NewRequestItemCommand(it.ID(), actorOf(t, c.donor))
		require.NoError(t, err)

		_, err = commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		f.factory.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("should report missing item", func(t *testing.T) {
		f := newFixture()
		id := kernel.NewUUID()
		f.items.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("item", id.String())).Once()

		cmd, err := commands.NewRequestItemCommand(id, actorOf(t, c.taker))
		require.NoError(t, err)

		_, err = commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should retry on conflict with fresh state", func(t *testing.T) {
		f := newFixture()
		stale := storedItem(t, c, item.Posted, nil, nil)
		other := kernel.NewUUID()
		fresh, err := item.RestoreItem(stale.ID(), "Bookshelf", "oak", c.donor.ID(),
			[]kernel.UUID{other}, nil, item.Posted, postedAt, stale.Version()+1)
		require.NoError(t, err)

		f.items.On("Get", mock.Anything, stale.ID()).Return(stale, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.Version() == stale.Version()
		})).Return(conflict(stale)).Once()
		f.items.On("Get", mock.Anything, stale.ID()).Return(fresh, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.Version() == fresh.Version() && len(u.RequestedBy()) == 2
		})).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewRequestItemCommand(stale.ID(), actorOf(t, c.taker))
		require.NoError(t, err)

		got, err := commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, got.RequestedBy()[0].IsEqual(other))
		assert.True(t, got.RequestedBy()[1].IsEqual(c.taker.ID()))
		f.factory.AssertNumberOfCalls(t, "Create", 2)
		f.assertExpectations(t)
	})

	t.Run("should give up after configured retries", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Times(3)
		f.items.On("Update", mock.Anything, mock.Anything).Return(conflict(it)).Times(3)

		cmd, err := commands.NewRequestItemCommand(it.ID(), actorOf(t, c.taker))
		require.NoError(t, err)

		_, err = commands.NewRequestItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		var conflictErr *errs.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.True(t, errs.IsRetryable(err))
		f.factory.AssertNumberOfCalls(t, "Create", 3)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestAssignItemCommandHandler_Handle(t *testing.T) {
	c := newCast(t)
	now := postedAt.Add(2 * time.Hour)

	t.Run("should assign and store notification together", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, []kernel.UUID{c.taker.ID()}, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(c.donor, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.IsAssigned() && u.AssignedTo().IsEqual(c.taker.ID())
		})).Return(nil).Once()
		f.notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID().IsEqual(c.taker.ID()) &&
				n.ItemID().IsEqual(it.ID()) &&
				n.CreatedAt().Equal(now) &&
				n.Message() == `You’ve been assigned "Bookshelf" by donor@example.org. Please pick it up!`
		})).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewAssignItemCommand(it.ID(), actorOf(t, c.donor), c.taker.ID())
		require.NoError(t, err)

		got, err := commands.NewAssignItemCommandHandler(f.factory, engine(), kernel.FixedClock(now), retrier()).
			Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, got.AssignedTo().IsEqual(c.taker.ID()))
		f.assertExpectations(t)
	})

	t.Run("should reject taker who did not request", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(c.donor, nil).Once()

		cmd, err := commands.NewAssignItemCommand(it.ID(), actorOf(t, c.donor), c.taker.ID())
		require.NoError(t, err)

		_, err = commands.NewAssignItemCommandHandler(f.factory, engine(), kernel.FixedClock(now), retrier()).
			Handle(t.Context(), cmd)

		var invalid *errs.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, item.ReasonNotRequested, invalid.Reason)
		f.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should end in invalid transition after losing the race", func(t *testing.T) {
		f := newFixture()
		rival := kernel.NewUUID()
		stale := storedItem(t, c, item.Posted, []kernel.UUID{c.taker.ID(), rival}, nil)
		fresh, err := item.RestoreItem(stale.ID(), "Bookshelf", "oak", c.donor.ID(),
			[]kernel.UUID{c.taker.ID(), rival}, &rival, item.Posted, postedAt, stale.Version()+1)
		require.NoError(t, err)

		f.items.On("Get", mock.Anything, stale.ID()).Return(stale, nil).Once()
		f.items.On("Get", mock.Anything, stale.ID()).Return(fresh, nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(c.donor, nil).Twice()
		f.items.On("Update", mock.Anything, mock.Anything).Return(conflict(stale)).Once()

		cmd, err := commands.NewAssignItemCommand(stale.ID(), actorOf(t, c.donor), c.taker.ID())
		require.NoError(t, err)

		_, err = commands.NewAssignItemCommandHandler(f.factory, engine(), kernel.FixedClock(now), retrier()).
			Handle(t.Context(), cmd)

		var invalid *errs.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, item.ReasonAlreadyAssigned, invalid.Reason)
		f.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestPickupItemCommandHandler_Handle(t *testing.T) {
	c := newCast(t)

	t.Run("should reject pickup during embargo", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()

		cmd, err := commands.NewPickupItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		clock := kernel.FixedClock(postedAt.Add(48 * time.Hour))
		_, err = commands.NewPickupItemCommandHandler(f.factory, engine(), clock, retrier()).Handle(t.Context(), cmd)

		var invalid *errs.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, item.ReasonEmbargoActive, invalid.Reason)
	})

	t.Run("should pick up at embargo boundary", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.Status() == item.Picked
		})).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewPickupItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		clock := kernel.FixedClock(postedAt.Add(72 * time.Hour))
		got, err := commands.NewPickupItemCommandHandler(f.factory, engine(), clock, retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, item.Picked, got.Status())
		f.assertExpectations(t)
	})

	t.Run("should forbid member", func(t *testing.T) {
		f := newFixture()
		it := storedItem(t, c, item.Posted, nil, nil)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()

		cmd, err := commands.NewPickupItemCommand(it.ID(), actorOf(t, c.taker))
		require.NoError(t, err)

		clock := kernel.FixedClock(postedAt.Add(96 * time.Hour))
		_, err = commands.NewPickupItemCommandHandler(f.factory, engine(), clock, retrier()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestDeliverItemCommandHandler_Handle(t *testing.T) {
	t.Run("should deliver and count both users once", func(t *testing.T) {
		c := newCast(t)
		f := newFixture()
		takerID := c.taker.ID()
		it := storedItem(t, c, item.Picked, []kernel.UUID{takerID}, &takerID)

		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(c.donor, nil).Once()
		f.users.On("Get", mock.Anything, takerID).Return(c.taker, nil).Once()
		f.items.On("Update", mock.Anything, mock.MatchedBy(func(u *item.Item) bool {
			return u.Status() == item.Delivered
		})).Return(nil).Once()
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.ID().IsEqual(c.donor.ID()) && u.ItemsGiven() == 1 && u.ItemsTaken() == 0
		})).Return(nil).Once()
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.ID().IsEqual(takerID) && u.ItemsTaken() == 1 && u.ItemsGiven() == 0
		})).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewDeliverItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		got, err := commands.NewDeliverItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, item.Delivered, got.Status())
		f.assertExpectations(t)
	})

	t.Run("should write user rows in ascending id order", func(t *testing.T) {
		c := newCast(t)
		f := newFixture()
		takerID := c.taker.ID()
		it := storedItem(t, c, item.Picked, []kernel.UUID{takerID}, &takerID)

		var written []kernel.UUID
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(c.donor, nil).Once()
		f.users.On("Get", mock.Anything, takerID).Return(c.taker, nil).Once()
		f.items.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.users.On("Update", mock.Anything, mock.Anything).Return(nil).Twice().Run(func(args mock.Arguments) {
			written = append(written, args.Get(1).(*user.User).ID())
		})
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewDeliverItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		_, err = commands.NewDeliverItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, written, 2)
		assert.Equal(t, -1, written[0].Compare(written[1]))
	})

	t.Run("should reject second delivery without touching counters", func(t *testing.T) {
		c := newCast(t)
		f := newFixture()
		takerID := c.taker.ID()
		it := storedItem(t, c, item.Delivered, []kernel.UUID{takerID}, &takerID)
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Once()

		cmd, err := commands.NewDeliverItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		_, err = commands.NewDeliverItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		f.users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Zero(t, c.donor.ItemsGiven())
	})

	t.Run("should re-read counters when a user row conflicts", func(t *testing.T) {
		c := newCast(t)
		f := newFixture()
		takerID := c.taker.ID()
		it := storedItem(t, c, item.Picked, []kernel.UUID{takerID}, &takerID)

		// Each attempt must start from the stored counters, not from the
		// counters incremented by the failed attempt.
		freshDonor := func() *user.User {
			u, err := user.RestoreUser(c.donor.ID(), c.donor.Email(), c.donor.Kind(), c.donor.PasswordHash(), 4, 0, 9)
			require.NoError(t, err)
			return u
		}
		f.items.On("Get", mock.Anything, it.ID()).Return(it, nil).Twice()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(freshDonor(), nil).Once()
		f.users.On("Get", mock.Anything, c.donor.ID()).Return(freshDonor(), nil).Once()
		f.users.On("Get", mock.Anything, takerID).Return(c.taker, nil).Once()
		f.users.On("Get", mock.Anything, takerID).Return(c.taker, nil).Once()
		f.items.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.ID().IsEqual(c.donor.ID())
		})).Return(errs.NewConflictError("user", c.donor.ID().String(), 9)).Once()
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.ID().IsEqual(c.donor.ID()) && u.ItemsGiven() == 5
		})).Return(nil).Once()
		// The taker row is written once or twice depending on which id sorts first.
		f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.ID().IsEqual(takerID)
		})).Return(nil).Twice()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewDeliverItemCommand(it.ID(), actorOf(t, c.courier))
		require.NoError(t, err)

		_, err = commands.NewDeliverItemCommandHandler(f.factory, engine(), retrier()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		f.factory.AssertNumberOfCalls(t, "Create", 2)
	})
}
