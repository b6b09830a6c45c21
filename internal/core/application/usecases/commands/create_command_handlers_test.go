package commands_test

import (
	"errors"
	"testing"
	"time"

	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/user"
	"donation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUserCommandHandler_Handle(t *testing.T) {
	t.Run("should register user with zero counters", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		userFactory := new(MockUserUoWFactory)
		userFactory.On("Create").Return(f.uow).Once()

		f.users.On("GetByEmail", mock.Anything, "dana@example.org").
			Return(nil, errs.NewObjectNotFoundError("email", "dana@example.org")).Once()
		f.users.On("Add", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "s3cret-pass").Return("hashed", nil).Once()

		cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "Dana@Example.org", "s3cret-pass", true)
		require.NoError(t, err)

		u, err := commands.NewCreateUserCommandHandler(userFactory, hasher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "dana@example.org", u.Email())
		assert.Equal(t, "hashed", u.PasswordHash())
		assert.True(t, u.IsVolunteer())
		assert.Zero(t, u.ItemsGiven())
		hasher.AssertExpectations(t)
		userFactory.AssertExpectations(t)
		f.users.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("should report taken email as conflict", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		userFactory := new(MockUserUoWFactory)
		userFactory.On("Create").Return(f.uow).Once()

		existing, err := user.NewUser(kernel.NewUUID(), "dana@example.org", actor.Member, "hash")
		require.NoError(t, err)
		f.users.On("GetByEmail", mock.Anything, "dana@example.org").Return(existing, nil).Once()

		hasher := new(MockPasswordHasher)
		hasher.On("Hash", mock.Anything).Return("hashed", nil).Once()

		cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "dana@example.org", "s3cret-pass", false)
		require.NoError(t, err)

		u, err := commands.NewCreateUserCommandHandler(userFactory, hasher).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Nil(t, u)
		f.users.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject malformed email before opening a transaction", func(t *testing.T) {
		userFactory := new(MockUserUoWFactory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", mock.Anything).Return("hashed", nil).Once()
		cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "not-an-email", "s3cret-pass", false)
		require.NoError(t, err)

		_, err = commands.NewCreateUserCommandHandler(userFactory, hasher).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		userFactory.AssertNotCalled(t, "Create")
	})

	t.Run("should surface hashing failures before opening a transaction", func(t *testing.T) {
		userFactory := new(MockUserUoWFactory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", mock.Anything).Return("", errors.New("hash failed")).Once()
		cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "dana@example.org", "s3cret-pass", false)
		require.NoError(t, err)

		_, err = commands.NewCreateUserCommandHandler(userFactory, hasher).Handle(t.Context(), cmd)

		require.EqualError(t, err, "hash failed")
		userFactory.AssertNotCalled(t, "Create")
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		_, err := commands.NewCreateUserCommandHandler(new(MockUserUoWFactory), new(MockPasswordHasher)).
			Handle(t.Context(), commands.CreateUserCommand{})

		require.ErrorIs(t, err, commands.ErrCreateUserCommandIsNotConstructed)
	})
}

func TestCreateItemCommandHandler_Handle(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	donorUser, err := user.NewUser(kernel.NewUUID(), "donor@example.org", actor.Member, "hash")
	require.NoError(t, err)
	donor, err := donorUser.Actor()
	require.NoError(t, err)

	t.Run("should post item at clock time", func(t *testing.T) {
		f := newFixture()
		f.users.On("Get", mock.Anything, donor.ID()).Return(donorUser, nil).Once()
		f.items.On("Add", mock.Anything, mock.AnythingOfType("*item.Item")).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		cmd, err := commands.NewCreateItemCommand(kernel.NewUUID(), "Winter coat", "Size M", donor)
		require.NoError(t, err)

		it, err := commands.NewCreateItemCommandHandler(f.factory, kernel.FixedClock(now)).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, it.ID().IsEqual(cmd.ItemID()))
		assert.Equal(t, item.Posted, it.Status())
		assert.Equal(t, now, it.CreatedAt())
		assert.True(t, it.PostedBy().IsEqual(donor.ID()))
		f.assertExpectations(t)
	})

	t.Run("should fail for unknown donor", func(t *testing.T) {
		f := newFixture()
		f.users.On("Get", mock.Anything, donor.ID()).
			Return(nil, errs.NewObjectNotFoundError("user", donor.ID().String())).Once()

		cmd, err := commands.NewCreateItemCommand(kernel.NewUUID(), "Winter coat", "", donor)
		require.NoError(t, err)

		_, err = commands.NewCreateItemCommandHandler(f.factory, kernel.FixedClock(now)).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.items.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should surface commit error", func(t *testing.T) {
		f := newFixture()
		f.users.On("Get", mock.Anything, donor.ID()).Return(donorUser, nil).Once()
		f.items.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()

		cmd, err := commands.NewCreateItemCommand(kernel.NewUUID(), "Lamp", "", donor)
		require.NoError(t, err)

		it, err := commands.NewCreateItemCommandHandler(f.factory, kernel.FixedClock(now)).Handle(t.Context(), cmd)

		require.EqualError(t, err, "commit error")
		assert.Nil(t, it)
	})
}
