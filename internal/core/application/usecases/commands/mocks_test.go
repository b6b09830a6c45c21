package commands_test

import (
	"context"

	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/notification"
	"donation/internal/core/domain/model/user"
	"donation/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*item.Item)
	return it, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	return m.Called().Get(0).(ports.ItemRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

// fixture wires one MockUoW with all three repositories. Begin and Rollback
// always succeed; tests set Commit and repository expectations themselves.
type fixture struct {
	factory       *MockUoWFactory
	uow           *MockUoW
	items         *MockItemRepository
	users         *MockUserRepository
	notifications *MockNotificationRepository
}

func newFixture() *fixture {
	f := &fixture{
		factory:       new(MockUoWFactory),
		uow:           new(MockUoW),
		items:         new(MockItemRepository),
		users:         new(MockUserRepository),
		notifications: new(MockNotificationRepository),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("ItemRepository").Return(f.items).Maybe()
	f.uow.On("UserRepository").Return(f.users).Maybe()
	f.uow.On("NotificationRepository").Return(f.notifications).Maybe()
	return f
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.items.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}
