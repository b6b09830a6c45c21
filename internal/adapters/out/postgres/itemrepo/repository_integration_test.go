package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"donation/internal/adapters/out/postgres/itemrepo"
	"donation/internal/adapters/out/postgres/pgtest"
	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *itemrepo.GormItemRepository
	tracker    *MockAggregateTracker
	postedAt   time.Time
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.postedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = itemrepo.NewGormItemRepository(suite.pg.DB, suite.tracker)
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	donor := kernel.NewUUID()

	it, err := item.NewItem(kernel.NewUUID(), "Winter coat", "Size M", donor, suite.postedAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, it))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", it.ID(), it)

	loaded, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(it.ID(), loaded.ID())
	suite.Equal("Winter coat", loaded.Name())
	suite.Equal("Size M", loaded.Description())
	suite.Equal(donor, loaded.PostedBy())
	suite.Empty(loaded.RequestedBy())
	suite.Nil(loaded.AssignedTo())
	suite.Equal(item.Posted, loaded.Status())
	suite.True(suite.postedAt.Equal(loaded.CreatedAt()))
	suite.Equal(int64(1), loaded.Version())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflict() {
	ctx := context.Background()
	it := suite.addItem(ctx)

	err := suite.repository.Add(ctx, it)

	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_NotConstructed_Fails() {
	err := suite.repository.Add(context.Background(), &item.Item{})

	suite.ErrorIs(err, item.ErrItemIsNotConstructed)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_PersistsRequestsInOrderAndBumpsVersion() {
	ctx := context.Background()
	it := suite.addItem(ctx)
	first, second, third := suite.member(), suite.member(), suite.member()

	for _, a := range []actor.Actor{second, first} {
		_, err := it.Request(a)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.repository.Update(ctx, it))

	loaded, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{second.ID(), first.ID()}, loaded.RequestedBy())
	suite.Equal(int64(2), loaded.Version())

	_, err = loaded.Request(third)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Assign(suite.donorOf(loaded), first.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{second.ID(), first.ID(), third.ID()}, reloaded.RequestedBy())
	suite.Require().NotNil(reloaded.AssignedTo())
	suite.Equal(first.ID(), *reloaded.AssignedTo())
	suite.Equal(int64(3), reloaded.Version())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	it := suite.addItem(ctx)

	winner, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	loser, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)

	_, err = winner.Request(suite.member())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, winner))

	_, err = loser.Request(suite.member())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, loser)

	suite.ErrorIs(err, errs.ErrConflict)
	suite.True(errs.IsRetryable(err))

	stored, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Len(stored.RequestedBy(), 1)
	suite.Equal(int64(2), stored.Version())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	it, err := item.NewItem(kernel.NewUUID(), "Lamp", "", kernel.NewUUID(), suite.postedAt)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), it)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_StatusTransitions() {
	ctx := context.Background()
	it := suite.addItem(ctx)
	taker := suite.member()
	courier, err := actor.New(kernel.NewUUID(), actor.Volunteer)
	suite.Require().NoError(err)

	_, err = it.Request(taker)
	suite.Require().NoError(err)
	suite.Require().NoError(it.Assign(suite.donorOf(it), taker.ID()))
	suite.Require().NoError(it.Pickup(courier, suite.postedAt.Add(item.DefaultEmbargo), item.DefaultEmbargo))
	suite.Require().NoError(suite.repository.Update(ctx, it))

	picked, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.Picked, picked.Status())

	suite.Require().NoError(picked.Deliver(courier))
	suite.Require().NoError(suite.repository.Update(ctx, picked))

	delivered, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.Delivered, delivered.Status())
	suite.Equal(int64(3), delivered.Version())
}

func (suite *ItemRepositoryIntegrationTestSuite) addItem(ctx context.Context) *item.Item {
	it, err := item.NewItem(kernel.NewUUID(), "Bookshelf", "Oak, 2m", kernel.NewUUID(), suite.postedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, it))
	return it
}

func (suite *ItemRepositoryIntegrationTestSuite) member() actor.Actor {
	a, err := actor.New(kernel.NewUUID(), actor.Member)
	suite.Require().NoError(err)
	return a
}

func (suite *ItemRepositoryIntegrationTestSuite) donorOf(it *item.Item) actor.Actor {
	a, err := actor.New(it.PostedBy(), actor.Member)
	suite.Require().NoError(err)
	return a
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
