package partnerrepo_test

import (
	"context"
	"testing"

	"foodorder/internal/adapters/out/postgres/partnerrepo"
	"foodorder/internal/adapters/out/postgres/pgtest"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.pg = pg
	suite.Require().NoError(err)
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.pg.DB, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_NewPartner_IsActiveOffline() {
	ctx := context.Background()
	p, err := partner.NewPartner(kernel.NewUUID(), "Alice")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(p.IsEqual(got))
	suite.Equal("Alice", got.Name())
	suite.False(got.IsOnline())
	suite.True(got.IsActive())
	suite.True(got.Rating().IsZero())
	suite.Zero(got.TotalDeliveries())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_PersistsCountersAndFalseFlags() {
	ctx := context.Background()
	p, err := partner.NewPartner(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)
	p.SetAvailability(true, true)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	p.CompleteDelivery()
	p.CompleteDelivery()
	suite.Require().NoError(p.Rate(5))
	suite.Require().NoError(p.Rate(4))
	suite.Require().NoError(p.Rate(2))
	p.SetAvailability(false, false)
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(2, got.TotalDeliveries())
	suite.Equal(3, got.RatingsCount())
	suite.Equal(11, got.RatingsSum())
	suite.Equal("3.67", got.Rating().StringFixed(2))
	suite.False(got.IsOnline())
	suite.False(got.IsActive())
	suite.Require().ErrorIs(got.ValidateAvailable(), partner.ErrPartnerUnavailable)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	p, err := partner.NewPartner(kernel.NewUUID(), "Ghost")
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), p)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
