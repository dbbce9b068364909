package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
	"github.com/wildforge/gearsolver/internal/repositories/catalog"
	"github.com/wildforge/gearsolver/internal/testutils"
)

type RedisCatalogTestSuite struct {
	suite.Suite
	repo    catalog.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisCatalogTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisCatalogTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisCatalogTestSuite) TestNewRedisValidation() {
	_, err := catalog.NewRedis(nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "config cannot be nil")

	_, err = catalog.NewRedis(&catalog.RedisConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "client cannot be nil")
}

func (s *RedisCatalogTestSuite) TestPutAndGetRoundTrip() {
	c := testutils.SampleCatalog()

	put, err := s.repo.PutSnapshot(s.ctx, catalog.PutSnapshotInput{
		SnapshotID: "v1",
		Catalog:    c,
	})
	s.Require().NoError(err)
	s.Equal("v1", put.SnapshotID)

	got, err := s.repo.GetSnapshot(s.ctx, catalog.GetSnapshotInput{SnapshotID: "v1"})
	s.Require().NoError(err)
	s.Equal("v1", got.SnapshotID)
	s.Equal(c, got.Catalog)
}

func (s *RedisCatalogTestSuite) TestDefaultSnapshotID() {
	_, err := s.repo.PutSnapshot(s.ctx, catalog.PutSnapshotInput{
		Catalog: testutils.SampleCatalog(),
	})
	s.Require().NoError(err)

	got, err := s.repo.GetSnapshot(s.ctx, catalog.GetSnapshotInput{})
	s.Require().NoError(err)
	s.Equal(catalog.DefaultSnapshotID, got.SnapshotID)
	s.NotNil(got.Catalog)
}

func (s *RedisCatalogTestSuite) TestGetMissingSnapshot() {
	_, err := s.repo.GetSnapshot(s.ctx, catalog.GetSnapshotInput{SnapshotID: "ghost"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err), "want NOT_FOUND, got %v", err)
}

func (s *RedisCatalogTestSuite) TestPutRejectsNilCatalog() {
	_, err := s.repo.PutSnapshot(s.ctx, catalog.PutSnapshotInput{SnapshotID: "v1"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisCatalogTestSuite) TestPutRejectsInconsistentCatalog() {
	c := testutils.SampleCatalog()
	c.Pieces[0].Skills = map[gear.SkillID]int{"ghost": 1}
	_, err := s.repo.PutSnapshot(s.ctx, catalog.PutSnapshotInput{Catalog: c})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisCatalogSuite(t *testing.T) {
	suite.Run(t, new(RedisCatalogTestSuite))
}
