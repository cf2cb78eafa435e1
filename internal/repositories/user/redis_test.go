package user

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetUser() {
	u := &models.User{ID: "u-1", Name: "alice", Role: models.RoleStudent, PasswordHash: "salt$hash"}
	s.Require().NoError(s.repo.CreateUser(s.ctx, &CreateUserInput{User: u}))

	byID, err := s.repo.GetUser(s.ctx, &GetUserInput{UserID: "u-1"})
	s.Require().NoError(err)
	s.Equal("alice", byID.Name)
	s.Equal(models.RoleStudent, byID.Role)
	s.Equal("salt$hash", byID.PasswordHash)

	byName, err := s.repo.GetUserByName(s.ctx, &GetUserByNameInput{Name: "alice"})
	s.Require().NoError(err)
	s.Equal("u-1", byName.ID)
}

func (s *RedisRepositoryTestSuite) TestCreateUserNameTaken() {
	s.Require().NoError(s.repo.CreateUser(s.ctx, &CreateUserInput{User: &models.User{ID: "u-1", Name: "alice", Role: models.RoleStudent}}))

	err := s.repo.CreateUser(s.ctx, &CreateUserInput{User: &models.User{ID: "u-2", Name: "alice", Role: models.RoleTeacher}})
	s.Equal(ErrNameTaken, err)

	_, err = s.repo.GetUser(s.ctx, &GetUserInput{UserID: "u-2"})
	s.Equal(ErrUserNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestGetMissingUser() {
	_, err := s.repo.GetUser(s.ctx, &GetUserInput{UserID: "nobody"})
	s.Equal(ErrUserNotFound, err)

	_, err = s.repo.GetUserByName(s.ctx, &GetUserByNameInput{Name: "nobody"})
	s.Equal(ErrUserNotFound, err)
}
