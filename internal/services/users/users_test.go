package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) CreateFromIdentity(ctx context.Context, ident models.Identity, role string) (*models.User, error) {
	args := m.Called(ctx, ident, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var ident = models.Identity{
	Subject: "5f0c7e1a-3b2d-4c47-9a65-2f3f0b9f1e11",
	Email:   "anna@example.com",
	Name:    "Anna",
}

func newService(repo *RepoMock, pub *PublisherMock) *Service {
	return NewService(repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnsureUser_Existing(t *testing.T) {
	ctx := context.Background()
	existing := &models.User{ID: 1, Email: ident.Email, Role: models.RoleTrainer}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(existing, nil)

	u, err := newService(repo, pub).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, existing, u)
	repo.AssertNotCalled(t, "CreateFromIdentity", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureUser_Provisions(t *testing.T) {
	ctx := context.Background()
	created := &models.User{ID: 2, Email: ident.Email, Role: models.RoleClient}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound)
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(created, nil)
	pub.On("Publish", ctx, models.EventUserProvisioned, mock.MatchedBy(func(e models.UserProvisionedEvent) bool {
		return e.UserID == 2 && e.AuthID == ident.Subject && e.Role == models.RoleClient
	})).Return(nil)

	u, err := newService(repo, pub).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, created, u)
	pub.AssertExpectations(t)
}

func TestEnsureUser_PublishFailureIgnored(t *testing.T) {
	ctx := context.Background()
	created := &models.User{ID: 2, Email: ident.Email, Role: models.RoleClient}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound)
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(created, nil)
	pub.On("Publish", ctx, models.EventUserProvisioned, mock.Anything).Return(errors.New("broker down"))

	u, err := newService(repo, pub).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, created, u)
}

func TestEnsureUser_Race(t *testing.T) {
	ctx := context.Background()
	winner := &models.User{ID: 3, Email: ident.Email, Role: models.RoleClient}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound).Once()
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(nil, storage.ErrAlreadyExists)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(winner, nil).Once()

	u, err := newService(repo, pub).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, winner, u)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureUser_RaceLookupFails(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("db down")

	repo := new(RepoMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound).Once()
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(nil, storage.ErrAlreadyExists)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, dbErr).Once()

	_, err := newService(repo, new(PublisherMock)).EnsureUser(ctx, ident)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	assert.ErrorIs(t, err, dbErr)
}

func TestEnsureUser_InvalidatesCachedUser(t *testing.T) {
	ctx := context.Background()
	linked := &models.User{ID: 7, Email: ident.Email, Role: models.RoleTrainer}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	cache := new(CacheMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound)
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(linked, nil)
	pub.On("Publish", ctx, models.EventUserProvisioned, mock.Anything).Return(nil)
	cache.On("Invalidate", ctx, "users:7").Return(nil)

	u, err := newService(repo, pub).WithCache(cache).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, linked, u)
	cache.AssertExpectations(t)
}

func TestEnsureUser_CacheErrorIgnored(t *testing.T) {
	ctx := context.Background()
	created := &models.User{ID: 8, Email: ident.Email, Role: models.RoleClient}

	repo := new(RepoMock)
	pub := new(PublisherMock)
	cache := new(CacheMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound)
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(created, nil)
	pub.On("Publish", ctx, models.EventUserProvisioned, mock.Anything).Return(nil)
	cache.On("Invalidate", ctx, "users:8").Return(errors.New("redis down"))

	u, err := newService(repo, pub).WithCache(cache).EnsureUser(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, created, u)
}

func TestEnsureUser_ExistingSkipsCache(t *testing.T) {
	ctx := context.Background()

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(&models.User{ID: 1}, nil)

	_, err := newService(repo, new(PublisherMock)).WithCache(cache).EnsureUser(ctx, ident)
	require.NoError(t, err)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestEnsureUser_EmailTakenByAnotherAccount(t *testing.T) {
	ctx := context.Background()

	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, storage.ErrNotFound)
	repo.On("CreateFromIdentity", ctx, ident, models.RoleClient).Return(nil, storage.ErrAlreadyExists)

	_, err := newService(repo, pub).EnsureUser(ctx, ident)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestEnsureUser_LookupError(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("db down")

	repo := new(RepoMock)
	repo.On("GetByAuthID", ctx, ident.Subject).Return(nil, dbErr)

	_, err := newService(repo, new(PublisherMock)).EnsureUser(ctx, ident)
	assert.ErrorIs(t, err, dbErr)
}
