package services_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/geosentinel/internal/lib/lifecycle"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	services "github.com/magabrotheeeer/geosentinel/internal/services/admin"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SetUserBlocked(ctx context.Context, userUID string, blocked bool) (*models.User, error) {
	args := m.Called(ctx, userUID, blocked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context, search string, blocked *bool, limit, offset int) ([]*models.User, int, error) {
	args := m.Called(ctx, search, blocked, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *UserRepoMock) RecentUsers(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) CountUsersByRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) CountBlockedUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Мок для RequestRepository
type RequestRepoMock struct {
	mock.Mock
}

func (m *RequestRepoMock) CountRequestsByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *RequestRepoMock) ListAllRequests(ctx context.Context, status, search string, limit, offset int) ([]*models.RequestWithOwner, int, error) {
	args := m.Called(ctx, status, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.RequestWithOwner), args.Int(1), args.Error(2)
}

func (m *RequestRepoMock) RecentRequests(ctx context.Context, limit int) ([]*models.RequestWithOwner, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RequestWithOwner), args.Error(1)
}

func TestAdminService_DashboardStats(t *testing.T) {
	users := new(UserRepoMock)
	requests := new(RequestRepoMock)
	svc := services.NewAdminService(users, requests)

	users.On("CountUsersByRole", mock.Anything, models.RoleUser).Return(42, nil).Once()
	requests.On("CountRequestsByStatus", mock.Anything, "").Return(100, nil).Once()
	requests.On("CountRequestsByStatus", mock.Anything, lifecycle.Pending).Return(40, nil).Once()
	requests.On("CountRequestsByStatus", mock.Anything, lifecycle.Processing).Return(30, nil).Once()
	requests.On("CountRequestsByStatus", mock.Anything, lifecycle.Completed).Return(25, nil).Once()
	requests.On("CountRequestsByStatus", mock.Anything, lifecycle.Failed).Return(5, nil).Once()
	users.On("CountBlockedUsers", mock.Anything).Return(3, nil).Once()
	requests.On("RecentRequests", mock.Anything, 10).
		Return([]*models.RequestWithOwner{{OwnerName: "Alice"}}, nil).Once()
	users.On("RecentUsers", mock.Anything, 5).
		Return([]*models.User{{UID: "user-1"}}, nil).Once()

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, stats.Summary.TotalUsers)
	assert.Equal(t, 100, stats.Summary.TotalRequests)
	assert.Equal(t, 40, stats.Summary.PendingRequests)
	assert.Equal(t, 5, stats.Summary.FailedRequests)
	assert.Equal(t, 3, stats.Summary.BlockedUsers)
	assert.Len(t, stats.RecentRequests, 1)
	assert.Len(t, stats.RecentUsers, 1)

	users.AssertExpectations(t)
	requests.AssertExpectations(t)
}

func TestAdminService_ListUsers(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		page, limit int
		wantBlocked *bool
		wantLimit   int
		wantOffset  int
		total       int
		wantPages   int
	}{
		{name: "defaults", page: 0, limit: 0, wantLimit: 10, wantOffset: 0, total: 25, wantPages: 3},
		{name: "second page", page: 2, limit: 10, wantLimit: 10, wantOffset: 10, total: 25, wantPages: 3},
		{name: "blocked filter", status: "blocked", page: 1, limit: 10, wantBlocked: boolPtr(true), wantLimit: 10, total: 3, wantPages: 1},
		{name: "active filter", status: "active", page: 1, limit: 10, wantBlocked: boolPtr(false), wantLimit: 10, total: 22, wantPages: 3},
		{name: "oversized limit is clamped", page: 1, limit: 1000, wantLimit: 10, total: 0, wantPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			svc := services.NewAdminService(users, new(RequestRepoMock))

			users.On("ListUsers", mock.Anything, "", matchBoolPtr(tt.wantBlocked), tt.wantLimit, tt.wantOffset).
				Return([]*models.User{}, tt.total, nil).Once()

			_, pagination, err := svc.ListUsers(context.Background(), "", tt.status, tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.total, pagination.Total)
			assert.Equal(t, tt.wantPages, pagination.Pages)

			users.AssertExpectations(t)
		})
	}
}

func boolPtr(v bool) *bool { return &v }

func matchBoolPtr(want *bool) any {
	return mock.MatchedBy(func(got *bool) bool {
		if want == nil || got == nil {
			return want == nil && got == nil
		}
		return *want == *got
	})
}

func TestAdminService_ToggleBlock(t *testing.T) {
	t.Run("blocks an active user", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "user-1").
			Return(&models.User{UID: "user-1", Role: models.RoleUser, IsBlocked: false}, nil).Once()
		users.On("SetUserBlocked", mock.Anything, "user-1", true).
			Return(&models.User{UID: "user-1", Role: models.RoleUser, IsBlocked: true}, nil).Once()

		updated, err := svc.ToggleBlock(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, updated.IsBlocked)
		users.AssertExpectations(t)
	})

	t.Run("unblocks a blocked user", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "user-1").
			Return(&models.User{UID: "user-1", Role: models.RoleUser, IsBlocked: true}, nil).Once()
		users.On("SetUserBlocked", mock.Anything, "user-1", false).
			Return(&models.User{UID: "user-1", Role: models.RoleUser, IsBlocked: false}, nil).Once()

		updated, err := svc.ToggleBlock(context.Background(), "user-1")
		require.NoError(t, err)
		assert.False(t, updated.IsBlocked)
	})

	t.Run("refuses to block an admin", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "admin-1").
			Return(&models.User{UID: "admin-1", Role: models.RoleAdmin}, nil).Once()

		_, err := svc.ToggleBlock(context.Background(), "admin-1")
		require.ErrorIs(t, err, services.ErrCannotBlockAdmin)
		users.AssertNotCalled(t, "SetUserBlocked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.ToggleBlock(context.Background(), "ghost")
		require.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "user-1").
			Return(&models.User{UID: "user-1", Role: models.RoleUser}, nil).Once()
		users.On("DeleteUser", mock.Anything, "user-1").Return(1, nil).Once()

		require.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
		users.AssertExpectations(t)
	})

	t.Run("refuses to delete an admin", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "admin-1").
			Return(&models.User{UID: "admin-1", Role: models.RoleAdmin}, nil).Once()

		err := svc.DeleteUser(context.Background(), "admin-1")
		require.ErrorIs(t, err, services.ErrCannotDeleteAdmin)
		users.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(UserRepoMock)
		svc := services.NewAdminService(users, new(RequestRepoMock))

		users.On("GetUser", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()

		err := svc.DeleteUser(context.Background(), "ghost")
		require.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestAdminService_ListRequests(t *testing.T) {
	requests := new(RequestRepoMock)
	svc := services.NewAdminService(new(UserRepoMock), requests)

	requests.On("ListAllRequests", mock.Anything, lifecycle.Pending, "alice", 10, 10).
		Return([]*models.RequestWithOwner{{OwnerName: "Alice"}}, 11, nil).Once()

	items, pagination, err := svc.ListRequests(context.Background(), lifecycle.Pending, "alice", 2, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 11, pagination.Total)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 2, pagination.Pages)

	requests.AssertExpectations(t)
}
