package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash, role string, customerCode *string) (User, error) {
	args := m.Called(ctx, email, passwordHash, role, customerCode)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id int, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

// --- Tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "shop@example.com", mock.AnythingOfType("string"), "CUSTOMER", (*string)(nil)).
			Return(User{ID: 1, Email: "shop@example.com", Role: RoleCustomer}, nil)

		u, token, err := svc.Register(ctx, "  Shop@Example.com ", "s3cret", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.NotEmpty(t, token)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "CUSTOMER", claims.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, _, err := svc.Register(ctx, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "shop@example.com", mock.Anything, "CUSTOMER", (*string)(nil)).
			Return(User{}, ErrEmailExists)

		_, _, err := svc.Register(ctx, "shop@example.com", "pw", nil)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "shop@example.com").
			Return(User{ID: 1, Email: "shop@example.com", Password: hash, Role: RoleCustomer}, nil)

		u, token, err := svc.Login(ctx, "shop@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "shop@example.com").
			Return(User{ID: 1, Password: hash}, nil)

		_, _, err := svc.Login(ctx, "shop@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "ghost@example.com").
			Return(User{}, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "ghost@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("UpdateRole", ctx, 7, "PICKER").Return(nil)
		assert.NoError(t, svc.UpdateRole(ctx, 7, "PICKER"))
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		assert.ErrorIs(t, svc.UpdateRole(ctx, 7, "ROOT"), ErrInvalidRole)
	})
}
