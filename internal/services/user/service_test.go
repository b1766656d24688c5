package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUsers) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func validInput() models.CreateUserInput {
	return models.CreateUserInput{
		Email:     "ada@example.com",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		PIN:       "4821",
	}
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, validateRegistration(validInput()))

	cases := map[string]func(*models.CreateUserInput){
		"bad email":      func(in *models.CreateUserInput) { in.Email = "not-an-email" },
		"short password": func(in *models.CreateUserInput) { in.Password = "short" },
		"no first name":  func(in *models.CreateUserInput) { in.FirstName = "" },
		"no last name":   func(in *models.CreateUserInput) { in.LastName = "" },
		"short pin":      func(in *models.CreateUserInput) { in.PIN = "12" },
		"alpha pin":      func(in *models.CreateUserInput) { in.PIN = "12ab" },
		"bad phone":      func(in *models.CreateUserInput) { in.Phone = "call me" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			assert.Error(t, validateRegistration(in))
		})
	}
}

func TestIsNumericPIN(t *testing.T) {
	assert.True(t, isNumericPIN("0000"))
	assert.True(t, isNumericPIN("9876"))
	assert.False(t, isNumericPIN("123"))
	assert.False(t, isNumericPIN("12345"))
	assert.False(t, isNumericPIN("12a4"))
}

func TestChangePassword(t *testing.T) {
	oldHash, err := utils.HashPassword("old-password")
	assert.NoError(t, err)

	t.Run("updates hash when old password matches", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(7)).Return(&models.User{ID: 7, Password: oldHash}, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.Password != oldHash && utils.CheckPassword(u.Password, "new-password")
		})).Return(nil)

		svc := NewService(users, nil)
		assert.NoError(t, svc.ChangePassword(7, "old-password", "new-password"))
		users.AssertExpectations(t)
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(7)).Return(&models.User{ID: 7, Password: oldHash}, nil)

		svc := NewService(users, nil)
		assert.Error(t, svc.ChangePassword(7, "guess", "new-password"))
		users.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("rejects short new password", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(7)).Return(&models.User{ID: 7, Password: oldHash}, nil)

		svc := NewService(users, nil)
		assert.Error(t, svc.ChangePassword(7, "old-password", "tiny"))
		users.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestChangePIN(t *testing.T) {
	pinHash, err := utils.HashPIN("1111")
	assert.NoError(t, err)

	t.Run("updates hash when current pin matches", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(3)).Return(&models.User{ID: 3, PINHash: pinHash}, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return utils.VerifyPIN(u.PINHash, "2222") == nil
		})).Return(nil)

		svc := NewService(users, nil)
		assert.NoError(t, svc.ChangePIN(3, "1111", "2222"))
		users.AssertExpectations(t)
	})

	t.Run("rejects wrong current pin", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(3)).Return(&models.User{ID: 3, PINHash: pinHash}, nil)

		svc := NewService(users, nil)
		assert.ErrorIs(t, svc.ChangePIN(3, "9999", "2222"), errs.ErrInvalidPin)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("rejects non-numeric new pin", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByID", uint(3)).Return(&models.User{ID: 3, PINHash: pinHash}, nil)

		svc := NewService(users, nil)
		assert.ErrorIs(t, svc.ChangePIN(3, "1111", "22x2"), errs.ErrInvalidPin)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hash, err := utils.HashPassword("right-password")
	assert.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByEmail", "ghost@example.com").Return(nil, errs.ErrUserNotFound)

		svc := NewService(users, nil)
		_, _, _, err := svc.Login("ghost@example.com", "whatever")
		assert.Error(t, err)
	})

	t.Run("inactive account", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByEmail", "ada@example.com").
			Return(&models.User{ID: 1, Email: "ada@example.com", Password: hash, IsActive: false}, nil)

		svc := NewService(users, nil)
		_, _, _, err := svc.Login("ada@example.com", "right-password")
		assert.Error(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByEmail", "ada@example.com").
			Return(&models.User{ID: 1, Email: "ada@example.com", Password: hash, IsActive: true}, nil)

		svc := NewService(users, nil)
		_, _, _, err := svc.Login("ada@example.com", "wrong-password")
		assert.Error(t, err)
	})

	t.Run("issues token pair on success", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetByEmail", "ada@example.com").
			Return(&models.User{ID: 1, Email: "ada@example.com", Role: "user", Password: hash, IsActive: true}, nil)

		svc := NewService(users, nil)
		u, access, refresh, err := svc.Login("ada@example.com", "right-password")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})
}
