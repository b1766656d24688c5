package user

import (
	"errors"
	"log"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/validation"
)

// Service handles registration, login and profile management.
type Service struct {
	users   repositories.UserRepository
	wallets *wallet.Service
}

func NewService(users repositories.UserRepository, wallets *wallet.Service) *Service {
	return &Service{users: users, wallets: wallets}
}

// Register creates a user with hashed credentials and provisions their
// primary USD wallet.
func (s *Service) Register(input models.CreateUserInput) (*models.User, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	if existing, err := s.users.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, errors.New("email already registered")
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	pinHash, err := utils.HashPIN(input.PIN)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     input.Email,
		Password:  passwordHash,
		PINHash:   pinHash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Country:   input.Country,
		Role:      "user",
		KYCLevel:  models.KYCLevelNone,
		IsActive:  true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if _, err := s.wallets.GetOrCreateWallet(user.ID, "USD"); err != nil {
		// The user exists; surface the wallet problem without undoing
		// registration.
		log.Printf("default wallet creation failed for user %d: %v", user.ID, err)
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for %s", email)
		return nil, "", "", errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, "", "", errors.New("invalid credentials")
	}
	if !utils.CheckPassword(user.Password, password) {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}
	return user, accessToken, refreshToken, nil
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *Service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: models.GetDefaultPermissions(user.Role),
	})
}

// GetProfile returns the user by ID.
func (s *Service) GetProfile(userID uint) (*models.User, error) {
	return s.users.GetByID(userID)
}

// ChangePassword swaps the login password after verifying the old one.
func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, oldPassword) {
		return errors.New("incorrect password")
	}
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(user)
}

// ChangePIN swaps the transaction PIN after verifying the current one.
func (s *Service) ChangePIN(userID uint, currentPIN, newPIN string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if err := utils.VerifyPIN(user.PINHash, currentPIN); err != nil {
		return err
	}
	if !isNumericPIN(newPIN) {
		return errs.ErrInvalidPin
	}

	hash, err := utils.HashPIN(newPIN)
	if err != nil {
		return err
	}
	user.PINHash = hash
	return s.users.Update(user)
}

func validateRegistration(input models.CreateUserInput) error {
	v := validation.New()
	v.Check(validation.IsEmail(input.Email), "email", "must be a valid email address")
	v.Check(len(input.Password) >= 8, "password", "must be at least 8 characters")
	v.Check(input.FirstName != "", "first_name", "is required")
	v.Check(input.LastName != "", "last_name", "is required")
	v.Check(isNumericPIN(input.PIN), "pin", "must be exactly 4 digits")
	if input.Phone != "" {
		v.Check(validation.IsPhone(input.Phone), "phone", "must be a valid phone number")
	}
	if !v.Valid() {
		return v.Errors[0]
	}
	return nil
}

func isNumericPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
