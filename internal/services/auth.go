package services

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"farmpanel/internal/config"
	"farmpanel/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using the configured scheme
func (s *AuthService) HashPassword(password string) (string, error) {
	switch s.cfg.Security.PasswordScheme {
	case "sha1":
		// Legacy unsalted digest, compatible with stores written by the
		// original initializer. Weak; bcrypt is the default.
		sum := sha1.Sum([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	case "bcrypt", "":
		bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
		return string(bytes), err
	default:
		return "", fmt.Errorf("unsupported password scheme: %s", s.cfg.Security.PasswordScheme)
	}
}

// VerifyPassword verifies a password against a stored hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	switch s.cfg.Security.PasswordScheme {
	case "sha1":
		sum := sha1.Sum([]byte(password))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(hashedPassword), []byte(digest)) == 1
	default:
		err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
		return err == nil
	}
}

// CreateUser creates a new user
func (s *AuthService) CreateUser(username, password, role string) (*models.User, error) {
	// Check if user exists
	var existingUser models.User
	if err := models.DB.Where("username = ?", username).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	}

	// Hash password
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// Create user
	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user. It returns
// ErrInvalidCredentials for both an unknown username and a wrong
// password so callers cannot tell which field was mismatched.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUser fetches a user by id
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateDefaultUser creates the default admin user if the store is empty
func (s *AuthService) CreateDefaultUser() error {
	var count int64
	models.DB.Model(&models.User{}).Count(&count)

	if count == 0 {
		_, err := s.CreateUser(
			s.cfg.DefaultUser.Username,
			s.cfg.DefaultUser.Password,
			s.cfg.DefaultUser.Role,
		)
		return err
	}

	return nil
}
