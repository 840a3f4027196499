package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staybook-backend/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	role := models.RoleGuest
	if in.Role != "" {
		r, ok := models.NormalizeRole(in.Role)
		if !ok {
			return nil, ErrUnknownRole
		}
		role = r
	}

	email := strings.TrimSpace(in.Email)

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

// Authorize resolves the principal and checks its role against the required
// set. Roles are normalized case-insensitively on both sides. An unknown
// principal yields ErrUserNotFound, a known principal with the wrong role
// ErrForbidden.
func (s *UserService) Authorize(principalID uint, required ...models.Role) (*models.User, error) {
	user, err := s.GetByID(principalID)
	if err != nil {
		return nil, err
	}

	role, ok := models.NormalizeRole(string(user.Role))
	if !ok {
		return nil, ErrForbidden
	}
	for _, r := range required {
		if role == r {
			return user, nil
		}
	}
	return nil, ErrForbidden
}
