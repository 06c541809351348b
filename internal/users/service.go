package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio-backend/internal/domain"
	"folio-backend/internal/middleware"
	"folio-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service manages user accounts and token issuance.
type Service struct {
	DB        *gorm.DB
	JWTSecret string
	JWTExpiry time.Duration
}

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	InvestmentProfile *string `json:"investment_profile"`
}

// UserPatch updates a user; nil fields mean "no change".
type UserPatch struct {
	Name              *string `json:"name"`
	Password          *string `json:"password"`
	InvestmentProfile *string `json:"investment_profile"`
}

// Signup creates an account with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, domain.Validationf("invalid email address")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, domain.Validationf("password must be at least 8 characters with a letter and a number")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          string(hash),
		InvestmentProfile: req.InvestmentProfile,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, domain.StorageErr(err)
	}
	return &user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, domain.StorageErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.UID, s.JWTSecret, s.JWTExpiry)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Update patches the user's own record. Each nil field is left unchanged.
func (s *Service) Update(ctx context.Context, actorID, userID uint, patch UserPatch) (*domain.User, error) {
	if actorID != userID {
		return nil, ErrForbidden
	}

	var user domain.User
	if err := s.DB.WithContext(ctx).Where("uid = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
		}
		return nil, domain.StorageErr(err)
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, domain.Validationf("name must not be empty")
		}
		user.Name = *patch.Name
	}
	if patch.Password != nil {
		if !validation.IsValidPassword(*patch.Password) {
			return nil, domain.Validationf("password must be at least 8 characters with a letter and a number")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if patch.InvestmentProfile != nil {
		user.InvestmentProfile = patch.InvestmentProfile
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	return &user, nil
}

// Delete removes the user's own account.
func (s *Service) Delete(ctx context.Context, actorID, userID uint) error {
	if actorID != userID {
		return ErrForbidden
	}
	res := s.DB.WithContext(ctx).Where("uid = ?", userID).Delete(&domain.User{})
	if res.Error != nil {
		return domain.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return nil
}
