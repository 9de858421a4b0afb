package users

import (
	"context"
	"errors"
	"fmt"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/pkg/validation"
	"carmarket-backend/internal/policies"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordsDoNotMatch = errors.New("Passwords do not match")
	ErrInvalidEmailFormat  = errors.New("Invalid email format")
	ErrWeakPassword        = errors.New("Password must be at least 8 characters with a letter, a number and a special character")
	ErrInvalidUsername     = errors.New("Invalid username")
	ErrEmailTaken          = errors.New("Email already registered")
	ErrUsernameTaken       = errors.New("Username already taken")
	ErrSellerOnly          = fmt.Errorf("%w: seller profile requires a seller account", policies.ErrPermissionDenied)
)

type Service struct {
	DB *gorm.DB
}

// RegisterInput mirrors the registration form. IsSeller is the one role
// choice open to the client; staff can never be self-assigned.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
	IsSeller    bool   `json:"is_seller"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Password != in.Password2 {
		return nil, ErrPasswordsDoNotMatch
	}
	if !validation.IsValidUsername(in.Username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmailFormat
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsSeller:     in.IsSeller,
		IsStaff:      false,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the actor's own account record.
func (s *Service) Profile(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).First(&u, actor.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfileInput: phone and address are the only mutable profile
// fields; username, email, is_seller and is_staff are read-only after
// registration.
type UpdateProfileInput struct {
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, in UpdateProfileInput) (*domain.User, error) {
	u, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.PhoneNumber != nil {
		updates["phone_number"] = *in.PhoneNumber
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.DB.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// SellerProfile is the seller-facing view of the same record; non-sellers
// are rejected.
func (s *Service) SellerProfile(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if !actor.IsSeller() {
		return nil, ErrSellerOnly
	}
	return s.Profile(ctx, actor)
}
