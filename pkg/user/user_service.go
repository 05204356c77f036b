package user

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/database"
	"Recipe-Share-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// registerAttempts bounds retries when a concurrent sign-up claims the same username.
const registerAttempts = 3

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.Profile, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.Profile, error)
		GetProfile(ctx context.Context, userID string) (domain.Profile, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.Profile, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func toProfile(profile *entities.Profile, email string) domain.Profile {
	fullName := ""
	if profile.FullName != nil {
		fullName = *profile.FullName
	}
	return domain.Profile{
		ID:        profile.ID.String(),
		Email:     email,
		Username:  profile.Username,
		FullName:  fullName,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.Profile{}, domain.ErrEmailAlreadyUsed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	local, _, _ := strings.Cut(email, "@")
	base := UsernameBase(email)

	for attempt := 1; ; attempt++ {
		username, err := GenerateUniqueUsername(ctx, s.userRepository, base)
		if err != nil {
			return domain.Profile{}, err
		}

		user := &entities.User{Email: email, Password: string(hashed)}
		profile := &entities.Profile{Username: username, FullName: &local}
		err = s.userRepository.CreateUserWithProfile(ctx, user, profile)
		if err == nil {
			return toProfile(profile, user.Email), nil
		}
		if !database.IsUniqueViolation(err) {
			return domain.Profile{}, err
		}
		if _, lookupErr := s.userRepository.GetUserByEmail(ctx, email); lookupErr == nil {
			return domain.Profile{}, domain.ErrEmailAlreadyUsed
		}
		if attempt == registerAttempts {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
		log.Infof("username %s claimed concurrently, retrying", username)
	}
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		Role:  domain.RoleUser,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.Profile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Profile{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}

	profile, err := s.userRepository.GetProfileByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return toProfile(profile, user.Email), nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Profile{}, domain.ErrParseUUID
	}

	profile, err := s.userRepository.GetProfileByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return toProfile(profile, ""), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.Profile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Profile{}, domain.ErrParseUUID
	}

	profile, err := s.userRepository.GetProfileByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, err
	}

	username := strings.TrimSpace(req.Username)
	if username != profile.Username {
		taken, err := s.userRepository.UsernameExists(ctx, username)
		if err != nil {
			return domain.Profile{}, err
		}
		if taken {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
	}

	fullName := strings.TrimSpace(req.FullName)
	profile.Username = username
	profile.FullName = &fullName
	profile.UpdatedAt = time.Now()

	if err := s.userRepository.UpdateProfile(ctx, profile); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
		return domain.Profile{}, err
	}
	return toProfile(profile, ""), nil
}
