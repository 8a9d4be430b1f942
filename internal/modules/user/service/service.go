package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	userDto "github.com/playverse/community-backend/internal/modules/user/dto"
	userRepo "github.com/playverse/community-backend/internal/modules/user/repository"
	"github.com/playverse/community-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req userDto.LoginRequest) (*userDto.LoginResponse, error)
}

type authService struct {
	repo            userRepo.UserRepository
	secret          string
	tokenExpiration time.Duration
}

func NewAuthService(repo userRepo.UserRepository, tokenExpiration time.Duration) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}
	if tokenExpiration == 0 {
		tokenExpiration = 72 * time.Hour
	}

	return &authService{
		repo:            repo,
		secret:          secret,
		tokenExpiration: tokenExpiration,
	}
}

func (s *authService) Login(ctx context.Context, req userDto.LoginRequest) (*userDto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiration)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &userDto.LoginResponse{
		Token: token,
		User: userDto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		},
	}, nil
}
