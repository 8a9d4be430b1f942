package user

import (
	"context"
	"testing"
	"time"

	"github.com/playverse/community-backend/internal/entity"
	userDto "github.com/playverse/community-backend/internal/modules/user/dto"
	userRepo "github.com/playverse/community-backend/internal/modules/user/repository"
	"github.com/playverse/community-backend/internal/testutil"
	"github.com/playverse/community-backend/pkg/apperror"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username, password string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		DisplayName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedUser(t, db, "alice", "s3cret")
	svc := NewAuthService(userRepo.NewUserRepository(db), time.Hour)
	ctx := context.Background()

	resp, err := svc.Login(ctx, userDto.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)

	// Email works as the login identifier too.
	_, err = svc.Login(ctx, userDto.LoginRequest{Username: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, userDto.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, userDto.LoginRequest{Username: "nobody", Password: "s3cret"})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}
