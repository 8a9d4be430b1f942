package testutil

import (
	"fmt"
	"testing"

	"github.com/playverse/community-backend/internal/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database for one test. Each test gets
// its own named database so parallel tests never share state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Comment{},
		&entity.Reaction{},
		&entity.FollowRequest{},
		&entity.Follow{},
		&entity.Event{},
		&entity.EventRegistration{},
		&entity.Notification{},
	))

	return db
}

// NewTestUser inserts a user with the given username and returns it.
func NewTestUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		DisplayName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
