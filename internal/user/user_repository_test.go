package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"courier/internal/dbmysql"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&dbmysql.User{}))
	return db
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &dbmysql.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, repo.CreateUser(ctx, u))
	require.NotZero(t, u.ID)

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	missing, err := repo.GetUserByID(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)

	missing, err = repo.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

// Deactivated accounts are invisible to the ID lookup, so the rest of the
// system treats them as gone.
func TestUserRepository_GetUserByID_ActiveOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &dbmysql.User{Username: "ghost", Email: "ghost@example.com", PasswordHash: "x", IsActive: false}
	require.NoError(t, repo.CreateUser(ctx, u))

	// The deactivated flag must survive the insert; a column default
	// would silently flip it back to active.
	var stored dbmysql.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	require.False(t, stored.IsActive)

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUserRepository_ExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &dbmysql.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "x", IsActive: true,
	}))

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.EmailExists(ctx, "bob@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepository_DuplicateUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &dbmysql.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "x", IsActive: true,
	}))

	err := repo.CreateUser(ctx, &dbmysql.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "x", IsActive: true,
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
