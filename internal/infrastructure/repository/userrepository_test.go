package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"banking/internal/application/user/helpers"
	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/infrastructure/database"
	"banking/internal/infrastructure/migration"
	"banking/internal/shared/biztime"
	"banking/internal/shared/config"
	"banking/internal/shared/db"
	"banking/internal/shared/errors"
	"banking/internal/shared/id"
	"banking/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)

	strategy, err := migration.NewGooseStrategy("sqlite")
	require.NoError(t, err)
	require.NoError(t, migration.NewManagerWithStrategy(strategy).Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func newUser(t *testing.T, email, cpf, lastName string) *user.User {
	t.Helper()

	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	c, err := vo.NewCPF(cpf)
	require.NoError(t, err)
	first, err := vo.NewName("Ana")
	require.NoError(t, err)
	last, err := vo.NewName(lastName)
	require.NoError(t, err)

	dob, err := biztime.ParseDate("1990-05-17")
	require.NoError(t, err)

	u, err := user.NewUser(e, c, first, last, user.Profile{PhoneNumber: "+5511999990000", DateOfBirth: &dob}, id.NewUserSID)
	require.NoError(t, err)

	pw, err := vo.NewPassword("Secret#123")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(pw, plainHasher{}))
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	u := newUser(t, "ana@example.com", "111.444.777-35", "Souza")
	token, err := u.GenerateEmailVerificationToken(time.Hour)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID())

	lookups := map[string]func() (*user.User, error){
		"by id":    func() (*user.User, error) { return repo.GetByID(ctx, u.ID()) },
		"by sid":   func() (*user.User, error) { return repo.GetBySID(ctx, u.SID()) },
		"by email": func() (*user.User, error) { return repo.GetByEmail(ctx, "ana@example.com") },
		"by cpf":   func() (*user.User, error) { return repo.GetByCPF(ctx, "11144477735") },
		"by token": func() (*user.User, error) { return repo.GetByVerificationToken(ctx, token.Hash()) },
	}

	for name, lookup := range lookups {
		t.Run(name, func(t *testing.T) {
			found, err := lookup()
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, u.SID(), found.SID())
			assert.True(t, u.Email().Equals(found.Email()))
			assert.True(t, u.CPF().Equals(found.CPF()))
			assert.Equal(t, "Souza", found.LastName().String())
			assert.Equal(t, "+5511999990000", found.PhoneNumber())
			require.NotNil(t, found.DateOfBirth())
			assert.Equal(t, "1990-05-17", found.DateOfBirth().Format(biztime.DateLayout))
			assert.Equal(t, vo.StatusPendingVerification, found.Status())
			assert.NoError(t, found.VerifyPassword("Secret#123", plainHasher{}))
		})
	}
}

func TestUserRepository_NotFoundReturnsNil(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.GetBySID(ctx, "usr_doesnotexist")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_Exists(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser(t, "ana@example.com", "111.444.777-35", "Souza")))

	exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCPF(ctx, "11144477735")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCPF(ctx, "52998224725")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_DuplicateCPF(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser(t, "ana@example.com", "111.444.777-35", "Souza")))

	err := repo.Create(ctx, newUser(t, "other@example.com", "11144477735", "Lima"))
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateError(err))
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	u := newUser(t, "ana@example.com", "111.444.777-35", "Souza")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, u.ChangeStatus(vo.StatusActive))
	require.NoError(t, u.AssignRole(vo.RoleAdmin))
	u.RecordLoginSuccess("198.51.100.4")
	require.NoError(t, repo.Update(ctx, u))

	found, err := repo.GetBySID(ctx, u.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, found.Status())
	assert.Equal(t, vo.RoleAdmin, found.Role())
	assert.Equal(t, u.Version(), found.Version())
	assert.Equal(t, "198.51.100.4", found.GetAuthData().LastLoginIP)
	require.NotNil(t, found.GetAuthData().LastLoginAt)
}

func TestUserRepository_CorruptRowFailsToLoad(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	u := newUser(t, "ana@example.com", "111.444.777-35", "Souza")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, gdb.Exec("UPDATE users SET cpf = ? WHERE id = ?", "11144477736", u.ID()).Error)

	_, err := repo.GetByID(ctx, u.ID())
	require.Error(t, err)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	fixtures := []struct {
		email, cpf, last string
	}{
		{"ana@example.com", "111.444.777-35", "Souza"},
		{"bia@example.com", "529.982.247-25", "Almeida"},
		{"caio@example.org", "123.456.789-09", "Costa"},
	}
	for _, f := range fixtures {
		require.NoError(t, repo.Create(ctx, newUser(t, f.email, f.cpf, f.last)))
	}

	users, total, err := repo.List(ctx, user.ListFilter{Page: 1, PageSize: 2, OrderBy: "last_name", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Almeida", users[0].LastName().String())
	assert.Equal(t, "Costa", users[1].LastName().String())

	users, total, err = repo.List(ctx, user.ListFilter{Page: 1, PageSize: 10, Email: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	// unknown order columns fall back to the default ordering
	_, _, err = repo.List(ctx, user.ListFilter{Page: 1, PageSize: 10, OrderBy: "password_hash; DROP TABLE users"})
	require.NoError(t, err)
}

func TestUserRepository_ClaimBootstrapAdmin(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	txMgr := db.NewTransactionManager(gdb)
	ctx := context.Background()

	claim := func() bool {
		var first bool
		err := txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			first, err = repo.ClaimBootstrapAdmin(txCtx)
			return err
		})
		require.NoError(t, err)
		return first
	}

	assert.True(t, claim())
	assert.False(t, claim())
	assert.False(t, claim())
}

func TestUserRepository_ClaimBootstrapAdminSeedsMissingRow(t *testing.T) {
	t.Run("empty installation", func(t *testing.T) {
		gdb := setupTestDB(t)
		require.NoError(t, gdb.Exec("DELETE FROM bootstrap_state").Error)
		repo := NewUserRepository(gdb, logger.NewNopLogger())

		first, err := repo.ClaimBootstrapAdmin(context.Background())
		require.NoError(t, err)
		assert.True(t, first)
	})

	t.Run("admin already present", func(t *testing.T) {
		gdb := setupTestDB(t)
		require.NoError(t, gdb.Exec("DELETE FROM bootstrap_state").Error)
		repo := NewUserRepository(gdb, logger.NewNopLogger())

		admin := newUser(t, "root@example.com", "111.444.777-35", "Root")
		require.NoError(t, admin.AssignRole(vo.RoleAdmin))
		require.NoError(t, repo.Create(context.Background(), admin))

		first, err := repo.ClaimBootstrapAdmin(context.Background())
		require.NoError(t, err)
		assert.False(t, first)
	})
}

func TestUserRepository_ConcurrentRegistrationsGrantOneAdmin(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	txMgr := db.NewTransactionManager(gdb)
	authHelper := helpers.NewAuthHelper(repo, logger.NewNopLogger())

	cpfs := []string{
		"12345678143", "23456789254", "34567891309", "45678912445",
		"56789123563", "67891234663", "78912345745", "89123456809",
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(cpfs))
	for i, cpf := range cpfs {
		u := newUser(t, fmt.Sprintf("user%d@example.com", i), cpf, "Concurrent")
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- txMgr.RunInTransaction(context.Background(), func(txCtx context.Context) error {
				if err := repo.Create(txCtx, u); err != nil {
					return err
				}
				return authHelper.GrantAdminIfFirstUser(txCtx, u)
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	admins, total, err := repo.List(context.Background(), user.ListFilter{Page: 1, PageSize: 20, Role: vo.RoleAdmin.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, admins, 1)

	_, total, err = repo.List(context.Background(), user.ListFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(len(cpfs)), total)
}
