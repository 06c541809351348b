package users

import (
	"context"
	"testing"
	"time"

	"folio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupUsersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return &Service{DB: db, JWTSecret: testSecret, JWTExpiry: time.Hour}
}

func signup(t *testing.T, svc *Service, email string) *domain.User {
	user, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Frank", Email: email, Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	return user
}

func TestSignupAndLogin(t *testing.T) {
	svc := setupUsersTest(t)
	ctx := context.Background()

	created := signup(t, svc, "frank@example.com")
	assert.NotZero(t, created.UID)
	assert.NotEqual(t, "hunter2hunter2", created.Password, "password is stored hashed")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter2hunter2")))

	token, user, err := svc.Login(ctx, "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.UID, user.UID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := setupUsersTest(t)

	signup(t, svc, "frank@example.com")
	_, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Imposter", Email: "frank@example.com", Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	svc := setupUsersTest(t)
	ctx := context.Background()

	cases := []SignupRequest{
		{Name: "", Email: "frank@example.com", Password: "hunter2hunter2"},
		{Name: "Frank", Email: "not-an-email", Password: "hunter2hunter2"},
		{Name: "Frank", Email: "frank@example.com", Password: "short1"},
		{Name: "Frank", Email: "frank@example.com", Password: "allletters"},
	}
	for _, req := range cases {
		_, err := svc.Signup(ctx, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := setupUsersTest(t)
	ctx := context.Background()

	signup(t, svc, "frank@example.com")

	_, _, err := svc.Login(ctx, "frank@example.com", "wrong-password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_PatchSemantics(t *testing.T) {
	svc := setupUsersTest(t)
	ctx := context.Background()
	user := signup(t, svc, "frank@example.com")

	name := "Franklin"
	profile := "aggressive"
	updated, err := svc.Update(ctx, user.UID, user.UID, UserPatch{Name: &name, InvestmentProfile: &profile})
	require.NoError(t, err)
	assert.Equal(t, "Franklin", updated.Name)
	require.NotNil(t, updated.InvestmentProfile)
	assert.Equal(t, "aggressive", *updated.InvestmentProfile)
	assert.Equal(t, user.Password, updated.Password, "nil password means no change")

	password := "newsecret99"
	updated, err = svc.Update(ctx, user.UID, user.UID, UserPatch{Password: &password})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(password)))
	assert.Equal(t, "Franklin", updated.Name, "untouched fields survive")

	bad := "short"
	_, err = svc.Update(ctx, user.UID, user.UID, UserPatch{Password: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_Forbidden(t *testing.T) {
	svc := setupUsersTest(t)
	user := signup(t, svc, "frank@example.com")

	name := "Mallory"
	_, err := svc.Update(context.Background(), user.UID+1, user.UID, UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteUser(t *testing.T) {
	svc := setupUsersTest(t)
	ctx := context.Background()
	user := signup(t, svc, "frank@example.com")

	assert.ErrorIs(t, svc.Delete(ctx, user.UID+1, user.UID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, user.UID, user.UID))
	assert.ErrorIs(t, svc.Delete(ctx, user.UID, user.UID), domain.ErrNotFound)

	_, _, err := svc.Login(ctx, "frank@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
