package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"travelgo/internal/domain"
	"travelgo/internal/repositories"
)

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return AuthService{
		Admins:       repositories.AdminRepository{DB: db},
		Travelers:    repositories.TravelerRepository{DB: db},
		JWTSecret:    []byte("test-secret"),
		JWTExpiresIn: time.Hour,
	}, mock
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}

func adminRow(t *testing.T, password string, isActive bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"admin_id", "email", "password_hash", "name", "is_active", "last_login", "created_at",
	}).AddRow("adm-1", "admin@trustyou-go.com", hashOf(t, password), "Kumari Silva", isActive, nil, time.Now())
}

func travelerRow(t *testing.T, password string, isActive bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"traveler_id", "email", "password_hash", "name", "contact", "is_active", "last_login", "created_at",
	}).AddRow("trv-1", "nimal@example.com", hashOf(t, password), "Nimal Perera", "+94771234567", isActive, nil, time.Now())
}

func TestLoginAdmin(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("FROM admins").
		WithArgs("admin@trustyou-go.com").
		WillReturnRows(adminRow(t, "s3cret-pass", true))
	mock.ExpectExec("UPDATE admins").WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Login("admin@trustyou-go.com", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, "admin", result.User.Role)
	assert.Equal(t, "adm-1", result.User.ID)

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "adm-1", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginFallsThroughToTraveler(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("FROM admins").
		WithArgs("nimal@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}))
	mock.ExpectQuery("FROM travelers").
		WithArgs("nimal@example.com").
		WillReturnRows(travelerRow(t, "s3cret-pass", true))
	mock.ExpectExec("UPDATE travelers").WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Login("nimal@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "traveler", result.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("FROM admins").
		WillReturnRows(adminRow(t, "s3cret-pass", true))

	_, err := svc.Login("admin@trustyou-go.com", "wrong")
	assert.True(t, domain.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}))
	mock.ExpectQuery("FROM travelers").
		WillReturnRows(sqlmock.NewRows([]string{"traveler_id"}))

	_, err := svc.Login("ghost@example.com", "whatever")
	assert.True(t, domain.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestLoginInactiveTravelerForbidden(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}))
	mock.ExpectQuery("FROM travelers").
		WillReturnRows(travelerRow(t, "s3cret-pass", false))

	_, err := svc.Login("nimal@example.com", "s3cret-pass")
	assert.True(t, domain.IsForbidden(err), "expected forbidden, got %v", err)
}
