package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/pkg/jwt"
)

type securitySpy struct {
	ports.NopAudit
	events []string
}

func (s *securitySpy) LogSecurityEvent(_ context.Context, event, _ string) {
	s.events = append(s.events, event)
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *securitySpy) {
	t.Helper()
	admin, err := auth.NewCredential("admin", "admin123", "", auth.RoleAdmin, auth.RoleUser)
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := auth.NewCredential("user", "", string(hash), auth.RoleUser)
	require.NoError(t, err)

	spy := &securitySpy{}
	uc := auth.NewAuthUseCase([]auth.Credential{admin, user}, auth.JWTConfig{Secret: "s3cret", ExpMinutes: 30, Issuer: "warehouse-api"}, spy)
	return uc, spy
}

func TestLogin_OK(t *testing.T) {
	uc, spy := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.RoleAdmin, auth.RoleUser}, res.Roles)

	claims, err := jwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.HasRole(auth.RoleAdmin))
	assert.Equal(t, []string{"LOGIN_SUCCESS"}, spy.events)
}

func TestLogin_HashPreconfigurado(t *testing.T) {
	uc, _ := newAuth(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "user", Password: "user123"})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.RoleUser}, res.Roles)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, spy := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, []string{"LOGIN_FAILED", "LOGIN_FAILED"}, spy.events)
}
