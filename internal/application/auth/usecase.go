package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/pkg/jwt"
)

// Roles admitidos en el token.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credential usuario configurado con su hash bcrypt.
type Credential struct {
	Username     string
	PasswordHash string
	Roles        []string
}

// NewCredential arma la credencial; si hash está vacío lo calcula desde password.
func NewCredential(username, password, hash string, roles ...string) (Credential, error) {
	if hash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Credential{}, fmt.Errorf("hash de %s: %w", username, err)
		}
		hash = string(h)
	}
	return Credential{Username: username, PasswordHash: hash, Roles: roles}, nil
}

// AuthUseCase login contra los usuarios configurados.
type AuthUseCase struct {
	users  map[string]Credential
	jwtCfg JWTConfig
	audit  ports.AuditSink
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. audit puede ser nil.
func NewAuthUseCase(users []Credential, jwtCfg JWTConfig, audit ports.AuditSink) *AuthUseCase {
	idx := make(map[string]Credential, len(users))
	for _, u := range users {
		idx[u.Username] = u
	}
	if audit == nil {
		audit = ports.NopAudit{}
	}
	return &AuthUseCase{users: idx, jwtCfg: jwtCfg, audit: audit, now: time.Now}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + roles.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewValidationError("usuario y contraseña son obligatorios")
	}
	user, ok := uc.users[in.Username]
	if !ok {
		uc.audit.LogSecurityEvent(ctx, "LOGIN_FAILED", "usuario desconocido: "+in.Username)
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.audit.LogSecurityEvent(ctx, "LOGIN_FAILED", "contraseña incorrecta: "+in.Username)
		return nil, domain.ErrUnauthorized
	}
	expires := uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit.LogSecurityEvent(ctx, "LOGIN_SUCCESS", "usuario: "+user.Username)
	return &dto.LoginResponse{
		Token:     token,
		Username:  user.Username,
		Roles:     user.Roles,
		ExpiresAt: expires,
	}, nil
}
