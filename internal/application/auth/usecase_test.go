package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/auth"
	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
	pkgjwt "github.com/sistemas-transaccionales-umb/back/pkg/jwt"
)

func newUseCase() (*auth.UseCase, *memrepo.UserRepo) {
	userRepo := memrepo.NewUserRepo()
	uc := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "inventario-umb-test",
	})
	return uc, userRepo
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "ana@umb.test",
		Password:  "clave-segura-123",
		FirstName: "Ana",
		LastName:  "García",
		Role:      entity.RoleBodeguero,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioActivoSinExponerHash(t *testing.T) {
	uc, userRepo := newUseCase()

	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "ana@umb.test", resp.Email)
	assert.Equal(t, entity.RoleBodeguero, resp.Role)
	assert.Equal(t, entity.StatusActive, resp.Status)

	stored, err := userRepo.GetByEmail("ana@umb.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash, "la contraseña nunca se guarda en plano")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado_RetornaErrDuplicate(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_SinRol_AsignaVendedor(t *testing.T) {
	uc, _ := newUseCase()

	req := registerRequest()
	req.Role = ""
	resp, err := uc.Register(req)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendedor, resp.Role, "el rol por defecto es vendedor")
}

func TestRegister_RolDesconocido_RetornaErrInvalidInput(t *testing.T) {
	uc, _ := newUseCase()

	req := registerRequest()
	req.Role = "gerente"
	_, err := uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_EmiteTokenConRol(t *testing.T) {
	uc, _ := newUseCase()

	created, err := uc.Register(registerRequest())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@umb.test", Password: "clave-segura-123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, created.ID, resp.User.ID)

	userID, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role, "el rol viaja en el token")
}

func TestLogin_PasswordIncorrecta_RetornaErrUnauthorized(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@umb.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_RetornaErrUnauthorized(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@umb.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo_RetornaErrForbidden(t *testing.T) {
	uc, userRepo := newUseCase()

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	stored, err := userRepo.GetByEmail("ana@umb.test")
	require.NoError(t, err)
	stored.Status = entity.StatusInactive
	require.NoError(t, userRepo.Create(stored)) // sobrescribe el usuario en el fake

	_, err = uc.Login(dto.LoginRequest{Email: "ana@umb.test", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
