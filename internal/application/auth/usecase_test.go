package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-stock/internal/application/auth"
	"github.com/tu-usuario/almacen-stock/internal/application/dto"
	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/almacen-stock/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

var testJWTCfg = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "almacen-stock-test"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_AltaYEmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "maria@almacen.local",
		Password: "password-seguro",
		Username: "maria",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "active", user.Status)
	assert.NotEmpty(t, user.ID, "el alta debe asignar un UUID")

	// Mismo email otra vez → conflicto
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "maria@almacen.local",
		Password: "otro-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolPorDefectoOperario(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "nuevo@almacen.local",
		Password: "password-seguro",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperario, user.Role,
		"sin rol explícito el alta debe quedar como operario")
	assert.Equal(t, "nuevo@almacen.local", user.Username,
		"sin username explícito se usa el email")
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "x@almacen.local",
		Password: "password-seguro",
		Role:     "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidasEmiteTokenConClaims(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "op@almacen.local",
		Password: "password-seguro",
		Username: "operario1",
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "op@almacen.local", Password: "password-seguro"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "operario1", out.User.Username)

	// El token debe llevar username y rol denormalizados para el ledger y el RBAC.
	userID, username, role, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "operario1", username)
	assert.Equal(t, entity.RoleOperario, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "op@almacen.local",
		Password: "password-seguro",
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "op@almacen.local", Password: "password-equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@almacen.local", Password: "da-igual"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "baja@almacen.local",
		Password: "password-seguro",
	})
	require.NoError(t, err)

	// Desactivar la cuenta directamente en el repo
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	stored.Status = "inactive"
	require.NoError(t, repo.Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@almacen.local", Password: "password-seguro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
