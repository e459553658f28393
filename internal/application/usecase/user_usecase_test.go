package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-stock/internal/application/dto"
	"github.com/tu-usuario/almacen-stock/internal/application/usecase"
	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, id, role string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: id, Email: id + "@almacen.local", Username: id, Role: role,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUpdate_CambioDeRol(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "u1", entity.RoleOperario)
	uc := usecase.NewUserUseCase(repo)

	rol := entity.RoleAdmin
	out, err := uc.Update(ctx, "u1", dto.UpdateUserRequest{Role: &rol})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestUserUpdate_SuperadminEsInmutable(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "root", entity.RoleSuperadmin)
	uc := usecase.NewUserUseCase(repo)

	rol := entity.RoleOperario
	_, err := uc.Update(ctx, "root", dto.UpdateUserRequest{Role: &rol})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"el rol superadmin no se puede degradar desde el panel")
}

func TestUserUpdate_RolInvalido(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "u1", entity.RoleOperario)
	uc := usecase.NewUserUseCase(repo)

	rol := "gerente"
	_, err := uc.Update(ctx, "u1", dto.UpdateUserRequest{Role: &rol})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// superadmin tampoco se asigna por esta vía
	rol = entity.RoleSuperadmin
	_, err = uc.Update(ctx, "u1", dto.UpdateUserRequest{Role: &rol})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete_SuperadminBloqueado(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "root", entity.RoleSuperadmin)
	seedUser(t, repo, "u1", entity.RoleOperario)
	uc := usecase.NewUserUseCase(repo)

	assert.ErrorIs(t, uc.Delete(ctx, "root"), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, "u1"))

	_, err := uc.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdate_StatusInvalido(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "u1", entity.RoleOperario)
	uc := usecase.NewUserUseCase(repo)

	status := "suspendido"
	_, err := uc.Update(ctx, "u1", dto.UpdateUserRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
