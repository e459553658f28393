package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-stock/internal/application/auth"
	"github.com/tu-usuario/almacen-stock/internal/application/dto"
	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
)

// UserUseCase gestión de usuarios para el panel de administración (superadmin).
// El alta pasa por auth.UseCase.RegisterUser; aquí van listado, edición y baja.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario. ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update edita username, role o status. El rol superadmin no se puede quitar
// desde el panel (igual que la columna bloqueada de la tabla original).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Username != nil && *in.Username != "" {
		user.Username = *in.Username
	}
	if in.Role != nil {
		if user.Role == entity.RoleSuperadmin {
			return nil, domain.ErrForbidden
		}
		switch *in.Role {
		case entity.RoleAdmin, entity.RoleOperario:
			user.Role = *in.Role
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case "active", "inactive":
			user.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. Los superadmin no se borran desde el panel.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == entity.RoleSuperadmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}
