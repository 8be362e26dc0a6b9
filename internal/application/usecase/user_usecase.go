package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase reglas de negocio para usuarios: un MANAGER administra los
// vendedores de su tienda; managers y tiendas las administra un ADMIN.
type UserUseCase struct {
	repo      repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, storeRepo repository.StoreRepository) *UserUseCase {
	return &UserUseCase{repo: repo, storeRepo: storeRepo}
}

// Create crea un manager o seller. El rol del creador decide el alcance:
// MANAGER solo crea sellers en su tienda; ADMIN crea cualquiera.
func (uc *UserUseCase) Create(p entity.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("rol inválido: " + in.Role)
	}
	storeID := in.StoreID
	switch role {
	case entity.RoleSeller:
		if p.Role.IsManager() {
			storeID = p.StoreID // un manager solo crea en su tienda
		}
		if err := authz.CanManageSellers(p, storeID); err != nil {
			return nil, err
		}
	case entity.RoleManager:
		if err := authz.CanManageManagers(p); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewValidationError("solo se crean managers y sellers por esta vía")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.NewValidationError("name, email y password son requeridos")
	}
	store, err := uc.storeRepo.GetByID(storeID, false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		StoreID:      storeID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// GetByID obtiene un usuario dentro del alcance del principal.
func (uc *UserUseCase) GetByID(p entity.Principal, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if p.ID != user.ID && !authz.SameStore(p, user.StoreID) {
		return nil, domain.ErrForbidden
	}
	return userToResponse(user), nil
}

// ListSellers vendedores de una tienda (MANAGER su tienda, ADMIN cualquiera).
func (uc *UserUseCase) ListSellers(p entity.Principal, storeID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	if p.Role.IsManager() {
		storeID = p.StoreID
	}
	if err := authz.CanManageSellers(p, storeID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.repo.ListByStore(storeID, false, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		if u.Role.IsSeller() {
			out = append(out, *userToResponse(u))
		}
	}
	return out, nil
}

// ListManagers managers del sistema (solo ADMIN). Excluye borrados.
func (uc *UserUseCase) ListManagers(p entity.Principal, page dto.PageRequest) ([]dto.UserResponse, error) {
	if err := authz.CanManageManagers(p); err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.repo.ListByRole(entity.RoleManager, false, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResponse(u))
	}
	return out, nil
}

// Update actualiza nombre, email o password de un usuario bajo el mismo
// alcance que el borrado.
func (uc *UserUseCase) Update(p entity.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Role.IsSeller() {
		if err := authz.CanManageSellers(p, user.StoreID); err != nil {
			return nil, err
		}
	} else if err := authz.CanManageManagers(p); err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		StoreID:   u.StoreID,
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
