package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// StoreUseCase reglas de negocio para tiendas (solo ADMIN administra).
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda activa.
func (uc *StoreUseCase) Create(p entity.Principal, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if err := authz.CanManageStores(p); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name es requerido")
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return storeToResponse(store), nil
}

// GetByID obtiene una tienda (lectura abierta a cualquier rol autenticado).
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return storeToResponse(store), nil
}

// List lista tiendas no borradas. includeDeleted solo para ADMIN.
func (uc *StoreUseCase) List(p entity.Principal, includeDeleted bool, page dto.PageRequest) ([]dto.StoreResponse, error) {
	if includeDeleted {
		if err := authz.CanManageStores(p); err != nil {
			return nil, err
		}
	}
	page.DefaultPage()
	stores, err := uc.repo.List(includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *storeToResponse(s))
	}
	return out, nil
}

// Update actualiza campos opcionales de la tienda.
func (uc *StoreUseCase) Update(p entity.Principal, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	if err := authz.CanManageStores(p); err != nil {
		return nil, err
	}
	store, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.TaxID != nil {
		store.TaxID = *in.TaxID
	}
	if in.Email != nil {
		store.Email = *in.Email
	}
	if in.Phone != nil {
		store.Phone = *in.Phone
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.Active != nil {
		store.Active = *in.Active
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return storeToResponse(store), nil
}

func storeToResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		Active:    s.Active,
		Deleted:   s.Deleted,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
