package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// MerchandiseUseCase reglas de negocio para el catálogo: un MANAGER crea y
// edita solo dentro de su tienda; ADMIN en cualquiera.
type MerchandiseUseCase struct {
	repo      repository.MerchandiseRepository
	storeRepo repository.StoreRepository
}

// NewMerchandiseUseCase construye el caso de uso.
func NewMerchandiseUseCase(repo repository.MerchandiseRepository, storeRepo repository.StoreRepository) *MerchandiseUseCase {
	return &MerchandiseUseCase{repo: repo, storeRepo: storeRepo}
}

// Create cataloga un artículo con precio unitario > 0.
func (uc *MerchandiseUseCase) Create(p entity.Principal, in dto.CreateMerchandiseRequest) (*dto.MerchandiseResponse, error) {
	storeID := in.StoreID
	if p.Role.IsManager() {
		storeID = p.StoreID // un manager solo cataloga en su tienda
	}
	if err := authz.CanManageMerchandise(p, storeID); err != nil {
		return nil, err
	}
	if in.Description == "" {
		return nil, domain.NewValidationError("description es requerida")
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("unit_price debe ser mayor que cero")
	}
	store, err := uc.storeRepo.GetByID(storeID, false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	m := &entity.Merchandise{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		UserID:      p.ID,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return merchandiseToResponse(m), nil
}

// GetByID resuelve un artículo del catálogo; id desconocido es NOT_FOUND
// tipado, nunca un nil silencioso.
func (uc *MerchandiseUseCase) GetByID(id string) (*dto.MerchandiseResponse, error) {
	m, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return merchandiseToResponse(m), nil
}

// ListByStore catálogo de una tienda. Cualquier rol con alcance a la tienda
// puede listar; managers quedan fijados a la suya.
func (uc *MerchandiseUseCase) ListByStore(p entity.Principal, storeID string, page dto.PageRequest) ([]dto.MerchandiseResponse, error) {
	if !p.CanAccessAllStores() {
		storeID = p.StoreID
	}
	if !authz.SameStore(p, storeID) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	items, err := uc.repo.ListByStore(storeID, false, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MerchandiseResponse, 0, len(items))
	for _, m := range items {
		out = append(out, *merchandiseToResponse(m))
	}
	return out, nil
}

// Update edita descripción o precio bajo el mismo alcance que Create.
func (uc *MerchandiseUseCase) Update(p entity.Principal, id string, in dto.UpdateMerchandiseRequest) (*dto.MerchandiseResponse, error) {
	m, err := uc.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.CanManageMerchandise(p, m.StoreID); err != nil {
		return nil, err
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if !in.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidationError("unit_price debe ser mayor que cero")
		}
		m.UnitPrice = *in.UnitPrice
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return merchandiseToResponse(m), nil
}

func merchandiseToResponse(m *entity.Merchandise) *dto.MerchandiseResponse {
	return &dto.MerchandiseResponse{
		ID:          m.ID,
		StoreID:     m.StoreID,
		UserID:      m.UserID,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Deleted:     m.Deleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
