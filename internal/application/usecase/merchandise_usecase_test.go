package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

type stubMerchRepo struct {
	items map[string]*entity.Merchandise
}

func (r *stubMerchRepo) Create(m *entity.Merchandise) error { r.items[m.ID] = m; return nil }
func (r *stubMerchRepo) GetByID(id string, includeDeleted bool) (*entity.Merchandise, error) {
	m, ok := r.items[id]
	if !ok || (m.Deleted && !includeDeleted) {
		return nil, nil
	}
	return m, nil
}
func (r *stubMerchRepo) ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.Merchandise, error) {
	var out []*entity.Merchandise
	for _, m := range r.items {
		if m.StoreID == storeID && (!m.Deleted || includeDeleted) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMerchRepo) Update(m *entity.Merchandise) error { r.items[m.ID] = m; return nil }
func (r *stubMerchRepo) SoftDelete(id, actorID string, at time.Time) error { return nil }
func (r *stubMerchRepo) Restore(id string, at time.Time) error             { return nil }

func buildMerchUC() (*stubMerchRepo, *usecase.MerchandiseUseCase) {
	merch := &stubMerchRepo{items: map[string]*entity.Merchandise{}}
	stores := &stubStoreRepo{stores: map[string]*entity.Store{
		"s1": {ID: "s1", Name: "Tienda Centro", Active: true},
		"s2": {ID: "s2", Name: "Tienda Norte", Active: true},
	}}
	return merch, usecase.NewMerchandiseUseCase(merch, stores)
}

func TestMerchandiseCreate_PrecioPositivo(t *testing.T) {
	_, uc := buildMerchUC()

	_, err := uc.Create(manager, dto.CreateMerchandiseRequest{
		Description: "Camiseta", UnitPrice: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio cero se rechaza")

	_, err = uc.Create(manager, dto.CreateMerchandiseRequest{
		Description: "Camiseta", UnitPrice: decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo se rechaza")

	resp, err := uc.Create(manager, dto.CreateMerchandiseRequest{
		Description: "Camiseta", UnitPrice: decimal.RequireFromString("15.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.StoreID, "el manager cataloga en su propia tienda")
	assert.Equal(t, "mgr", resp.UserID, "queda registrado quién catalogó")
}

// El store_id del request no permite a un manager catalogar fuera de su
// tienda: se reemplaza por la suya.
func TestMerchandiseCreate_ManagerNoSaleDeSuTienda(t *testing.T) {
	_, uc := buildMerchUC()

	resp, err := uc.Create(manager, dto.CreateMerchandiseRequest{
		Description: "Gorra", UnitPrice: decimal.RequireFromString("9.90"),
		StoreID: "s2",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.StoreID)
}

func TestMerchandiseCreate_SellerNoCataloga(t *testing.T) {
	_, uc := buildMerchUC()
	seller := entity.Principal{ID: "sel", Role: entity.RoleSeller, StoreID: "s1"}

	_, err := uc.Create(seller, dto.CreateMerchandiseRequest{
		Description: "Camiseta", UnitPrice: decimal.RequireFromString("15.00"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMerchandiseUpdate_AlcancePorTienda(t *testing.T) {
	merch, uc := buildMerchUC()
	merch.items["m1"] = &entity.Merchandise{
		ID: "m1", StoreID: "s2", Description: "Ajeno",
		UnitPrice: decimal.RequireFromString("5.00"),
	}

	nuevoPrecio := decimal.RequireFromString("6.00")
	_, err := uc.Update(manager, "m1", dto.UpdateMerchandiseRequest{UnitPrice: &nuevoPrecio})
	assert.ErrorIs(t, err, domain.ErrForbidden, "mercancía de otra tienda no se edita")

	_, err = uc.Update(admin, "m1", dto.UpdateMerchandiseRequest{UnitPrice: &nuevoPrecio})
	require.NoError(t, err)
	assert.True(t, merch.items["m1"].UnitPrice.Equal(nuevoPrecio))
}

func TestMerchandiseGetByID_Inexistente(t *testing.T) {
	_, uc := buildMerchUC()
	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
