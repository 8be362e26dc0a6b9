package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// fakeReportRepo captura el scope con el que se le consulta; los reportes
// en sí se calculan en SQL y se prueban contra la base real.
type fakeReportRepo struct {
	lastScope authz.Scope
}

func (r *fakeReportRepo) SalesSummary(ctx context.Context, scope authz.Scope, from, to time.Time) (*repository.SalesSummary, error) {
	r.lastScope = scope
	return &repository.SalesSummary{
		SaleCount:     2,
		GrossTotal:    price("60.00"),
		AverageTicket: price("30.00"),
	}, nil
}
func (r *fakeReportRepo) SalesByDay(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.DailySalesRow, error) {
	r.lastScope = scope
	return []repository.DailySalesRow{
		{Day: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), SaleCount: 2, GrossTotal: price("60.00")},
	}, nil
}
func (r *fakeReportRepo) SalesBySeller(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.SellerSalesRow, error) {
	r.lastScope = scope
	return nil, nil
}
func (r *fakeReportRepo) SalesByPaymentMethod(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.PaymentMethodRow, error) {
	r.lastScope = scope
	return nil, nil
}

// registra una venta de fixture y devuelve su id.
func mustRecord(t *testing.T, uc *sales.RecordSaleUseCase, p entity.Principal) string {
	t.Helper()
	resp, err := uc.RecordSale(context.Background(), p, dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 1}},
		PaymentMethod: "PIX",
	})
	require.NoError(t, err)
	return resp.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSale
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_Propia(t *testing.T) {
	db, recordUC := buildFixture()
	queryUC := sales.NewQueryUseCase(&memSaleRepo{db: db}, &fakeReportRepo{})
	id := mustRecord(t, recordUC, vendedor())

	resp, err := queryUC.GetSale(context.Background(), vendedor(), id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.True(t, resp.Total.Equal(price("15.00")))
}

// Id inexistente → NOT_FOUND; venta existente fuera del alcance → FORBIDDEN
// sin revelar contenido.
func TestGetSale_NotFoundVsForbidden(t *testing.T) {
	db, recordUC := buildFixture()
	queryUC := sales.NewQueryUseCase(&memSaleRepo{db: db}, &fakeReportRepo{})
	id := mustRecord(t, recordUC, vendedor())

	_, err := queryUC.GetSale(context.Background(), vendedor(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otro := entity.Principal{ID: "otro-seller", Role: entity.RoleSeller, StoreID: tiendaID}
	_, err = queryUC.GetSale(context.Background(), otro, id)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"una venta ajena existente es FORBIDDEN, no NOT_FOUND")
}

// Una venta borrada lógicamente desaparece de las lecturas por defecto.
func TestGetSale_BorradaEsNotFound(t *testing.T) {
	db, recordUC := buildFixture()
	saleRepo := &memSaleRepo{db: db}
	queryUC := sales.NewQueryUseCase(saleRepo, &fakeReportRepo{})
	id := mustRecord(t, recordUC, vendedor())

	require.NoError(t, saleRepo.SoftDelete(id, "adm", time.Now()))

	_, err := queryUC.GetSale(context.Background(), vendedor(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListSales — el scope del rol se aplica antes que cualquier filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestListSales_ScopePorRol(t *testing.T) {
	db, recordUC := buildFixture()
	queryUC := sales.NewQueryUseCase(&memSaleRepo{db: db}, &fakeReportRepo{})

	mustRecord(t, recordUC, vendedor())
	otroVendedor := entity.Principal{ID: "sel-2", Role: entity.RoleSeller, StoreID: tiendaID}
	mustRecord(t, recordUC, otroVendedor)

	// SELLER: solo las suyas.
	resp, err := queryUC.ListSales(context.Background(), vendedor(), dto.SaleListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 1, "un seller solo lista sus propias ventas")
	assert.Equal(t, vendedorID, resp.Sales[0].SellerID)

	// MANAGER de la tienda: las dos.
	manager := entity.Principal{ID: "mgr", Role: entity.RoleManager, StoreID: tiendaID}
	resp, err = queryUC.ListSales(context.Background(), manager, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Sales, 2, "un manager lista todas las ventas de su tienda")

	// MANAGER de otra tienda: ninguna.
	ajeno := entity.Principal{ID: "mgr2", Role: entity.RoleManager, StoreID: otraTienda}
	resp, err = queryUC.ListSales(context.Background(), ajeno, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Sales)

	// ADMIN: todas.
	admin := entity.Principal{ID: "adm", Role: entity.RoleAdmin}
	resp, err = queryUC.ListSales(context.Background(), admin, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Sales, 2)

	// CUSTOMER: sin alcance.
	customer := entity.Principal{ID: "cus", Role: entity.RoleCustomer}
	_, err = queryUC.ListSales(context.Background(), customer, dto.SaleListRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes — el scope llega intacto al repositorio
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_ScopeLlegaAlRepositorio(t *testing.T) {
	db, _ := buildFixture()
	reports := &fakeReportRepo{}
	queryUC := sales.NewQueryUseCase(&memSaleRepo{db: db}, reports)

	sum, err := queryUC.SalesSummary(context.Background(), vendedor(), dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.SaleCount)
	assert.Equal(t, vendedorID, reports.lastScope.SellerID,
		"el scope de SELLER acota los reportes a sus ventas")
	assert.Equal(t, tiendaID, reports.lastScope.StoreID)

	admin := entity.Principal{ID: "adm", Role: entity.RoleAdmin}
	_, err = queryUC.SalesByDay(context.Background(), admin, dto.ReportRequest{})
	require.NoError(t, err)
	assert.True(t, reports.lastScope.All, "ADMIN reporta sobre todo el sistema")

	customer := entity.Principal{ID: "cus", Role: entity.RoleCustomer}
	_, err = queryUC.SalesSummary(context.Background(), customer, dto.ReportRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReports_RollupPorDia(t *testing.T) {
	db, _ := buildFixture()
	queryUC := sales.NewQueryUseCase(&memSaleRepo{db: db}, &fakeReportRepo{})
	manager := entity.Principal{ID: "mgr", Role: entity.RoleManager, StoreID: tiendaID}

	rows, err := queryUC.SalesByDay(context.Background(), manager, dto.ReportRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-30", rows[0].Day, "el día sale formateado YYYY-MM-DD")
	assert.True(t, rows[0].GrossTotal.Equal(price("60.00")))
}
