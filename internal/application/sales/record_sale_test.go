package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + TxRunner con semántica transaccional real
// (los writes de fn solo se aplican al estado base si fn no retorna error).
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	merch    map[string]*entity.Merchandise
	sales    map[string]*entity.Sale
	items    map[string][]*entity.SaleLineItem
	payments map[string]*entity.Payment

	storeNames map[string]string
	userNames  map[string]string

	// failOnPayment inyecta un fallo en el último insert de la tx para
	// verificar que no queda nada persistido.
	failOnPayment bool
}

func newMemDB() *memDB {
	return &memDB{
		merch:      map[string]*entity.Merchandise{},
		sales:      map[string]*entity.Sale{},
		items:      map[string][]*entity.SaleLineItem{},
		payments:   map[string]*entity.Payment{},
		storeNames: map[string]string{},
		userNames:  map[string]string{},
	}
}

func (db *memDB) clone() *memDB {
	c := newMemDB()
	for k, v := range db.merch {
		c.merch[k] = v
	}
	for k, v := range db.sales {
		c.sales[k] = v
	}
	for k, v := range db.items {
		c.items[k] = append([]*entity.SaleLineItem(nil), v...)
	}
	for k, v := range db.payments {
		c.payments[k] = v
	}
	c.storeNames = db.storeNames
	c.userNames = db.userNames
	c.failOnPayment = db.failOnPayment
	return c
}

type memMerchRepo struct{ db *memDB }

func (r *memMerchRepo) Create(m *entity.Merchandise) error { r.db.merch[m.ID] = m; return nil }
func (r *memMerchRepo) GetByID(id string, includeDeleted bool) (*entity.Merchandise, error) {
	m, ok := r.db.merch[id]
	if !ok || (m.Deleted && !includeDeleted) {
		return nil, nil
	}
	return m, nil
}
func (r *memMerchRepo) ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.Merchandise, error) {
	var out []*entity.Merchandise
	for _, m := range r.db.merch {
		if m.StoreID == storeID && (!m.Deleted || includeDeleted) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMerchRepo) Update(m *entity.Merchandise) error { r.db.merch[m.ID] = m; return nil }
func (r *memMerchRepo) SoftDelete(id, actorID string, at time.Time) error {
	if m, ok := r.db.merch[id]; ok {
		m.Deleted = true
		m.DeletedAt = &at
		m.DeletedBy = actorID
	}
	return nil
}
func (r *memMerchRepo) Restore(id string, at time.Time) error {
	if m, ok := r.db.merch[id]; ok {
		m.Deleted = false
		m.DeletedAt = nil
		m.DeletedBy = ""
	}
	return nil
}

type memSaleRepo struct{ db *memDB }

func (r *memSaleRepo) Create(s *entity.Sale) error { r.db.sales[s.ID] = s; return nil }
func (r *memSaleRepo) CreateItems(items []*entity.SaleLineItem) error {
	for _, it := range items {
		r.db.items[it.SaleID] = append(r.db.items[it.SaleID], it)
	}
	return nil
}
func (r *memSaleRepo) CreatePayment(p *entity.Payment) error {
	if r.db.failOnPayment {
		return errors.New("fallo inyectado en el insert del pago")
	}
	r.db.payments[p.SaleID] = p
	return nil
}
func (r *memSaleRepo) GetByID(id string, includeDeleted bool) (*entity.Sale, error) {
	s, ok := r.db.sales[id]
	if !ok || (s.Deleted && !includeDeleted) {
		return nil, nil
	}
	return s, nil
}
func (r *memSaleRepo) GetAggregate(id string) (*entity.SaleAggregate, error) {
	s, ok := r.db.sales[id]
	if !ok {
		return nil, nil
	}
	agg := &entity.SaleAggregate{
		Sale:       *s,
		StoreName:  r.db.storeNames[s.StoreID],
		SellerName: r.db.userNames[s.SellerID],
	}
	for _, it := range r.db.items[id] {
		m := r.db.merch[it.MerchandiseID]
		agg.Items = append(agg.Items, entity.SaleItemView{
			ID:            it.ID,
			MerchandiseID: it.MerchandiseID,
			Description:   m.Description,
			UnitPrice:     m.UnitPrice,
			Quantity:      it.Quantity,
			Subtotal:      m.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}
	if p, ok := r.db.payments[id]; ok {
		agg.Payment = *p
	}
	return agg, nil
}
func (r *memSaleRepo) List(scope authz.Scope, f repository.SaleFilter, includeDeleted bool) ([]*entity.SaleAggregate, error) {
	var out []*entity.SaleAggregate
	for id, s := range r.db.sales {
		if s.Deleted && !includeDeleted {
			continue
		}
		if !scope.All {
			if scope.StoreID != "" && s.StoreID != scope.StoreID {
				continue
			}
			if scope.SellerID != "" && s.SellerID != scope.SellerID {
				continue
			}
		}
		agg, _ := r.GetAggregate(id)
		out = append(out, agg)
	}
	return out, nil
}
func (r *memSaleRepo) SoftDelete(id, actorID string, at time.Time) error {
	if s, ok := r.db.sales[id]; ok {
		s.Deleted = true
		s.DeletedAt = &at
		s.DeletedBy = actorID
	}
	return nil
}
func (r *memSaleRepo) Restore(id string, at time.Time) error {
	if s, ok := r.db.sales[id]; ok {
		s.Deleted = false
		s.DeletedAt = nil
		s.DeletedBy = ""
	}
	return nil
}

// memTxRunner aplica fn sobre un clon del estado y solo hace commit (copia
// al estado base) si fn no retorna error. Imita el Begin/Rollback/Commit
// del runner real.
type memTxRunner struct{ db *memDB }

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	merchRepo repository.MerchandiseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx := tr.db.clone()
	if err := fn(&memMerchRepo{db: tx}, &memSaleRepo{db: tx}); err != nil {
		return err
	}
	*tr.db = *tx
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: una tienda con dos artículos y un vendedor.
// ──────────────────────────────────────────────────────────────────────────────

const (
	tiendaID    = "store-1"
	otraTienda  = "store-2"
	vendedorID  = "seller-1"
	articuloID  = "merch-1"
	articulo2ID = "merch-2"
	ajenoID     = "merch-ajeno"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildFixture() (*memDB, *sales.RecordSaleUseCase) {
	db := newMemDB()
	db.storeNames[tiendaID] = "Tienda Centro"
	db.userNames[vendedorID] = "Ana Vendedora"
	db.merch[articuloID] = &entity.Merchandise{
		ID: articuloID, StoreID: tiendaID, Description: "Camiseta", UnitPrice: price("15.00"),
	}
	db.merch[articulo2ID] = &entity.Merchandise{
		ID: articulo2ID, StoreID: tiendaID, Description: "Gorra", UnitPrice: price("9.90"),
	}
	db.merch[ajenoID] = &entity.Merchandise{
		ID: ajenoID, StoreID: otraTienda, Description: "Ajeno", UnitPrice: price("5.00"),
	}
	uc := sales.NewRecordSaleUseCase(&memTxRunner{db: db}, &memSaleRepo{db: db})
	return db, uc
}

func vendedor() entity.Principal {
	return entity.Principal{ID: vendedorID, Role: entity.RoleSeller, StoreID: tiendaID}
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta rápida
// ──────────────────────────────────────────────────────────────────────────────

// Camino feliz en efectivo: 2 × 15.00 con 40.00 entregados → total 30.00,
// vuelto 10.00, agregado completo persistido.
func TestRecordSale_EfectivoConVuelto(t *testing.T) {
	db, uc := buildFixture()

	resp, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:          []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		PaymentMethod:  "CASH",
		AmountTendered: ptr(price("40.00")),
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(price("30.00")), "el total debe ser 30.00, fue %s", resp.Total)
	assert.True(t, resp.Payment.Change.Equal(price("10.00")), "el vuelto debe ser 10.00, fue %s", resp.Payment.Change)
	assert.Equal(t, "APPROVED", resp.Payment.Status)
	assert.Equal(t, "Tienda Centro", resp.StoreName)
	assert.Equal(t, "Ana Vendedora", resp.SellerName)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Subtotal.Equal(price("30.00")))

	// Persistencia: cabecera, líneas y pago presentes.
	assert.Len(t, db.sales, 1, "debe haber exactamente una venta persistida")
	assert.Len(t, db.payments, 1)
}

// El precio siempre sale del catálogo: varias líneas se suman con el precio
// vigente, nunca con montos del cliente.
func TestRecordSale_TotalDesdeElCatalogo(t *testing.T) {
	_, uc := buildFixture()

	resp, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{
			{MerchandiseID: articuloID, Quantity: 1},
			{MerchandiseID: articulo2ID, Quantity: 3},
		},
		PaymentMethod: "PIX",
	})
	require.NoError(t, err)

	// 15.00 + 3×9.90 = 44.70
	assert.True(t, resp.Total.Equal(price("44.70")), "total esperado 44.70, fue %s", resp.Total)
	assert.True(t, resp.Payment.Change.IsZero(), "métodos no-efectivo nunca tienen vuelto")
}

// Efectivo insuficiente: 20.00 para un total de 30.00 → error de validación
// con el faltante y cero filas persistidas.
func TestRecordSale_EfectivoInsuficiente(t *testing.T) {
	db, uc := buildFixture()

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:          []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		PaymentMethod:  "CASH",
		AmountTendered: ptr(price("20.00")),
	})
	require.Error(t, err)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr, "debe ser un error de validación tipado")
	assert.True(t, valErr.Shortfall.Equal(price("10.00")), "el faltante debe ser 10.00, fue %s", valErr.Shortfall)
	assert.Empty(t, db.sales, "una venta rechazada no persiste ninguna fila")
	assert.Empty(t, db.payments)
}

// Efectivo sin monto entregado → validación.
func TestRecordSale_EfectivoSinMontoEntregado(t *testing.T) {
	_, uc := buildFixture()

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 1}},
		PaymentMethod: "CASH",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Mercancía de otra tienda → FORBIDDEN y cero filas.
func TestRecordSale_MercanciaDeOtraTienda(t *testing.T) {
	db, uc := buildFixture()

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: ajenoID, Quantity: 1}},
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, db.sales, "el rechazo por alcance no persiste nada")
}

// Mercancía inexistente o borrada → NOT_FOUND.
func TestRecordSale_MercanciaInexistente(t *testing.T) {
	_, uc := buildFixture()

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: "no-existe", Quantity: 1}},
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_MercanciaBorrada(t *testing.T) {
	db, uc := buildFixture()
	now := time.Now()
	db.merch[articuloID].Deleted = true
	db.merch[articuloID].DeletedAt = &now

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 1}},
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "mercancía borrada no es vendible")
}

// Venta vacía y cantidades no positivas → validación.
func TestRecordSale_EntradasInvalidas(t *testing.T) {
	_, uc := buildFixture()

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin ítems")

	_, err = uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 0}},
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 1}},
		PaymentMethod: "CHEQUE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago desconocido")
}

// ADMIN no tiene tienda base: no registra ventas.
func TestRecordSale_AdminNoRegistra(t *testing.T) {
	_, uc := buildFixture()
	admin := entity.Principal{ID: "adm", Role: entity.RoleAdmin}

	_, err := uc.RecordSale(context.Background(), admin, dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 1}},
		PaymentMethod: "PIX",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un MANAGER con tienda sí registra ventas en la suya.
func TestRecordSale_ManagerRegistraEnSuTienda(t *testing.T) {
	_, uc := buildFixture()
	manager := entity.Principal{ID: "mgr", Role: entity.RoleManager, StoreID: tiendaID}

	resp, err := uc.RecordSale(context.Background(), manager, dto.RecordSaleRequest{
		Items:         []dto.SaleItemRequest{{MerchandiseID: articulo2ID, Quantity: 1}},
		PaymentMethod: "DEBIT_CARD",
	})
	require.NoError(t, err)
	assert.Equal(t, "mgr", resp.SellerID, "la venta queda atribuida a quien la registró")
}

// Atomicidad: un fallo en el último insert de la tx deja cero filas.
func TestRecordSale_FalloEnPago_NadaPersistido(t *testing.T) {
	db, uc := buildFixture()
	db.failOnPayment = true

	_, err := uc.RecordSale(context.Background(), vendedor(), dto.RecordSaleRequest{
		Items:          []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		PaymentMethod:  "CASH",
		AmountTendered: ptr(price("40.00")),
	})
	require.Error(t, err)
	assert.Empty(t, db.sales, "el rollback no deja cabecera")
	assert.Empty(t, db.items, "el rollback no deja líneas")
	assert.Empty(t, db.payments, "el rollback no deja pago")
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta guiada
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordGuidedSale_MontoCoincide(t *testing.T) {
	_, uc := buildFixture()

	resp, err := uc.RecordGuidedSale(context.Background(), vendedor(), dto.GuidedSaleRequest{
		Items: []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		Payment: dto.GuidedPaymentRequest{
			Method: "credit_card",
			Amount: price("30.00"),
			Note:   "3 cuotas",
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(price("30.00")))
	assert.Equal(t, "CREDIT_CARD", resp.Payment.Method, "el método queda canónico")
	assert.Equal(t, "3 cuotas", resp.Payment.Note)
}

// El monto declarado por el caller debe coincidir con el calculado por el
// servidor; si no, la venta se rechaza completa.
func TestRecordGuidedSale_MontoNoCoincide(t *testing.T) {
	db, uc := buildFixture()

	_, err := uc.RecordGuidedSale(context.Background(), vendedor(), dto.GuidedSaleRequest{
		Items: []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		Payment: dto.GuidedPaymentRequest{
			Method: "CREDIT_CARD",
			Amount: price("25.00"), // total real: 30.00
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, db.sales)
}

// Guiada en efectivo: exige monto entregado suficiente igual que la rápida.
func TestRecordGuidedSale_EfectivoValidaSuficiencia(t *testing.T) {
	_, uc := buildFixture()

	_, err := uc.RecordGuidedSale(context.Background(), vendedor(), dto.GuidedSaleRequest{
		Items: []dto.SaleItemRequest{{MerchandiseID: articuloID, Quantity: 2}},
		Payment: dto.GuidedPaymentRequest{
			Method:         "CASH",
			Amount:         price("30.00"),
			AmountTendered: ptr(price("10.00")),
		},
	})
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.True(t, valErr.Shortfall.Equal(price("20.00")))
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
