package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// RecordSaleUseCase registra ventas de forma transaccional: valida cada
// ítem contra el catálogo, calcula total y vuelto con precios autoritativos
// y persiste cabecera, líneas y pago como una sola unidad.
//
// Venta rápida y venta guiada comparten este único builder: la guiada trae
// el pago pre-armado por el caller, pero alcance de tienda, método de pago
// y totales se validan igual en ambos caminos.
type RecordSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository // atado al pool, para la relectura post-commit
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// saleItemInput ítem ya validado en forma.
type saleItemInput struct {
	MerchandiseID string
	Quantity      int64
}

// paymentInput pago normalizado. Amount != nil solo en venta guiada: el
// caller declaró el total y debe coincidir con el calculado aquí.
type paymentInput struct {
	Method         entity.PaymentMethod
	Amount         *decimal.Decimal
	AmountTendered *decimal.Decimal
	Note           string
}

// RecordSale venta rápida: el servidor calcula total y vuelto.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, p entity.Principal, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	method, ok := entity.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, domain.NewValidationError("método de pago inválido: " + in.PaymentMethod)
	}
	return uc.record(ctx, p, toItems(in.Items), paymentInput{
		Method:         method,
		AmountTendered: in.AmountTendered,
		Note:           in.Note,
	})
}

// RecordGuidedSale venta guiada: pago explícito del caller. El monto
// declarado debe coincidir con el total calculado por el servidor.
func (uc *RecordSaleUseCase) RecordGuidedSale(ctx context.Context, p entity.Principal, in dto.GuidedSaleRequest) (*dto.SaleResponse, error) {
	method, ok := entity.ParsePaymentMethod(in.Payment.Method)
	if !ok {
		return nil, domain.NewValidationError("método de pago inválido: " + in.Payment.Method)
	}
	amount := in.Payment.Amount
	return uc.record(ctx, p, toItems(in.Items), paymentInput{
		Method:         method,
		Amount:         &amount,
		AmountTendered: in.Payment.AmountTendered,
		Note:           in.Payment.Note,
	})
}

// record núcleo transaccional compartido.
//
// Orden de los pasos: toda validación sin efectos (forma, método, alcance
// por ítem, suficiencia de efectivo) ocurre antes de cualquier insert, pero
// los totales se calculan dentro de la misma transacción leyendo el precio
// vigente del catálogo: el precio del cliente nunca se usa y una edición
// concurrente del catálogo no produce lecturas rotas.
func (uc *RecordSaleUseCase) record(ctx context.Context, p entity.Principal, items []saleItemInput, pay paymentInput) (*dto.SaleResponse, error) {
	if err := authz.CanRecordSale(p); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.NewValidationError("venta vacía: se requiere al menos un ítem")
	}
	for _, it := range items {
		if it.MerchandiseID == "" || it.Quantity <= 0 {
			return nil, domain.NewValidationError("ítem inválido: mercancía y cantidad positiva requeridas")
		}
	}

	now := time.Now()
	saleID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		merchRepo repository.MerchandiseRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Resolver cada ítem contra el catálogo y acumular el total
		// con el precio vigente dentro de la tx.
		total := decimal.Zero
		lines := make([]*entity.SaleLineItem, 0, len(items))
		for _, it := range items {
			m, err := merchRepo.GetByID(it.MerchandiseID, false)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("mercancía %s: %w", it.MerchandiseID, domain.ErrNotFound)
			}
			if !authz.SameStore(p, m.StoreID) {
				return fmt.Errorf("mercancía %s de otra tienda: %w", it.MerchandiseID, domain.ErrForbidden)
			}
			subtotal := m.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
			total = total.Add(subtotal)
			lines = append(lines, &entity.SaleLineItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				MerchandiseID: it.MerchandiseID,
				Quantity:      it.Quantity,
			})
		}

		// 2) Validación del pago contra el total calculado.
		change := decimal.Zero
		if pay.Method.IsCash() {
			if pay.AmountTendered == nil {
				return domain.NewValidationError("venta en efectivo requiere monto entregado")
			}
			if pay.AmountTendered.LessThan(total) {
				return &domain.ValidationError{
					Reason:    "efectivo insuficiente",
					Shortfall: total.Sub(*pay.AmountTendered),
				}
			}
			// Clamp defensivo: la validación ya garantiza no-negativo,
			// pero protege contra un cambio de precio entre validación
			// y commit dentro de la misma tx.
			change = decimal.Max(decimal.Zero, pay.AmountTendered.Sub(total))
		}
		if pay.Amount != nil && !pay.Amount.Equal(total) {
			return domain.NewValidationError(fmt.Sprintf(
				"el monto del pago (%s) no coincide con el total calculado (%s)",
				pay.Amount.StringFixed(2), total.StringFixed(2)))
		}

		// 3) Persistir: cabecera, líneas en batch, pago único.
		sale := &entity.Sale{
			ID:        saleID,
			StoreID:   p.StoreID,
			SellerID:  p.ID,
			Date:      now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		if err := saleRepo.CreateItems(lines); err != nil {
			return err
		}
		payment := &entity.Payment{
			ID:     uuid.New().String(),
			SaleID: saleID,
			Amount: total,
			Method: pay.Method,
			Status: entity.PaymentStatusApproved,
			Change: change,
			Note:   pay.Note,
		}
		return saleRepo.CreatePayment(payment)
	})
	if err != nil {
		return nil, err
	}

	// 4) Relectura del agregado completo para el recibo.
	agg, err := uc.saleRepo.GetAggregate(saleID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, fmt.Errorf("venta %s recién creada: %w", saleID, domain.ErrNotFound)
	}
	return aggregateToResponse(agg), nil
}

func toItems(in []dto.SaleItemRequest) []saleItemInput {
	items := make([]saleItemInput, 0, len(in))
	for _, it := range in {
		items = append(items, saleItemInput{MerchandiseID: it.MerchandiseID, Quantity: it.Quantity})
	}
	return items
}

func aggregateToResponse(agg *entity.SaleAggregate) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         agg.Sale.ID,
		Date:       agg.Sale.Date,
		StoreID:    agg.Sale.StoreID,
		StoreName:  agg.StoreName,
		SellerID:   agg.Sale.SellerID,
		SellerName: agg.SellerName,
		Items:      make([]dto.SaleItemResponse, 0, len(agg.Items)),
		Payment: dto.PaymentResponse{
			ID:     agg.Payment.ID,
			Amount: agg.Payment.Amount,
			Method: string(agg.Payment.Method),
			Status: agg.Payment.Status,
			Change: agg.Payment.Change,
			Note:   agg.Payment.Note,
		},
		Total: agg.Total(),
	}
	for _, it := range agg.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            it.ID,
			MerchandiseID: it.MerchandiseID,
			Description:   it.Description,
			UnitPrice:     it.UnitPrice,
			Quantity:      it.Quantity,
			Subtotal:      it.Subtotal,
		})
	}
	return resp
}
