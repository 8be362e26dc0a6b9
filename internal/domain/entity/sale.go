package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos.
const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
	PaymentBankSlip   PaymentMethod = "BANK_SLIP"
)

// PaymentMethod método de pago cerrado de una venta.
type PaymentMethod string

// ParsePaymentMethod normaliza un método de pago (case-insensitive) a su
// forma canónica en mayúsculas. Devuelve false si no es un método conocido.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCreditCard:
		return PaymentCreditCard, true
	case PaymentDebitCard:
		return PaymentDebitCard, true
	case PaymentPix:
		return PaymentPix, true
	case PaymentBankSlip:
		return PaymentBankSlip, true
	}
	return "", false
}

// IsCash true solo para efectivo (único método con vuelto).
func (m PaymentMethod) IsCash() bool { return m == PaymentCash }

// Estado del pago. No hay liquidación externa: se aprueba al registrar.
const PaymentStatusApproved = "APPROVED"

// Sale cabecera de una venta (raíz del agregado). Una venta committed
// siempre tiene ≥1 línea y exactamente un pago; nunca se persiste parcial.
type Sale struct {
	ID        string
	StoreID   string
	SellerID  string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
	DeletedAt *time.Time
	DeletedBy string
}

// SaleLineItem línea de venta: cantidad y referencia a la mercancía.
// Descripción y precio se des-normalizan solo en lectura (SaleItemView).
type SaleLineItem struct {
	ID            string
	SaleID        string
	MerchandiseID string
	Quantity      int64 // > 0
}

// Payment pago único de una venta. Amount es igual a la suma de subtotales
// al momento del commit; Change solo es > 0 en efectivo.
type Payment struct {
	ID     string
	SaleID string
	Amount decimal.Decimal
	Method PaymentMethod
	Status string
	Change decimal.Decimal
	Note   string
}

// SaleItemView línea de venta con descripción y precio unitario de la
// mercancía al momento de la lectura.
type SaleItemView struct {
	ID            string
	MerchandiseID string
	Description   string
	UnitPrice     decimal.Decimal
	Quantity      int64
	Subtotal      decimal.Decimal
}

// SaleAggregate venta completa para renderizar recibos: cabecera + nombres
// de tienda y vendedor + líneas + pago.
type SaleAggregate struct {
	Sale       Sale
	StoreName  string
	SellerName string
	Items      []SaleItemView
	Payment    Payment
}

// Total monto del pago (suma de subtotales al commit).
func (a *SaleAggregate) Total() decimal.Decimal { return a.Payment.Amount }
