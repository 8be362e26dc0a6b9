package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

func TestParsePaymentMethod_Canonico(t *testing.T) {
	cases := []struct {
		in   string
		want entity.PaymentMethod
	}{
		{"CASH", entity.PaymentCash},
		{"cash", entity.PaymentCash},
		{" credit_card ", entity.PaymentCreditCard},
		{"debit_card", entity.PaymentDebitCard},
		{"pix", entity.PaymentPix},
		{"BANK_SLIP", entity.PaymentBankSlip},
	}
	for _, c := range cases {
		got, ok := entity.ParsePaymentMethod(c.in)
		assert.True(t, ok, "el método %q debe reconocerse", c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestParsePaymentMethod_Desconocido(t *testing.T) {
	for _, in := range []string{"", "check", "crypto", "efectivo"} {
		_, ok := entity.ParsePaymentMethod(in)
		assert.False(t, ok, "el método %q no debe reconocerse", in)
	}
}

func TestPaymentMethod_SoloEfectivoTieneVuelto(t *testing.T) {
	assert.True(t, entity.PaymentCash.IsCash())
	assert.False(t, entity.PaymentCreditCard.IsCash())
	assert.False(t, entity.PaymentPix.IsCash())
}

func TestSaleAggregate_Total(t *testing.T) {
	agg := &entity.SaleAggregate{
		Payment: entity.Payment{Amount: decimal.RequireFromString("30.00")},
	}
	assert.True(t, agg.Total().Equal(decimal.RequireFromString("30.00")),
		"el total del agregado es el monto del pago al commit")
}
