package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

func TestParseRole_Canonico(t *testing.T) {
	cases := []struct {
		in   string
		want entity.Role
	}{
		{"ADMIN", entity.RoleAdmin},
		{"admin", entity.RoleAdmin},
		{" Manager ", entity.RoleManager},
		{"seller", entity.RoleSeller},
		{"CUSTOMER", entity.RoleCustomer},
	}
	for _, c := range cases {
		got, ok := entity.ParseRole(c.in)
		assert.True(t, ok, "el rol %q debe reconocerse", c.in)
		assert.Equal(t, c.want, got, "el rol %q debe normalizarse a %q", c.in, c.want)
	}
}

func TestParseRole_Desconocido(t *testing.T) {
	for _, in := range []string{"", "root", "superuser", "vendedor"} {
		_, ok := entity.ParseRole(in)
		assert.False(t, ok, "el rol %q no debe reconocerse", in)
	}
}

func TestPrincipal_AlcanceDeTiendas(t *testing.T) {
	admin := entity.Principal{ID: "u1", Role: entity.RoleAdmin}
	manager := entity.Principal{ID: "u2", Role: entity.RoleManager, StoreID: "s1"}
	seller := entity.Principal{ID: "u3", Role: entity.RoleSeller, StoreID: "s1"}

	assert.True(t, admin.CanAccessAllStores(), "ADMIN alcanza todas las tiendas")
	assert.False(t, manager.CanAccessAllStores(), "MANAGER solo su tienda")
	assert.False(t, seller.CanAccessAllStores(), "SELLER solo su tienda")
	assert.Empty(t, admin.HomeStoreID(), "ADMIN no tiene tienda base")
	assert.Equal(t, "s1", seller.HomeStoreID())
}

func TestUserValidate_InvarianteDeTienda(t *testing.T) {
	seller := &entity.User{ID: "u1", Role: entity.RoleSeller}
	assert.Error(t, seller.Validate(), "un seller sin tienda base es inválido")

	seller.StoreID = "s1"
	assert.NoError(t, seller.Validate())

	admin := &entity.User{ID: "u2", Role: entity.RoleAdmin, StoreID: "s1"}
	assert.Error(t, admin.Validate(), "un admin con tienda base es inválido")

	admin.StoreID = ""
	assert.NoError(t, admin.Validate())
}
