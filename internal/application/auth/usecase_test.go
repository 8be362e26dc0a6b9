package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/auth"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	pkgjwt "github.com/thejohnjohn/SmoothPDV-sub000/pkg/jwt"
)

type stubUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(id string, includeDeleted bool) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *stubUserRepo) List(bool, int, int) ([]*entity.User, error)              { return nil, nil }
func (r *stubUserRepo) ListByStore(string, bool, int, int) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) ListByRole(entity.Role, bool, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Update(u *entity.User) error                  { return nil }
func (r *stubUserRepo) SoftDelete(string, string, time.Time) error   { return nil }
func (r *stubUserRepo) Restore(string, time.Time) error              { return nil }

const (
	secret = "secret-para-tests"
	pass   = "clave-correcta"
)

func buildAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUserRepo{byEmail: map[string]*entity.User{
		"ana@tienda.com": {
			ID: "sel1", StoreID: "s1", Role: entity.RoleSeller,
			Name: "Ana", Email: "ana@tienda.com", PasswordHash: string(hash),
		},
	}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: secret, ExpMinutes: 60, Issuer: "smoothpdv-test",
	})
}

func TestLogin_EmiteTokenConRolYTienda(t *testing.T) {
	uc := buildAuthUC(t)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: pass})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)

	userID, storeID, role, err := pkgjwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "sel1", userID)
	assert.Equal(t, "s1", storeID, "el token lleva la tienda base")
	assert.Equal(t, "SELLER", role)
}

// Credenciales malas y usuario inexistente responden con el mismo error.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := buildAuthUC(t)

	_, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: pass})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente responde igual que contraseña mala")
}

func TestLogin_CamposRequeridos(t *testing.T) {
	uc := buildAuthUC(t)
	_, err := uc.Login(dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrincipalFromClaims(t *testing.T) {
	p, err := auth.PrincipalFromClaims("u1", "s1", "manager")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, p.Role, "el rol queda canónico")
	assert.Equal(t, "s1", p.StoreID)

	_, err = auth.PrincipalFromClaims("u1", "", "root")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
