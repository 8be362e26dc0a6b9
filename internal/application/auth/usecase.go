package auth

import (
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
	"github.com/thejohnjohn/SmoothPDV-sub000/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login: compara bcrypt y emite el token con rol y tienda.
// El core de ventas nunca ve credenciales, solo el Principal resultante.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login valida credenciales contra filas no borradas y emite el JWT.
// Credenciales malas y usuario inexistente responden igual.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.NewValidationError("email y password son requeridos")
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.StoreID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      string(user.Role),
			StoreID:   user.StoreID,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}

// PrincipalFromClaims arma el Principal a partir de claims ya verificados.
func PrincipalFromClaims(userID, storeID, role string) (entity.Principal, error) {
	r, ok := entity.ParseRole(role)
	if !ok {
		return entity.Principal{}, domain.ErrUnauthorized
	}
	return entity.Principal{ID: userID, Role: r, StoreID: storeID}, nil
}
