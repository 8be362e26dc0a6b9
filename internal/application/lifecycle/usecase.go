package lifecycle

import (
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// Kind entidad sobre la que opera el ciclo de vida de borrado lógico.
type Kind string

// Entidades con borrado lógico.
const (
	KindStore       Kind = "store"
	KindUser        Kind = "user"
	KindMerchandise Kind = "merchandise"
	KindSale        Kind = "sale"
)

// ParseKind normaliza el tipo de entidad. Devuelve false si no es conocido.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStore, KindUser, KindMerchandise, KindSale:
		return Kind(s), true
	}
	return "", false
}

// UseCase borrado lógico y restauración sobre las entidades principales.
// SoftDelete marca deleted/deletedAt/deletedBy; Restore los limpia solo si
// la fila está borrada. Las lecturas por defecto de los repos excluyen
// filas borradas salvo includeDeleted explícito.
type UseCase struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	merchRepo repository.MerchandiseRepository
	saleRepo  repository.SaleRepository
}

// NewUseCase construye el caso de uso con los cuatro puertos.
func NewUseCase(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	merchRepo repository.MerchandiseRepository,
	saleRepo repository.SaleRepository,
) *UseCase {
	return &UseCase{storeRepo: storeRepo, userRepo: userRepo, merchRepo: merchRepo, saleRepo: saleRepo}
}

// SoftDelete borra lógicamente la entidad indicada. La autorización depende
// del tipo y, para usuarios, del rol del borrado.
func (uc *UseCase) SoftDelete(p entity.Principal, kind Kind, id string) error {
	now := time.Now()
	switch kind {
	case KindStore:
		return uc.softDeleteStore(p, id, now)
	case KindUser:
		return uc.softDeleteUser(p, id, now)
	case KindMerchandise:
		return uc.softDeleteMerchandise(p, id, now)
	case KindSale:
		// El core no borra ventas; el mecanismo queda disponible para ADMIN.
		if err := authz.CanManageStores(p); err != nil {
			return err
		}
		sale, err := uc.saleRepo.GetByID(id, false)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		return uc.saleRepo.SoftDelete(id, p.ID, now)
	}
	return domain.NewValidationError("tipo de entidad desconocido: " + string(kind))
}

// softDeleteStore una tienda no se borra mientras tenga usuarios, mercancía
// o ventas activas: el chequeo consulta las tres relaciones y falla con un
// error agregado nombrando cada bloqueo.
func (uc *UseCase) softDeleteStore(p entity.Principal, id string, now time.Time) error {
	if err := authz.CanManageStores(p); err != nil {
		return err
	}
	store, err := uc.storeRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	blockers, err := uc.storeRepo.Dependents(id)
	if err != nil {
		return err
	}
	if len(blockers) > 0 {
		return &domain.DependencyError{Resource: "tienda " + id, Blockers: blockers}
	}
	return uc.storeRepo.SoftDelete(id, p.ID, now)
}

func (uc *UseCase) softDeleteUser(p entity.Principal, id string, now time.Time) error {
	user, err := uc.userRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	switch user.Role {
	case entity.RoleSeller:
		if err := authz.CanManageSellers(p, user.StoreID); err != nil {
			return err
		}
	default:
		// Managers, admins y customers solo los administra un ADMIN.
		if err := authz.CanManageManagers(p); err != nil {
			return err
		}
	}
	return uc.userRepo.SoftDelete(id, p.ID, now)
}

func (uc *UseCase) softDeleteMerchandise(p entity.Principal, id string, now time.Time) error {
	m, err := uc.merchRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := authz.CanManageMerchandise(p, m.StoreID); err != nil {
		return err
	}
	return uc.merchRepo.SoftDelete(id, p.ID, now)
}

// Restore limpia los campos de borrado (solo ADMIN, solo si la fila está
// borrada). Restaurar una tienda también la reactiva.
func (uc *UseCase) Restore(p entity.Principal, kind Kind, id string) error {
	if err := authz.CanRestore(p); err != nil {
		return err
	}
	now := time.Now()
	switch kind {
	case KindStore:
		store, err := uc.storeRepo.GetByID(id, true)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrNotFound
		}
		if !store.Deleted {
			return domain.ErrConflict
		}
		return uc.storeRepo.Restore(id, now)
	case KindUser:
		user, err := uc.userRepo.GetByID(id, true)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if !user.Deleted {
			return domain.ErrConflict
		}
		return uc.userRepo.Restore(id, now)
	case KindMerchandise:
		m, err := uc.merchRepo.GetByID(id, true)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if !m.Deleted {
			return domain.ErrConflict
		}
		return uc.merchRepo.Restore(id, now)
	case KindSale:
		sale, err := uc.saleRepo.GetByID(id, true)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if !sale.Deleted {
			return domain.ErrConflict
		}
		return uc.saleRepo.Restore(id, now)
	}
	return domain.NewValidationError("tipo de entidad desconocido: " + string(kind))
}
