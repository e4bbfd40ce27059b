package services

import (
	"errors"
	"strings"
	"time"

	"github.com/andresouzadev/sindigo/internal/models"
)

// WipeConfirmationPhrase must be typed verbatim by the operator before the
// store is cleared. The wipe keeps settings and users; everything else goes.
const WipeConfirmationPhrase = "APAGAR TUDO"

var (
	ErrUsernameRequired = errors.New("username required")
	ErrPasswordRequired = errors.New("password required")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUserNotFound     = errors.New("user not found")
	ErrLastAdmin        = errors.New("cannot remove the last admin account")
	ErrWipeNotConfirmed = errors.New("wipe confirmation phrase mismatch")
)

type UserRepositoryPort interface {
	List() ([]models.User, error)
	FindByID(userID uint) (*models.User, error)
	Count() (int64, error)
	Create(user *models.User) error
	Update(userID uint, updates map[string]any) (int64, error)
	Delete(userID uint) (int64, error)
}

type MaintenancePort interface {
	WipeTransactionalData() error
}

type UserInput struct {
	Username string
	Password string
	Role     string
}

type AdminService struct {
	users       UserRepositoryPort
	maintenance MaintenancePort
}

func NewAdminService(users UserRepositoryPort, maintenance MaintenancePort) *AdminService {
	return &AdminService{users: users, maintenance: maintenance}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}

func (service *AdminService) ListUsers() ([]models.User, error) {
	return service.users.List()
}

// CreateUser stores the password exactly as given. Credentials are plain
// strings throughout this system; see the login path for the matching
// comparison.
func (service *AdminService) CreateUser(input UserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	user := models.User{
		Username:  username,
		Password:  input.Password,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (service *AdminService) UpdateUser(userID uint, updates map[string]any) error {
	if role, present := updates["role"]; present {
		value, _ := role.(string)
		if !validRole(value) {
			return ErrInvalidRole
		}
		if value != models.RoleAdmin {
			demoting, err := service.isLastAdmin(userID)
			if err != nil {
				return err
			}
			if demoting {
				return ErrLastAdmin
			}
		}
	}
	if password, present := updates["password"]; present {
		value, _ := password.(string)
		if value == "" {
			return ErrPasswordRequired
		}
	}

	affected, err := service.users.Update(userID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser refuses to remove the only remaining admin so the system can
// never lock itself out of its own administration.
func (service *AdminService) DeleteUser(userID uint) error {
	last, err := service.isLastAdmin(userID)
	if err != nil {
		return err
	}
	if last {
		return ErrLastAdmin
	}

	affected, err := service.users.Delete(userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (service *AdminService) isLastAdmin(userID uint) (bool, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Role != models.RoleAdmin {
		return false, nil
	}

	all, err := service.users.List()
	if err != nil {
		return false, err
	}
	admins := 0
	for _, candidate := range all {
		if candidate.Role == models.RoleAdmin {
			admins++
		}
	}
	return admins <= 1, nil
}

// Wipe clears every transactional table in one transaction. Settings and
// user accounts survive: the operator stays logged in and the syndicate
// identity stays configured after the reset.
func (service *AdminService) Wipe(confirmation string) error {
	if confirmation != WipeConfirmationPhrase {
		return ErrWipeNotConfirmed
	}
	return service.maintenance.WipeTransactionalData()
}
