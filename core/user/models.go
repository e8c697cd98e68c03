package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// Identity builds the session principal for this user.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin learner"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Name = core.CleanString(nu.Name)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	if pv := core.ValidatePassword(nu.Password); !pv.IsValid {
		flds := make([]core.FieldError, 0, len(pv.Errors))
		for _, msg := range pv.Errors {
			flds = append(flds, core.FieldError{Field: "password", Error: msg})
		}
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// UpdateUser defines what information may be provided to modify an existing
// User. Zero-valued fields are left untouched.
type UpdateUser struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"omitempty,oneof=admin learner"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Email = core.CleanString(uu.Email, true /* lower */)
	uu.Name = core.CleanString(uu.Name)

	if err := validate.Struct(uu); err != nil {
		return err
	}
	if uu.Password != "" {
		if pv := core.ValidatePassword(uu.Password); !pv.IsValid {
			flds := make([]core.FieldError, 0, len(pv.Errors))
			for _, msg := range pv.Errors {
				flds = append(flds, core.FieldError{Field: "password", Error: msg})
			}
			return core.NewValidationError(nil, flds...)
		}
	}
	return nil
}
