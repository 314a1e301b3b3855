package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored shopper record, including the password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        *string
	Address      *string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// CreateUserDTO holds the data the directory needs to add a shopper.
type CreateUserDTO struct {
	Name         string
	Email        string
	Phone        *string
	Address      *string
	PasswordHash string
}

func FromUser(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func (c CreateUserDTO) toUser(id uuid.UUID, now time.Time) *User {
	return &User{
		ID:           id,
		Name:         c.Name,
		Email:        NormalizeEmail(c.Email),
		Phone:        c.Phone,
		Address:      c.Address,
		PasswordHash: c.PasswordHash,
		CreatedAt:    now,
	}
}
