package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/currytech/internal/common"
)

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"

	DefaultTokenTTL time.Duration = 30 * 24 * time.Hour
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	tokens *TokenMaker
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
