package model

import (
	"time"

	"github.com/Madruu/astrocode-project/util/money"
)

type AccountType string

const (
	AccountUser     AccountType = "USER"
	AccountProvider AccountType = "PROVIDER"
)

type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	AccountType  AccountType  `json:"account_type"`
	Balance      money.Amount `json:"balance"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SignupReq represents user registration payload
// swagger:model SignupReq
type SignupReq struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	AccountType string `json:"account_type" validate:"omitempty,oneof=USER PROVIDER"`
}

// SigninReq represents login payload
// swagger:model SigninReq
type SigninReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
