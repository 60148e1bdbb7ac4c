package task

import "github.com/Madruu/astrocode-project/util/money"

type CreateTaskReq struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price" validate:"gte=0"`
}

type UpdateTaskReq struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price" validate:"gte=0"`
}
