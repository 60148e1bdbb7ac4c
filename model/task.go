// model/task.go
package model

import (
	"time"

	"github.com/Madruu/astrocode-project/util/money"
)

// Task is a service offering owned by a PROVIDER account.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price"`
	ProviderID  int64        `json:"provider_id"`
	CreatedAt   time.Time    `json:"created_at"`
}
