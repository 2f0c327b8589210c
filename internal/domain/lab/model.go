package lab

import (
	"time"

	"github.com/google/uuid"
)

// Facility maps to the lab_facility table.
type Facility struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Service maps to the lab_service table. Price is stored in the
// facility's minor currency unit.
type Service struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FacilityID uuid.UUID `db:"facility_id" json:"facility_id"`
	Name       string    `db:"name" json:"name"`
	Category   string    `db:"category" json:"category,omitempty"`
	Price      float64   `db:"price" json:"price"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
