package models

import (
	"time"
)

// Profile represents an account profile
type Profile struct {
	ID        string    `json:"id" db:"id"`
	GrugName  string    `json:"grug_name,omitempty" db:"grug_name"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
