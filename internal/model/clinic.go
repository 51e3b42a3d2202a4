package model

import (
	"time"
)

type Clinic struct {
	Base
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CreateClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

// ClinicFilter narrows clinic listings. An empty Search matches every clinic.
type ClinicFilter struct {
	Search string `form:"search"`
}
