package model

import (
	"time"
)

// Audit contains the server-controlled audit fields shared by all records.
// created_at/created_by are stamped once at insert, updated_at/updated_by on
// every subsequent write. The *_by fields are nullable because deleting a
// user nulls the reference instead of cascading.
type Audit struct {
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	CreatedBy *int64     `json:"-" db:"created_by"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	UpdatedBy *int64     `json:"-" db:"updated_by"`
}

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps page parameters to sane bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Limit returns the SQL LIMIT for the page.
func (p Pagination) Limit() int { return p.PageSize }

// Offset returns the SQL OFFSET for the page.
func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }
