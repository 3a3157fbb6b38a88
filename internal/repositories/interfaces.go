package repositories

import (
	"time"

	"github.com/internlink/internship-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole `json:"role"`
	Query     string           `json:"q"` // matches name or email, case-insensitive
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "created_at", "full_name", "email"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type InternshipFilters struct {
	ActiveOnly bool   `json:"active_only"`
	CreatedBy  *uint  `json:"created_by"`
	Query      string `json:"q"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

type DueTaskFilters struct {
	From     time.Time           `json:"from"`
	To       time.Time           `json:"to"`
	Statuses []models.TaskStatus `json:"statuses"`
}
