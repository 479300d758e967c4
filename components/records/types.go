package records

import (
	"strings"
	"time"

	"github.com/goliatone/go-admin-dashboard/components/display"
)

// DateLayout is the calendar date format used for LastLogin in exports.
const DateLayout = "2006-01-02"

// All is the filter sentinel that imposes no role/status constraint.
const All = "all"

// Role classifies an account.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleUser   Role = "User"
)

// Roles lists the known roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleUser}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// Status tracks whether an account is enabled.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Statuses lists the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Record is a single user/account row.
type Record struct {
	ID        int       `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Role      Role      `json:"role" yaml:"role"`
	Status    Status    `json:"status" yaml:"status"`
	LastLogin time.Time `json:"last_login" yaml:"last_login"`
}

// Initials derives the avatar label from the record name.
func (r Record) Initials() string {
	return display.Initials(r.Name)
}

// RecordFields is a partial record used by add and update. Nil fields are
// left untouched on update.
type RecordFields struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Role      *Role      `json:"role,omitempty"`
	Status    *Status    `json:"status,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// merge applies the non-nil fields onto r and returns the result.
func (f RecordFields) merge(r Record) Record {
	if f.Name != nil {
		r.Name = strings.TrimSpace(*f.Name)
	}
	if f.Email != nil {
		r.Email = strings.TrimSpace(*f.Email)
	}
	if f.Role != nil {
		r.Role = *f.Role
	}
	if f.Status != nil {
		r.Status = *f.Status
	}
	if f.LastLogin != nil {
		r.LastLogin = *f.LastLogin
	}
	return r
}

// Filter holds the composable view filters. Role and Status accept the All
// sentinel (or empty) for "no constraint"; any other value is compared
// verbatim, so unknown values yield an empty view.
type Filter struct {
	Search string `json:"search"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// SortKey names the record field the view is ordered by.
type SortKey string

const (
	SortNone      SortKey = ""
	SortID        SortKey = "id"
	SortName      SortKey = "name"
	SortEmail     SortKey = "email"
	SortRole      SortKey = "role"
	SortStatus    SortKey = "status"
	SortLastLogin SortKey = "last_login"
)

// Valid reports whether k is a supported sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortID, SortName, SortEmail, SortRole, SortStatus, SortLastLogin:
		return true
	}
	return false
}

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active single-key ordering.
type Sort struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// ExportRow is the flat, serializable shape handed to export collaborators.
type ExportRow struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"last_login"`
}

// Row flattens the record for export.
func (r Record) Row() ExportRow {
	row := ExportRow{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Role:   string(r.Role),
		Status: string(r.Status),
	}
	if !r.LastLogin.IsZero() {
		row.LastLogin = r.LastLogin.Format(DateLayout)
	}
	return row
}

// PageView is one page of the view plus the state that produced it.
type PageView struct {
	Records  []Record `json:"records"`
	Page     int      `json:"page"`
	Size     int      `json:"size"`
	Total    int      `json:"total"`
	Pages    int      `json:"pages"`
	Selected []int    `json:"selected"`
	Filter   Filter   `json:"filter"`
	Sort     Sort     `json:"sort"`
}
