package models

import "strings"

// AuditAction names a mutation recorded in the audit trail. The suffix after
// the verb is the resource type, e.g. CREATE_EXPENSE touches an "expense".
type AuditAction string

const (
	AuditCreateExpense AuditAction = "CREATE_EXPENSE"
	AuditUpdateExpense AuditAction = "UPDATE_EXPENSE"
	AuditDeleteExpense AuditAction = "DELETE_EXPENSE"
	AuditCreateBudget  AuditAction = "CREATE_BUDGET"
	AuditUpdateBudget  AuditAction = "UPDATE_BUDGET"
	AuditDeleteBudget  AuditAction = "DELETE_BUDGET"
)

// ResourceType returns the lower-cased resource the action applies to.
func (a AuditAction) ResourceType() string {
	_, resource, ok := strings.Cut(string(a), "_")
	if !ok {
		return ""
	}
	return strings.ToLower(resource)
}

// AuditLog records every mutation of a user's expenses and budgets.
type AuditLog struct {
	Base
	OwnerID      string      `gorm:"not null;index" json:"ownerId"`
	Action       AuditAction `gorm:"not null" json:"action"`
	ResourceType string      `gorm:"not null" json:"resourceType"`
	ResourceID   string      `json:"resourceId"`
	IPAddress    string      `json:"ipAddress"`
	Changes      string      `json:"changes,omitempty"`
}
