package domain

import "slices"

// Caller is the authenticated identity behind a request, as issued by the external auth layer.
type Caller struct {
	UserID      string
	Permissions []string
}

func (c Caller) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// CanActOn reports whether the caller owns the resource or holds the staff permission for it.
func (c Caller) CanActOn(ownerID, permission string) bool {
	return c.UserID == ownerID || c.HasPermission(permission)
}
