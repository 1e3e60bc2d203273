package auth

import (
	"errors"
)

var (
	ErrUnauthorized = errors.New("unauthorized: insufficient permissions")
)

// Role definitions
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Permission definitions
const (
	PermissionViewHistory  = "history:read"
	PermissionViewStats    = "stats:read"
	PermissionTriggerSweep = "sweep:trigger"
)

// RolePermissions maps roles to their allowed permissions
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermissionViewHistory,
		PermissionViewStats,
		PermissionTriggerSweep,
	},
	RoleViewer: {
		PermissionViewHistory,
		PermissionViewStats,
	},
}

// HasPermission checks if user roles include the required permission
func HasPermission(userRoles []string, requiredPermission string) bool {
	for _, role := range userRoles {
		permissions, exists := RolePermissions[role]
		if !exists {
			continue
		}

		for _, perm := range permissions {
			if perm == requiredPermission {
				return true
			}
		}
	}
	return false
}
