package services

import (
	"strings"

	"github.com/internlink/internship-service/internal/models"
)

// RequireRole checks that a resolved identity holds one of the allowed
// roles. It is a pure function of (user.Role, roles); comparisons are on the
// canonical role value.
func RequireRole(user *models.User, roles ...models.UserRole) error {
	if user == nil {
		return ErrCredentialMissing
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return NewPermissionError(user.ID, "operation", "perform", "requires "+roleList(roles)+" role")
}

// RequireSelfOrRole allows the operation when the actor is the target user
// or holds one of the elevated roles. Used for self-scoped reads like
// "view my feedback".
func RequireSelfOrRole(user *models.User, targetID uint, roles ...models.UserRole) error {
	if user == nil {
		return ErrCredentialMissing
	}
	if user.ID == targetID {
		return nil
	}
	return RequireRole(user, roles...)
}

func roleList(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
