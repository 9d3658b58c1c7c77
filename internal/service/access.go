package service

import (
	"github.com/O-Gamal/FIlePlace/internal/model"
)

// HasAccess decides whether a resolved user may act within a scope. A scope
// is either an organization the user belongs to or the user's own personal
// scope, derived from their token identifier.
//
// Every read and write that takes a scope runs through this check. Callers
// on the read path degrade a failure to an empty result; callers on the
// write path surface ErrForbidden.
func HasAccess(user *model.User, scope string) bool {
	if user == nil || scope == "" {
		return false
	}
	return user.IsOrgMember(scope) || user.IsPersonalScope(scope)
}
