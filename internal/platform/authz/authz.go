// Package authz holds the ownership policy for user-scoped resources.
//
// The set of actions and resource kinds is closed, so the policy is a pair
// of pure functions instead of an open-ended voter mechanism. Admin-only
// capabilities are a separate role check, independent of ownership.
package authz

import (
	"github.com/google/uuid"

	"github.com/kmazurek/saldo/internal/platform/user"
)

// Action is a capability on a user-scoped resource
type Action int

const (
	ActionView Action = iota
	ActionEdit
	ActionDelete
)

// String returns the action name for logs
func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// CanAccessWallet reports whether the actor may perform the action on a
// wallet owned by ownerID. All actions require ownership.
func CanAccessWallet(_ Action, ownerID, actorID uuid.UUID) bool {
	return ownerID != uuid.Nil && ownerID == actorID
}

// CanAccessTransaction reports whether the actor may perform the action on a
// transaction. Transaction ownership is transitive through its wallet, so
// walletOwnerID is the owning wallet's user.
func CanAccessTransaction(action Action, walletOwnerID, actorID uuid.UUID) bool {
	return CanAccessWallet(action, walletOwnerID, actorID)
}

// IsAdmin reports whether the user may perform admin-only actions
// (account management, full user listing).
func IsAdmin(u *user.User) bool {
	return u != nil && u.IsAdmin()
}
