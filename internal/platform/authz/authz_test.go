package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kmazurek/saldo/internal/platform/authz"
	"github.com/kmazurek/saldo/internal/platform/user"
)

func TestCanAccessWallet(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	actions := []authz.Action{authz.ActionView, authz.ActionEdit, authz.ActionDelete}

	for _, action := range actions {
		t.Run(action.String(), func(t *testing.T) {
			assert.True(t, authz.CanAccessWallet(action, owner, owner))
			assert.False(t, authz.CanAccessWallet(action, owner, stranger))
			assert.False(t, authz.CanAccessWallet(action, uuid.Nil, uuid.Nil),
				"a wallet without an owner is accessible to nobody")
		})
	}
}

func TestCanAccessTransaction(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	// Transaction access follows the owning wallet's owner
	assert.True(t, authz.CanAccessTransaction(authz.ActionEdit, owner, owner))
	assert.False(t, authz.CanAccessTransaction(authz.ActionEdit, owner, stranger))
	assert.False(t, authz.CanAccessTransaction(authz.ActionView, uuid.Nil, owner))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, authz.IsAdmin(&user.User{Role: user.RoleAdmin}))
	assert.False(t, authz.IsAdmin(&user.User{Role: user.RoleUser}))
	assert.False(t, authz.IsAdmin(nil))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "view", authz.ActionView.String())
	assert.Equal(t, "edit", authz.ActionEdit.String())
	assert.Equal(t, "delete", authz.ActionDelete.String())
	assert.Equal(t, "unknown", authz.Action(42).String())
}
