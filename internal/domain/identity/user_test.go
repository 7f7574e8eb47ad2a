package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates user with hashed password", func(t *testing.T) {
		u, err := NewUser(tenantID, "Maria@Example.com", "María Gómez", "secreto123", RoleResident)

		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", u.Email)
		assert.True(t, u.Active)
		assert.NotEqual(t, "secreto123", u.PasswordHash)
		assert.True(t, u.VerifyPassword("secreto123"))
		assert.False(t, u.VerifyPassword("otra-clave"))
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "x", "corta", RoleResident)
		assert.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "no-es-correo", "x", "secreto123", RoleResident)
		assert.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "x", "secreto123", Role("SUPERUSER"))
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.com", "x", "secreto123", RoleStaff)
	require.NoError(t, err)

	t.Run("requires correct current password", func(t *testing.T) {
		assert.Error(t, u.ChangePassword("equivocada", "nueva-clave-1"))
	})

	t.Run("replaces the hash", func(t *testing.T) {
		require.NoError(t, u.ChangePassword("secreto123", "nueva-clave-1"))
		assert.True(t, u.VerifyPassword("nueva-clave-1"))
		assert.False(t, u.VerifyPassword("secreto123"))
	})
}

func TestUser_Lifecycle(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.com", "x", "secreto123", RoleReception)
	require.NoError(t, err)

	require.NoError(t, u.Deactivate())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Deactivate())

	require.NoError(t, u.Activate())
	assert.True(t, u.CanLogin())
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleComplexAdmin.IsAdmin())
	assert.False(t, RoleStaff.IsAdmin())

	assert.True(t, RoleStaff.IsStaff())
	assert.True(t, RoleReception.IsStaff())
	assert.False(t, RoleResident.IsStaff())
	assert.False(t, RoleAdmin.IsStaff())
}
