package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdministrator(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdministrator())
	assert.False(t, (&User{Role: RoleUser}).IsAdministrator())
	assert.False(t, (&User{}).IsAdministrator())
}

func TestUserSerializationOmitsPassword(t *testing.T) {
	user := &User{ID: 1, Name: "Ann", Email: "ann@example.com", Password: "secret-hash", Role: RoleUser}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret-hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), "ann@example.com")
}
