package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
)

func strPtr(s string) *string { return &s }

func TestUsers_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	john := f.user(t, "john", false)

	updated, err := f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{
		Name:     strPtr("  John Doe "),
		Email:    strPtr("John.Doe@Example.com"),
		Password: strPtr("newpass"),
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "john.doe@example.com", updated.Email)

	stored, err := f.svc.Users.Get(f.ctx, john.ID)
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("newpass"))
	assert.Error(t, stored.CheckPassword("123456"))
}

func TestUsers_UpdateProfileKeepsAbsentFields(t *testing.T) {
	f := newFixture(t)
	john := f.user(t, "john", false)

	updated, err := f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Name: strPtr("Johnny")})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)
	assert.Equal(t, john.Email, updated.Email)
	assert.NoError(t, updated.CheckPassword("123456"))
}

func TestUsers_UpdateProfileRejections(t *testing.T) {
	f := newFixture(t)
	john := f.user(t, "john", false)
	f.user(t, "jane", false)

	_, err := f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Email: strPtr("jane@example.com")})
	assertKind(t, err, apperror.ErrConflict, i18n.KeyAuthUserExists)

	_, err = f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Password: strPtr("123")})
	assertKind(t, err, apperror.ErrValidation, i18n.KeyValidationInvalid)

	_, err = f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Email: strPtr("nope")})
	assertKind(t, err, apperror.ErrValidation, i18n.KeyValidationInvalid)
}

func TestUsers_AdminUpdate(t *testing.T) {
	f := newFixture(t)
	john := f.user(t, "john", false)

	promote := true
	updated, err := f.svc.Users.Update(f.ctx, john.ID, &AdminUpdateUserRequest{IsAdmin: &promote})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "john", updated.Name)

	_, err = f.svc.Users.Update(f.ctx, "missing", &AdminUpdateUserRequest{Name: strPtr("x")})
	assertKind(t, err, apperror.ErrNotFound, i18n.KeyUserNotFound)
}

func TestUsers_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin", true)
	other := f.user(t, "boss", true)
	john := f.user(t, "john", false)

	users, err := f.svc.Users.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	assertKind(t, f.svc.Users.Delete(f.ctx, admin, admin.ID), apperror.ErrValidation, i18n.KeyUserDeleteSelf)
	assertKind(t, f.svc.Users.Delete(f.ctx, admin, other.ID), apperror.ErrValidation, i18n.KeyUserDeleteAdmin)
	assertKind(t, f.svc.Users.Delete(f.ctx, admin, "missing"), apperror.ErrNotFound, i18n.KeyUserNotFound)

	require.NoError(t, f.svc.Users.Delete(f.ctx, admin, john.ID))
	_, err = f.svc.Users.Get(f.ctx, john.ID)
	assertKind(t, err, apperror.ErrNotFound, i18n.KeyUserNotFound)
}
