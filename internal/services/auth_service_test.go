package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
)

func TestAuth_RegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t)

	reg, err := f.svc.Auth.Register(f.ctx, &RegisterRequest{Name: " Jane ", Email: "Jane@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", reg.Name)
	assert.Equal(t, "jane@example.com", reg.Email)
	assert.False(t, reg.IsAdmin)
	assert.NotEmpty(t, reg.Token)

	login, err := f.svc.Auth.Login(f.ctx, &LoginRequest{Email: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	user, err := f.svc.Auth.Authenticate(f.ctx, "Bearer "+login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, user.ID)
}

func TestAuth_RegisterDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(f.ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.svc.Auth.Register(f.ctx, &RegisterRequest{Name: "B", Email: "A@example.com", Password: "secret2"})
	assertKind(t, err, apperror.ErrConflict, i18n.KeyAuthUserExists)
}

func TestAuth_RegisterValidates(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(f.ctx, &RegisterRequest{Name: "  ", Email: "not-an-email", Password: "123"})
	assertKind(t, err, apperror.ErrValidation, i18n.KeyValidationInvalid)
	assert.NotEmpty(t, apperror.Details(err))
}

func TestAuth_LoginFailuresAreUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.user(t, "john", false)

	_, err := f.svc.Auth.Login(f.ctx, &LoginRequest{Email: "john@example.com", Password: "wrong-password"})
	assertKind(t, err, apperror.ErrUnauthorized, i18n.KeyAuthInvalidCredentials)

	_, err = f.svc.Auth.Login(f.ctx, &LoginRequest{Email: "nobody@example.com", Password: "123456"})
	assertKind(t, err, apperror.ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
}

func TestAuth_AuthenticateRejectsBadHeaders(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "john", false)
	login, err := f.svc.Auth.Login(f.ctx, &LoginRequest{Email: u.Email, Password: "123456"})
	require.NoError(t, err)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt", login.Token} {
		_, err := f.svc.Auth.Authenticate(f.ctx, header)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized, "header %q", header)
	}

	// A deleted user's token stops working.
	require.NoError(t, f.store.Users.Delete(f.ctx, u.ID))
	_, err = f.svc.Auth.Authenticate(f.ctx, "Bearer "+login.Token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuth_RequireAdmin(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.svc.Auth.RequireAdmin(f.user(t, "admin", true)))
	assertKind(t, f.svc.Auth.RequireAdmin(f.user(t, "john", false)), apperror.ErrForbidden, i18n.KeyAdminAccessDenied)
	assert.ErrorIs(t, f.svc.Auth.RequireAdmin(nil), apperror.ErrForbidden)
}

func TestUsers_DeleteRules(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin", true)
	other := f.user(t, "root", true)
	john := f.user(t, "john", false)

	assertKind(t, f.svc.Users.Delete(f.ctx, admin, admin.ID), apperror.ErrValidation, i18n.KeyUserDeleteSelf)
	assertKind(t, f.svc.Users.Delete(f.ctx, admin, other.ID), apperror.ErrValidation, i18n.KeyUserDeleteAdmin)
	require.NoError(t, f.svc.Users.Delete(f.ctx, admin, john.ID))
	assertKind(t, f.svc.Users.Delete(f.ctx, admin, john.ID), apperror.ErrNotFound, i18n.KeyUserNotFound)
}

func TestUsers_UpdateProfileKeepsEmailUnique(t *testing.T) {
	f := newFixture(t)
	john := f.user(t, "john", false)
	f.user(t, "jane", false)

	taken := "JANE@example.com"
	_, err := f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Email: &taken})
	assertKind(t, err, apperror.ErrConflict, i18n.KeyAuthUserExists)

	name := "Johnny"
	password := "newpass"
	updated, err := f.svc.Users.UpdateProfile(f.ctx, john, &UpdateProfileRequest{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)

	_, err = f.svc.Auth.Login(f.ctx, &LoginRequest{Email: john.Email, Password: "newpass"})
	assert.NoError(t, err)
}
