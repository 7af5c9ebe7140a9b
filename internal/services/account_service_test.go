package services

import (
	"strconv"
	"testing"

	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "foo@bar.com", want: "foo@bar.com"},
		{name: "mixed case", input: "Foo@Bar.com", want: "foo@bar.com"},
		{name: "surrounding whitespace", input: "  Foo@Bar.com  ", want: "foo@bar.com"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.input)
			assert.Equal(t, tt.want, got)
			// Normalization is idempotent.
			assert.Equal(t, got, NormalizeEmail(got))
		})
	}
}

func TestRegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	user, err := svc.Register("  Foo@Bar.com  ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", user.Email)
	assert.False(t, user.Verified)
	assert.Equal(t, DefaultFreeUses, user.FreeUses)

	code, err := strconv.Atoi(user.VerificationCode)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, code, 100000)
	assert.LessOrEqual(t, code, 999999)

	// A different spelling of the same address is the same identity.
	_, err = svc.Register("foo@bar.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The first registration is untouched by the failed second one.
	stored, err := svc.GetUser("FOO@bar.com")
	require.NoError(t, err)
	assert.Equal(t, user.VerificationCode, stored.VerificationCode)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	_, err := svc.Register("", "pw")
	assert.Error(t, err)

	_, err = svc.Register("a@b.com", "")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	user, err := svc.Register("a@b.com", "pw1")
	require.NoError(t, err)

	err = svc.Verify("a@b.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	stored, err := svc.GetUser("a@b.com")
	require.NoError(t, err)
	assert.False(t, stored.Verified, "wrong code must leave the account unverified")

	err = svc.Verify("missing@b.com", user.VerificationCode)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Mixed-case email with the right code verifies.
	require.NoError(t, svc.Verify("A@B.com", user.VerificationCode))

	stored, err = svc.GetUser("a@b.com")
	require.NoError(t, err)
	assert.True(t, stored.Verified)

	// Re-verifying an already-verified account still succeeds.
	require.NoError(t, svc.Verify("a@b.com", user.VerificationCode))
}

func TestAuthenticate(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	user, err := svc.Register("a@b.com", "pw1")
	require.NoError(t, err)

	// Existing but unverified is its own outcome, distinct from bad
	// credentials.
	_, err = svc.Authenticate("a@b.com", "pw1")
	assert.ErrorIs(t, err, ErrAccountNotVerified)

	_, err = svc.Authenticate("nobody@b.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Verify("a@b.com", user.VerificationCode))

	_, err = svc.Authenticate("a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.Authenticate("a@b.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestResetPassword(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	err := svc.ResetPassword("nobody@b.com", "newpw")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, err := svc.Register("a@b.com", "oldpw")
	require.NoError(t, err)
	require.NoError(t, svc.Verify("a@b.com", user.VerificationCode))

	require.NoError(t, svc.ResetPassword(" A@B.com ", "newpw"))

	_, err = svc.Authenticate("a@b.com", "oldpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("a@b.com", "newpw")
	assert.NoError(t, err)
}

func TestConsumeFreeUseFloorsAtZero(t *testing.T) {
	svc := NewAccountService(newTestDB(t), testConfig())

	_, err := svc.Register("a@b.com", "pw1")
	require.NoError(t, err)

	free, err := svc.FreeUses("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 2, free)

	want := []int{1, 0, 0}
	for _, expected := range want {
		got, err := svc.ConsumeFreeUse("a@b.com")
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}

	_, err = svc.ConsumeFreeUse("nobody@b.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testConfig())

	user, err := svc.Register("a@b.com", "pw1")
	require.NoError(t, err)
	require.NoError(t, svc.Verify("a@b.com", user.VerificationCode))

	pair, err := svc.IssueTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	next, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The first refresh token was revoked by the rotation.
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(next.RefreshToken))
	_, err = svc.Refresh(next.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("revoked = ?", false).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
