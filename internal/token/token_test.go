package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/pkg/apperror"
)

func testUser(roles ...string) *model.User {
	u := &model.User{Email: "owner@example.com"}
	u.ID = uuid.New()
	for _, r := range roles {
		u.Roles = append(u.Roles, model.UserRole{Role: r})
	}
	return u
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService([]byte("secret"), time.Hour)
	user := testUser("Admin", "Member", "Auditor")

	raw, err := svc.Issue(user)
	require.NoError(t, err)

	p, err := svc.Verify(raw)
	require.NoError(t, err)

	assert.Equal(t, user.ID, p.ID)
	assert.Equal(t, user.Email, p.Email)
	assert.True(t, p.Roles.Has(access.RoleAdmin))
	assert.Equal(t, []string{"Admin", "Member"}, p.Roles.Strings())
}

func TestVerifyRejects(t *testing.T) {
	svc := NewService([]byte("secret"), time.Hour)
	valid, err := svc.Issue(testUser("Member"))
	require.NoError(t, err)

	expired := NewService([]byte("secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Issue(testUser("Member"))
	require.NoError(t, err)

	otherKey, err := NewService([]byte("other"), time.Hour).Issue(testUser("Member"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":     "abc.def.ghi",
		"empty":       "",
		"expired":     stale,
		"wrong key":   otherKey,
		"alg none":    noneAlg,
		"bad subject": badSubject,
		"tampered":    spliceSignature(otherKey, valid),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(raw)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindInvalidCredential))
			assert.Equal(t, InvalidMessage, err.Error())
		})
	}
}

// spliceSignature puts the signature of sigFrom onto the header and body of body.
func spliceSignature(body, sigFrom string) string {
	b := strings.Split(body, ".")
	s := strings.Split(sigFrom, ".")
	return b[0] + "." + b[1] + "." + s[2]
}
