package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func newTestJWTService(t *testing.T, clock *fakeClock) *jwtService {
	t.Helper()

	svc, err := newJWTService(testSecret, 30*24*time.Hour, clock.Now)
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	jwtService := newTestJWTService(t, clock)

	userID := uuid.New()

	token, err := jwtService.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := jwtService.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// Still valid one second before expiry.
	clock.current = clock.current.Add(30*24*time.Hour - time.Second)
	got, err = jwtService.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_Expired(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	jwtService := newTestJWTService(t, clock)

	token, err := jwtService.Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		advance time.Duration
	}{
		{name: "exactly at expiry", advance: 30 * 24 * time.Hour},
		{name: "long after expiry", advance: 90 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.current = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(tt.advance)

			_, err := jwtService.Verify(token)
			assert.ErrorIs(t, err, service.ErrExpiredToken)
		})
	}
}

func TestJWTService_AnyAlteredByteIsInvalid(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	jwtService := newTestJWTService(t, clock)

	token, err := jwtService.Issue(uuid.New())
	require.NoError(t, err)

	for i := range len(token) {
		altered := []byte(token)
		if altered[i] == 'A' {
			altered[i] = 'B'
		} else {
			altered[i] = 'A'
		}

		_, err := jwtService.Verify(string(altered))
		assert.ErrorIs(t, err, service.ErrInvalidToken, "byte %d altered", i)
	}
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	jwtService := newTestJWTService(t, clock)

	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret":      otherSecret,
		"none algorithm":    noneAlg,
		"unexpected hmac":   hs512,
		"subject not an id": badSubject,
		"missing expiry":    noExpiry,
		"garbage":           "clearly-not-a-jwt-token-format",
		"empty":             "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := jwtService.Verify(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestJWTService_SameSecondTokensDiffer(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	jwtService := newTestJWTService(t, clock)
	userID := uuid.New()

	first, err := jwtService.Issue(userID)
	require.NoError(t, err)
	second, err := jwtService.Issue(userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_TTLFromConfig(t *testing.T) {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: testSecret},
		Auth:      &config.AuthConfig{TokenTTL: 2 * time.Hour},
	}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, jwtService.TTL())

	cfg.Auth = nil
	jwtService, err = NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, jwtService.TTL())
}
