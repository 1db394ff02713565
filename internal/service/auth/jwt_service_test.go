package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		Algorithm:            "HS256",
		TokenLifetimeMinutes: 30,
		BcryptCost:           4,
	}
}

func newTestService(t *testing.T, cfg config.AuthConfig, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(cfg, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	_, err := NewJWTService(cfg)
	require.NoError(t, err)

	short := cfg
	short.JWTSecret = "too-short"
	_, err = NewJWTService(short)
	assert.Error(t, err)

	noLifetime := cfg
	noLifetime.TokenLifetimeMinutes = 0
	_, err = NewJWTService(noLifetime)
	assert.Error(t, err)

	badAlg := cfg
	badAlg.Algorithm = "RS256"
	_, err = NewJWTService(badAlg)
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testAuthConfig(), fixedTime)

	token, err := svc.GenerateToken(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UsesConfiguredAlgorithm(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			cfg := testAuthConfig()
			cfg.Algorithm = alg
			svc := newTestService(t, cfg, time.Now())

			token, err := svc.GenerateToken(context.Background(), "ada@example.com")
			require.NoError(t, err)

			parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
			require.NoError(t, err)
			assert.Equal(t, alg, parsed.Method.Alg())
		})
	}
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := testAuthConfig()

	tests := []struct {
		name      string
		setupFunc func() (*hmacJWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (*hmacJWTService, string) {
				svc := newTestService(t, cfg, fixedTime)
				token, _ := svc.GenerateToken(context.Background(), "ada@example.com")
				return svc, token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (*hmacJWTService, string) {
				genSvc := newTestService(t, cfg, fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), "ada@example.com")
				return newTestService(t, cfg, fixedTime.Add(31*time.Minute)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "token issued in the future",
			setupFunc: func() (*hmacJWTService, string) {
				svc := newTestService(t, cfg, fixedTime)
				claims := jwt.RegisteredClaims{
					Subject:   "ada@example.com",
					NotBefore: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(2 * time.Hour)),
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				return svc, token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong secret",
			setupFunc: func() (*hmacJWTService, string) {
				other := cfg
				other.JWTSecret = "wrong-secret-that-is-long-enough-for-testing"
				token, _ := newTestService(t, other, fixedTime).GenerateToken(context.Background(), "ada@example.com")
				return newTestService(t, cfg, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "different algorithm",
			setupFunc: func() (*hmacJWTService, string) {
				other := cfg
				other.Algorithm = "HS512"
				token, _ := newTestService(t, other, fixedTime).GenerateToken(context.Background(), "ada@example.com")
				return newTestService(t, cfg, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			setupFunc: func() (*hmacJWTService, string) {
				claims := jwt.RegisteredClaims{Subject: "ada@example.com"}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				return newTestService(t, cfg, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (*hmacJWTService, string) {
				return newTestService(t, cfg, fixedTime), "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (*hmacJWTService, string) {
				return newTestService(t, cfg, fixedTime), ""
			},
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, token := tt.setupFunc()
			claims, err := svc.ValidateToken(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", claims.Subject)
		})
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testAuthConfig(), time.Now())
	token, err := svc.GenerateToken(context.Background(), "ada@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	other, err := svc.GenerateToken(context.Background(), "eve@example.com")
	require.NoError(t, err)
	parts[1] = strings.Split(other, ".")[1]

	_, err = svc.ValidateToken(context.Background(), strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIsAuthenticationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAuthenticationError(ErrMissingToken))
	assert.True(t, IsAuthenticationError(ErrExpiredToken))
	assert.True(t, IsAuthenticationError(ErrUnknownSubject))
	assert.True(t, IsAuthenticationError(ErrMissingSubject))
	assert.False(t, IsAuthenticationError(assert.AnError))
}
