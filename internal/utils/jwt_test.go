package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestVerifyToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	t.Run("success", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS256, claims, []byte(testSecret))
		got, err := VerifyToken(requestWithToken(token), testSecret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["sub"] != "42" {
			t.Fatalf("unexpected claims: %v", got)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if _, err := VerifyToken(requestWithToken(""), testSecret); !errors.Is(err, ErrMissingAuthHeader) {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("no bearer prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		if _, err := VerifyToken(req, testSecret); !errors.Is(err, ErrMissingAuthHeader) {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS256, claims, []byte("other"))
		if _, err := VerifyToken(requestWithToken(token), testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(-time.Minute).Unix(),
		}, []byte(testSecret))
		if _, err := VerifyToken(requestWithToken(token), testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("non HMAC method rejected", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodNone, claims, jwt.UnsafeAllowNoneSignatureType)
		if _, err := VerifyToken(requestWithToken(token), testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("parser failure", func(t *testing.T) {
		orig := parseJWT
		defer func() { parseJWT = orig }()
		parseJWT = func(string, jwt.Keyfunc) (*jwt.Token, error) {
			return nil, errors.New("boom")
		}
		if _, err := VerifyToken(requestWithToken("whatever"), testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestGetUserIDFromClaims(t *testing.T) {
	t.Run("string sub", func(t *testing.T) {
		id, err := GetUserIDFromClaims(jwt.MapClaims{"sub": "42"})
		if err != nil || id != 42 {
			t.Fatalf("expected 42, got %d (%v)", id, err)
		}
	})

	t.Run("numeric sub", func(t *testing.T) {
		id, err := GetUserIDFromClaims(jwt.MapClaims{"sub": float64(7)})
		if err != nil || id != 7 {
			t.Fatalf("expected 7, got %d (%v)", id, err)
		}
	})

	t.Run("missing sub", func(t *testing.T) {
		if _, err := GetUserIDFromClaims(jwt.MapClaims{}); err == nil {
			t.Fatalf("expected error for missing sub")
		}
	})

	t.Run("garbage string", func(t *testing.T) {
		if _, err := GetUserIDFromClaims(jwt.MapClaims{"sub": "abc"}); err == nil {
			t.Fatalf("expected error for non-numeric sub")
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		if _, err := GetUserIDFromClaims(jwt.MapClaims{"sub": true}); err == nil {
			t.Fatalf("expected error for bool sub")
		}
	})
}
