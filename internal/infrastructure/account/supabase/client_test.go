package supabase

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/resilience"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func newTestServer(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
}

func TestVerifyAccessToken_RemoteSendsHeadersAndParsesUser(t *testing.T) {
	httpClient := newTestServer(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", ctx.Path())
		}
		if got := string(ctx.Request.Header.Peek("apikey")); got != "anon-key" {
			t.Errorf("unexpected apikey header: %s", got)
		}
		if got := string(ctx.Request.Header.Peek("Authorization")); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"id":"user-123","email":"p@example.com","role":"authenticated","app_metadata":{"role":"admin"}}`)
	})

	client := NewClient(ClientConfig{
		BaseURL:    "http://auth.test/",
		APIKey:     "anon-key",
		HTTPClient: httpClient,
	})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "p@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.IsAdmin() {
		t.Fatalf("expected app_metadata role to win, got %q", principal.Role)
	}
}

func TestVerifyAccessToken_RemoteRejectedMapsToUnauthorized(t *testing.T) {
	httpClient := newTestServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"msg":"invalid JWT"}`)
	})

	client := NewClient(ClientConfig{BaseURL: "http://auth.test", HTTPClient: httpClient})

	_, err := client.VerifyAccessToken(context.Background(), "expired")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	httpClient := newTestServer(t, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})

	client := NewClient(ClientConfig{
		BaseURL:    "http://auth.test",
		HTTPClient: httpClient,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected open breaker to skip the second call, got %d calls", calls.Load())
	}
}

func TestVerifyAccessToken_RejectedTokensDoNotTripCircuit(t *testing.T) {
	httpClient := newTestServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusForbidden)
	})

	client := NewClient(ClientConfig{
		BaseURL:        "http://auth.test",
		HTTPClient:     httpClient,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute},
	})

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token"); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("call %d: expected ErrUnauthorized, got %v", i, err)
		}
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyAccessToken_LocalJWT(t *testing.T) {
	client := NewClient(ClientConfig{JWTSecret: "top-secret"})

	token := signToken(t, "top-secret", jwt.MapClaims{
		"sub":   "user-9",
		"email": "nine@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	principal, err := client.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "user-9" || principal.Role != "authenticated" || principal.IsAdmin() {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifyAccessToken_LocalJWTRejections(t *testing.T) {
	client := NewClient(ClientConfig{JWTSecret: "top-secret"})

	tests := map[string]string{
		"wrong secret": signToken(t, "other", jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()}),
		"expired":      signToken(t, "top-secret", jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    signToken(t, "top-secret", jwt.MapClaims{"sub": "u"}),
		"no subject":   signToken(t, "top-secret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		"garbage":      "not-a-jwt",
		"blank":        "   ",
	}

	for name, token := range tests {
		if _, err := client.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestVerifyAccessToken_NoVerifierConfigured(t *testing.T) {
	client := NewClient(ClientConfig{})
	if _, err := client.VerifyAccessToken(context.Background(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
