package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/user"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/resilience"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/valyala/fasthttp"
)

const (
	userPath          = "/auth/v1/user"
	maxResponseBytes  = 1 << 20
	defaultTimeout    = 3 * time.Second
	defaultMaxIdleCon = 64
)

var errAuthTransient = crerr.New("auth server transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	JWTSecret      string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger

	// HTTPClient overrides the default fasthttp client, mainly for tests.
	HTTPClient *fasthttp.Client
}

// Client resolves access tokens issued by a Supabase-compatible auth server.
type Client struct {
	httpClient *fasthttp.Client
	userURL    string
	apiKey     string
	jwtSecret  []byte
	timeout    time.Duration
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "frontrangehub-ladder",
			MaxConnsPerHost:     defaultMaxIdleCon,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	var secret []byte
	if s := strings.TrimSpace(cfg.JWTSecret); s != "" {
		secret = []byte(s)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	userURL := ""
	if baseURL != "" {
		userURL = baseURL + userPath
	}

	return &Client{
		httpClient: httpClient,
		userURL:    userURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		jwtSecret:  secret,
		timeout:    timeout,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:     logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if len(c.jwtSecret) > 0 {
		return c.verifyLocal(token)
	}
	if c.userURL == "" {
		return user.Principal{}, fmt.Errorf("%w: no token verifier configured", usecase.ErrDependencyUnavailable)
	}
	return c.verifyRemote(ctx, token)
}

type accessClaims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata appMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

type appMetadata struct {
	Role string `json:"role"`
}

func (c *Client) verifyLocal(token string) (user.Principal, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   resolveRole(claims.AppMetadata.Role, claims.Role),
	}, nil
}

type userResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata appMetadata `json:"app_metadata"`
}

func (c *Client) verifyRemote(ctx context.Context, token string) (user.Principal, error) {
	var body []byte
	err := c.breaker.Execute(func() error {
		raw, reqErr := c.fetchUser(ctx, token)
		body = raw
		return reqErr
	}, isCircuitFailure)
	if err != nil {
		switch {
		case crerr.Is(err, resilience.ErrCircuitOpen):
			c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: auth server is temporarily unavailable", usecase.ErrDependencyUnavailable)
		case crerr.Is(err, errAuthTransient):
			c.logger.WarnContext(ctx, "auth server request failed", "error", err)
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		default:
			return user.Principal{}, err
		}
	}

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode auth user response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: auth user has no id", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: decoded.ID,
		Email:  decoded.Email,
		Role:   resolveRole(decoded.AppMetadata.Role, decoded.Role),
	}, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.userURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "auth request cancelled"), errAuthTransient)
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send auth request"), errAuthTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return nil, fmt.Errorf("%w: access token rejected", usecase.ErrUnauthorized)
	case status >= 500 || status == fasthttp.StatusTooManyRequests:
		return nil, crerr.Mark(crerr.Newf("auth server status=%d", status), errAuthTransient)
	case status != fasthttp.StatusOK:
		return nil, crerr.Newf("unexpected auth server status=%d", status)
	}

	return append([]byte(nil), resp.Body()...), nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAuthTransient)
}

func resolveRole(candidates ...string) string {
	for _, role := range candidates {
		if role = strings.TrimSpace(role); role != "" {
			return role
		}
	}
	return ""
}
