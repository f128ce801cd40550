package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/authorizer-go"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/pkg/errors"
)

// Authentication failures. Missing and invalid credentials map to 401, a rejected session to 403.
var (
	ErrNoCredentials   = errors.New("no credentials")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionRejected = errors.New("session rejected")
)

// Credentials are what a request presents to identify its caller
type Credentials struct {
	Bearer  string
	Session string
}

// Authenticator resolves a caller id from request credentials
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (string, error)
	Mode() string
}

// NewAuthenticator builds the authenticator selected by AUTH_MODE
func NewAuthenticator(ctx context.Context, cfg *config.Config) (Authenticator, error) {
	switch cfg.AuthMode {
	case "jwt":
		return NewJWTAuthenticator(cfg.JWTSecret), nil
	case "authorizer":
		return NewAuthorizerAuthenticator(ctx, cfg.AuthzURL, cfg.AuthzClientID, []string{"user"})
	}
	return nil, errors.Errorf("unsupported auth mode %q", cfg.AuthMode)
}

// JWTAuthenticator verifies HS256 bearer tokens signed with a shared secret
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator creates a JWTAuthenticator
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Mode names the authentication scheme
func (a *JWTAuthenticator) Mode() string { return "jwt" }

// Authenticate returns the token subject, or its userId claim when there is no subject
func (a *JWTAuthenticator) Authenticate(_ context.Context, creds Credentials) (string, error) {
	if creds.Bearer == "" {
		return "", ErrNoCredentials
	}

	token, err := jwt.Parse(creds.Bearer, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.Wrap(ErrInvalidToken, errorText(err))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Wrap(ErrInvalidToken, "unexpected claims")
	}
	if sub, _ := claims.GetSubject(); sub != "" {
		return sub, nil
	}
	if id, ok := claims["userId"].(string); ok && id != "" {
		return id, nil
	}
	return "", errors.Wrap(ErrInvalidToken, "no subject claim")
}

// IssueToken signs an HS256 token for subject, valid for ttl
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// AuthorizerAuthenticator validates Authorizer session cookies
type AuthorizerAuthenticator struct {
	client *authorizer.AuthorizerClient
	url    string
	roles  []string
}

// NewAuthorizerAuthenticator pings the Authorizer service and creates its client
func NewAuthorizerAuthenticator(ctx context.Context, authzURL, clientID string, roles []string) (*AuthorizerAuthenticator, error) {
	if err := utils.PingAuthorizer(ctx, authzURL); err != nil {
		return nil, errors.Wrap(err, "authorizer ping failed")
	}

	client, err := authorizer.NewAuthorizerClient(clientID, authzURL, "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create authorizer client")
	}

	return &AuthorizerAuthenticator{client: client, url: authzURL, roles: roles}, nil
}

// Mode names the authentication scheme
func (a *AuthorizerAuthenticator) Mode() string { return "authorizer" }

// Ping checks the Authorizer service is reachable
func (a *AuthorizerAuthenticator) Ping(ctx context.Context) error {
	return utils.PingAuthorizer(ctx, a.url)
}

// Authenticate validates the session cookie and returns the Authorizer user id
func (a *AuthorizerAuthenticator) Authenticate(_ context.Context, creds Credentials) (string, error) {
	if creds.Session == "" {
		return "", ErrNoCredentials
	}

	roles := make([]*string, len(a.roles))
	for i := range a.roles {
		roles[i] = &a.roles[i]
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: creds.Session,
		Roles:  roles,
	})
	if err != nil {
		return "", errors.Wrap(ErrSessionRejected, err.Error())
	}
	if res == nil || !res.IsValid || res.User == nil || res.User.ID == "" {
		return "", ErrSessionRejected
	}
	return res.User.ID, nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func errorText(err error) string {
	if err == nil {
		return "token not valid"
	}
	return err.Error()
}
