package jwtauth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

// Claims represents the JWT claims for registrar access tokens. Scope is a
// space-separated capability list; GroupID is the group the caller acts for.
type Claims struct {
	Scope   string `json:"scope"`
	GroupID string `json:"groupId,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken mints a token for a subject. Used by tests and local
// tooling; production tokens come from the external identity provider and
// are only validated here.
func (s *JWTService) GenerateAccessToken(
	subject string,
	capabilities []domain.Capability,
	groupID string,
	expiresIn time.Duration) (string, error) {
	scopes := make([]string, len(capabilities))
	for i, c := range capabilities {
		scopes[i] = c.String()
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Scope:   strings.Join(scopes, " "),
		GroupID: groupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	return newToken.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a token and maps its claims onto the
// caller identity the middleware injects into request context.
func (s *JWTService) ValidateToken(tokenString string) (requestcontext.CallerIdentity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return requestcontext.CallerIdentity{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return requestcontext.CallerIdentity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return requestcontext.CallerIdentity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return requestcontext.CallerIdentity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	var capabilities []domain.Capability
	for _, scope := range strings.Fields(claims.Scope) {
		capabilities = append(capabilities, domain.Capability(scope))
	}

	return requestcontext.CallerIdentity{
		Subject:      claims.Subject,
		Capabilities: capabilities,
		GroupID:      claims.GroupID,
	}, nil
}
