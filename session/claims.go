package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HasuraNamespace is the claim key the backend nests its role and user
// claims under.
const HasuraNamespace = "https://hasura.io/jwt/claims"

// Claims is the decoded access token payload.
type Claims struct {
	jwt.RegisteredClaims
	Hasura map[string]any `json:"https://hasura.io/jwt/claims"`
}

// DecodeAccessToken decodes the claims of an access token without
// verifying its signature. Signature verification is the backend's
// concern; the client only introspects roles and identity.
func DecodeAccessToken(accessToken string) (*Claims, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is empty")
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}

	return claims, nil
}

// AllowedRoles returns the x-hasura-allowed-roles claim.
func (c *Claims) AllowedRoles() []string {
	raw, ok := c.Hasura["x-hasura-allowed-roles"]
	if !ok {
		return nil
	}

	values, ok := raw.([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// DefaultRole returns the x-hasura-default-role claim.
func (c *Claims) DefaultRole() string {
	return c.stringClaim("x-hasura-default-role")
}

// UserID returns the x-hasura-user-id claim.
func (c *Claims) UserID() string {
	return c.stringClaim("x-hasura-user-id")
}

func (c *Claims) stringClaim(key string) string {
	if v, ok := c.Hasura[key].(string); ok {
		return v
	}
	return ""
}
