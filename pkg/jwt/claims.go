package jwt

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are carried by tokens minted for the HTTP admin routes.
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

// HasRole reports whether the token was issued for role.
func (c *AdminClaims) HasRole(role Role) bool {
	return c != nil && Role(c.Role) == role
}
