package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	AdminID string
	Role    string
	JTI     string
}

// AdminTokenClaims represents the typed JWT presented on admin routes.
type AdminTokenClaims struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *AdminTokenClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
