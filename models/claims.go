package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims are the claims issued by the external identity provider.
// Sub is the opaque subject id every User record is keyed by.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}
