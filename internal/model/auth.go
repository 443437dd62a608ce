package model

// TokenClaims is what the middleware extracts from a verified ID token.
type TokenClaims struct {
	UID   string
	Email string
	Name  string
}
