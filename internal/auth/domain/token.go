package domain

import "time"

// AuthResult is what a successful login or refresh returns: the signed
// token pair plus a summary of the authenticated user.
type AuthResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"` // always "Bearer"
	ExpiresIn    int64       `json:"expiresIn"` // seconds until the access token expires
	ExpiresAt    time.Time   `json:"expiresAt"`
	User         UserSummary `json:"user"`
}

// UserSummary is the non-sensitive slice of a user embedded in auth
// responses. The password hash never leaves the store layer.
type UserSummary struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName,omitempty"`
	Roles    []string `json:"roles"`
}

// Introspection reports whether a presented token is currently good. An
// active result carries the normalized claims map (sub, exp, iat as Unix
// seconds, plus the custom claims present on the token); an inactive one
// carries a short human-readable diagnostic instead. It never transports
// errors: any failure collapses to Active=false.
type Introspection struct {
	Active bool           `json:"active"`
	Claims map[string]any `json:"claims,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func SummarizeUser(u User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName(),
		Roles:    u.Roles,
	}
}
