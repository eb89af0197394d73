package jwt

import "time"

// Claim names the SmartSpace API may use for the same fact
var (
	subjectClaims = []string{
		"sub",
		"nameid",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	}
	emailClaims = []string{
		"email",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	}
	roleClaims = []string{
		"role",
		"roles",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
	}
)

// Claims is what the client reads from a session token
type Claims struct {
	Subject   string
	Email     string
	Roles     []string
	ExpiresAt *time.Time
}

// HasRole reports whether role is among the token roles
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
