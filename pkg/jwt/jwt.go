package jwt

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ParseUnverified decodes the token claims without checking the signature.
// The client never holds the API's signing key, so the token is trusted only
// as a hint about who is signed in.
func ParseUnverified(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims := &Claims{
		Subject: firstString(mc, subjectClaims),
		Email:   firstString(mc, emailClaims),
		Roles:   collectStrings(mc, roleClaims),
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil {
		t := exp.Time.UTC()
		claims.ExpiresAt = &t
	}

	return claims, nil
}

func firstString(mc jwt.MapClaims, keys []string) string {
	for _, k := range keys {
		switch v := mc[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func collectStrings(mc jwt.MapClaims, keys []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, k := range keys {
		switch v := mc[k].(type) {
		case string:
			add(v)
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		}
	}
	return out
}
