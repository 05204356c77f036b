package user

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

const fallbackUsername = "user"

// UsernameBase derives a username seed from the local part of an e-mail.
func UsernameBase(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallbackUsername
	}
	return b.String()
}

// GenerateUniqueUsername returns base if unused, otherwise the first free base1, base2, ...
func GenerateUniqueUsername(ctx context.Context, repo UserRepository, base string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fallbackUsername
	}

	candidate := base
	for i := 1; ; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
