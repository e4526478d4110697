package utils

import (
	"sort"
	"strings"
)

// NormalizeEmail lowercases and trims an email address so it can be used as
// a stable map key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PairKey builds an order-independent key for a pair of emails, used to
// deduplicate symmetric matches.
func PairKey(emailA, emailB string) string {
	pair := []string{emailA, emailB}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}
