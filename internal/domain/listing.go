package domain

import "strconv"

// Listing limits for the news list.
const (
	DefaultNewsLimit = 20
	MinNewsLimit     = 1
	MaxNewsLimit     = 100
)

// ClampLimit forces limit into [MinNewsLimit, MaxNewsLimit].
func ClampLimit(limit int) int {
	return min(max(limit, MinNewsLimit), MaxNewsLimit)
}

// ParseLimit reads a limit query value. Missing or unparsable values give the default;
// the result is always clamped.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultNewsLimit
	}
	return ClampLimit(n)
}
