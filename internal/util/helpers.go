package util

import (
	"fmt"
	"strconv"
	"strings"
)

// BoolToInt converts a boolean to 0 or 1.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IntToBool converts 0/1 to boolean.
func IntToBool(i int) bool {
	return i != 0
}

// Clamp constrains a value to a range.
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ParsePositiveInts parses a comma or space separated list of positive
// integers, dropping duplicates while keeping first-seen order.
func ParsePositiveInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	seen := make(map[int]bool, len(fields))
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%d must be positive", n)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// JoinInts renders values as a comma separated list.
func JoinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
