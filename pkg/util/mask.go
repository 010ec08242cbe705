package util

import (
	"fmt"
	"strings"
)

// MaskKey masks a key string by showing only the first and last n characters
func MaskKey(key string, firstN, lastN int) string {
	if key == "" {
		return ""
	}

	runes := []rune(key)
	keyLen := len(runes)
	if keyLen <= firstN+lastN {
		return strings.Repeat("*", keyLen)
	}

	return fmt.Sprintf("%s%s%s", string(runes[:firstN]), strings.Repeat("*", 3), string(runes[keyLen-lastN:]))
}

// TruncatePrefix returns at most the first n characters of s.
func TruncatePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
