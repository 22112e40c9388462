package logger

import (
	"log/slog"
	"strings"
)

// abbrevLen is the number of leading characters kept of a long hash.
const abbrevLen = 12

// hashKeySuffixes mark attribute keys whose values are image or state hashes.
var hashKeySuffixes = []string{"hash", "state", "image"}

// abbreviateHashes shortens hash-valued string attributes. Blake3 hex
// digests are 64 characters and make text logs unreadable.
func abbreviateHashes(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = abbreviateHashes(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString || !IsHashKey(a.Key) {
		return a
	}
	return slog.String(a.Key, Abbreviate(a.Value.String()))
}

// Abbreviate shortens a hash to its first characters followed by "...".
// Hybrid hashes are shortened per part.
func Abbreviate(value string) string {
	if strings.Contains(value, "_") {
		parts := strings.Split(value, "_")
		for i, p := range parts {
			parts[i] = Abbreviate(p)
		}
		return strings.Join(parts, "_")
	}
	if len(value) <= abbrevLen+3 {
		return value
	}
	return value[:abbrevLen] + "..."
}

// IsHashKey reports whether an attribute key names a hash value.
func IsHashKey(key string) bool {
	k := strings.ToLower(key)
	for _, suffix := range hashKeySuffixes {
		if strings.HasSuffix(k, suffix) {
			return true
		}
	}
	return false
}
