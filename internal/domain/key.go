package domain

import "strings"

var keyReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	".", "_",
	"#", "_",
	"$", "_",
	"[", "_",
	"]", "_",
)

// SanitizeKey makes an identity key safe to use as a document key.
// An empty result means the key is unusable.
func SanitizeKey(key string) string {
	return keyReplacer.Replace(strings.TrimSpace(key))
}
