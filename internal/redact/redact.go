package redact

import (
	"regexp"

	"github.com/dshills/tmplwalk/internal/merge"
)

const placeholder = "[REDACTED]"

// secretKey matches option names whose values should never be printed.
var secretKey = regexp.MustCompile(`(?i)(password|passwd|passphrase|secret|token|credential|api[_-]?key|private[_-]?key|access[_-]?key)`)

// secretPatterns are regex heuristics for secret-shaped values, regardless of
// the key they are stored under.
var secretPatterns = []*regexp.Regexp{
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Credentials embedded in connection URLs
	regexp.MustCompile(`://[^/\s:@]+:[^/\s@]+@`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// IsSecretKey reports whether an option name looks like it holds a secret.
func IsSecretKey(key string) bool {
	return secretKey.MatchString(key)
}

// Config returns a copy of cfg with secret values replaced. Values under
// secret-looking keys are replaced whole; other values are scanned with
// [Secrets].
func Config(cfg merge.Config) merge.Config {
	out := cfg.Clone()
	for _, keys := range out {
		for k, v := range keys {
			if IsSecretKey(k) && v != "" {
				keys[k] = placeholder
				continue
			}
			keys[k] = Secrets(v)
		}
	}
	return out
}
