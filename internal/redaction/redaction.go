// Package redaction masks secrets in activity names before they leave the
// machine in an export.
package redaction

import (
	"fmt"
	"regexp"
	"strings"
)

// sensitivePatterns are compiled once at package init and applied after the
// explicit tags.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sk_live_[a-zA-Z0-9]+`),             // Stripe live keys
	regexp.MustCompile(`(?i)sk_test_[a-zA-Z0-9]+`),             // Stripe test keys
	regexp.MustCompile(`ghp_[a-zA-Z0-9]+`),                     // GitHub PATs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),                     // AWS access key IDs
	regexp.MustCompile(`xoxb-[a-zA-Z0-9-]+`),                   // Slack bot tokens
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+`), // JWT tokens
	regexp.MustCompile(`(?i)password\s*[:=]\s*["']?.+`),        // password = ...
	regexp.MustCompile(`(?i)secret\s*[:=]\s*["']?.+`),          // secret = ...
	regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?.+`),     // api_key = ...
}

var redactedTagRe = regexp.MustCompile(`(?s)<redacted>.*?</redacted>`)

// Replacement is substituted for every redacted span.
const Replacement = "[REDACTED]"

// Redact masks text in three passes:
//
//  1. Explicit <redacted>…</redacted> spans, repeated until none remain;
//     orphaned tags are then stripped.
//  2. Built-in secret patterns (API keys, tokens, passwords).
//  3. extra, typically compiled from the export.redact_patterns config key.
func Redact(text string, extra []*regexp.Regexp) string {
	for {
		next := redactedTagRe.ReplaceAllString(text, Replacement)
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, "<redacted>", "")
	text = strings.ReplaceAll(text, "</redacted>", "")

	for _, re := range sensitivePatterns {
		text = re.ReplaceAllString(text, Replacement)
	}
	for _, re := range extra {
		text = re.ReplaceAllString(text, Replacement)
	}
	return text
}

// Compile compiles user-supplied patterns, skipping blank entries.
func Compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redaction pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
