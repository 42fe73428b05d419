package summary

import (
	"strings"

	"github.com/naka-gawa/ncu/internal/domain"
)

// FirstLine returns the subject line of a commit message.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}

// Classify reports whether a commit subject is a squash or fixup marker, and
// the subsystem prefix of a regular "subsystem: description" subject.
func Classify(message string) (domain.CommitKind, string) {
	subject := strings.TrimSpace(FirstLine(message))
	lower := strings.ToLower(subject)
	switch {
	case strings.HasPrefix(lower, "squash!"), strings.HasPrefix(lower, "[squash]"):
		return domain.KindSquash, ""
	case strings.HasPrefix(lower, "fixup!"), strings.HasPrefix(lower, "amend!"):
		return domain.KindFixup, ""
	}
	prefix, _, ok := strings.Cut(subject, ":")
	if !ok || prefix == "" || strings.ContainsAny(prefix, " \t") {
		return domain.KindRegular, ""
	}
	return domain.KindRegular, prefix
}
