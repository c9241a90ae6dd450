package report

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReferenceNumberFormat(t *testing.T) {
	now := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	ref := NewReferenceNumber(7, now)
	require.Regexp(t, regexp.MustCompile(`^F26TCR\.[0-9a-f]{4}-07$`), ref)

	ref = NewReferenceNumber(123, now)
	require.Regexp(t, regexp.MustCompile(`^F26TCR\.[0-9a-f]{4}-123$`), ref)
}

func TestReferenceNumberRandomPart(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for range 20 {
		seen[NewReferenceNumber(1, now)] = true
	}
	require.Greater(t, len(seen), 1, "random segment should vary")
}
