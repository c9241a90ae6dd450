package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReferenceNumber builds a document reference like "F26TCR.4f2a-07":
// two-digit year, company marker, four random alphanumerics, then the record
// id zero-padded to at least two digits.
func NewReferenceNumber(id int64, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("F%02dTCR.%s-%02d", now.Year()%100, random, id)
}
