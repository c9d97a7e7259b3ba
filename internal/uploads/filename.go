package uploads

import (
	"fmt"
	"io"
	"time"

	"gamelog-gateway/internal/shared/util"
)

const (
	timestampLayout    = "2006-01-02T15-04-05"
	defaultTokenLength = 9
)

// Namer builds stored file names of the form
// <UTC timestamp>_<random token>_<original name>.
type Namer struct {
	now         func() time.Time
	rand        io.Reader
	tokenLength int
}

// NewNamer returns a Namer. A nil clock uses time.Now and a nil source uses
// crypto/rand.
func NewNamer(now func() time.Time, rand io.Reader) *Namer {
	if now == nil {
		now = time.Now
	}
	return &Namer{now: now, rand: rand, tokenLength: defaultTokenLength}
}

// Generate returns a collision-resistant name for the client file name.
func (n *Namer) Generate(original string) (string, error) {
	safe, err := util.SanitizeFileName(original)
	if err != nil {
		return "", ErrMissingFile
	}
	token, err := util.RandomToken(n.rand, n.tokenLength)
	if err != nil {
		return "", fmt.Errorf("random token: %w", err)
	}
	return fmt.Sprintf("%s_%s_%s", n.now().UTC().Format(timestampLayout), token, safe), nil
}
