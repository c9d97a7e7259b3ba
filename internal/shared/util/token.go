package util

import (
	"crypto/rand"
	"errors"
	"io"
)

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomToken returns n characters drawn uniformly from [0-9a-z] using src.
// A nil src uses crypto/rand.
func RandomToken(src io.Reader, n int) (string, error) {
	if n <= 0 {
		return "", errors.New("token length must be positive")
	}
	if src == nil {
		src = rand.Reader
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	// 252 is the largest multiple of 36 below 256; rejecting above it keeps
	// the distribution uniform.
	const limit = 252
	for len(out) < n {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
