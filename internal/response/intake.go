// SPDX-License-Identifier: Apache-2.0

package response

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxBytes bounds the size of a single generation-service response.
const DefaultMaxBytes = 1 << 20

var (
	ErrTooLarge    = errors.New("response exceeds size limit")
	ErrInvalidUTF8 = errors.New("response is not valid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Receive validates raw response bytes before they reach the parser. It rejects
// input larger than maxBytes (when maxBytes > 0) and input that is not valid
// UTF-8, and strips a leading byte order mark.
func Receive(raw []byte, maxBytes int) (string, error) {
	if maxBytes > 0 && len(raw) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(raw), maxBytes)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid byte at offset %d", ErrInvalidUTF8, invalidOffset(raw))
	}
	return string(bytes.TrimPrefix(raw, utf8BOM)), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
