package term

import (
	"time"
	"unicode/utf8"
)

// byteReaderWithTimeout reads one byte, giving up after the timeout. A
// negative timeout means no timeout.
type byteReaderWithTimeout interface {
	ReadByteWithTimeout(timeout time.Duration) (byte, error)
}

// Reads one UTF-8 encoded rune. Invalid encodings are returned as
// utf8.RuneError. The timeout applies to each byte.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	leader, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return -1, err
	}
	var n int
	switch {
	case leader < 0x80:
		return rune(leader), nil
	case leader>>5 == 0x6:
		n = 2
	case leader>>4 == 0xe:
		n = 3
	case leader>>3 == 0x1e:
		n = 4
	default:
		return utf8.RuneError, nil
	}
	buf := []byte{leader}
	for len(buf) < n {
		b, err := rd.ReadByteWithTimeout(timeout)
		if err != nil {
			return -1, err
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}
