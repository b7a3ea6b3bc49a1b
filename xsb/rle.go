package xsb

import (
	"strings"

	"github.com/pkg/errors"
)

// maxDecodedLen bounds the expanded length of a single run-length
// decoded line. Any RLE that would produce a longer line is rejected as
// an overflow rather than allocating unbounded memory.
const maxDecodedLen = 1 << 20

// decodeRLE expands the run-length encoding in a single line of map text:
// a decimal prefix N before a legend character or a parenthesized,
// possibly nested, group repeats that token N times. Characters outside
// any N( )/N<char> construct pass through unchanged.
func decodeRLE(line string) (string, error) {
	var b strings.Builder
	next, err := decodeRLEInto(&b, line, 0)
	if err != nil {
		return "", err
	}
	if next < len([]rune(line)) {
		return "", errors.Wrapf(ErrMalformedRLE, "unmatched ')' in %q", line)
	}
	if b.Len() > maxDecodedLen {
		return "", errors.Wrap(ErrMalformedRLE, "decoded line exceeds maximum length")
	}
	return b.String(), nil
}

// decodeRLEInto decodes runes of s starting at index i into b, stopping
// at end of string or at an unmatched ')' (which belongs to an enclosing
// call). It returns the index just past the consumed input.
func decodeRLEInto(b *strings.Builder, s string, i int) (int, error) {
	runes := []rune(s)
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == ')':
			return i, nil
		case c >= '0' && c <= '9':
			start := i
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
				i++
			}
			count := 0
			for _, d := range runes[start:i] {
				count = count*10 + int(d-'0')
				if count > maxDecodedLen {
					return 0, errors.Wrapf(ErrMalformedRLE, "count overflow in %q", s)
				}
			}
			if count == 0 {
				return 0, errors.Wrapf(ErrMalformedRLE, "zero count in %q", s)
			}
			if i >= len(runes) {
				return 0, errors.Wrapf(ErrMalformedRLE, "count %d with no following token in %q", count, s)
			}
			if runes[i] == '(' {
				var group strings.Builder
				next, err := decodeRLEInto(&group, s, i+1)
				if err != nil {
					return 0, err
				}
				if next >= len(runes) || runes[next] != ')' {
					return 0, errors.Wrapf(ErrMalformedRLE, "unmatched '(' in %q", s)
				}
				i = next + 1
				if group.Len()*count > maxDecodedLen {
					return 0, errors.Wrapf(ErrMalformedRLE, "expansion overflow in %q", s)
				}
				for n := 0; n < count; n++ {
					b.WriteString(group.String())
				}
			} else {
				token := runes[i]
				i++
				for n := 0; n < count; n++ {
					b.WriteRune(token)
				}
			}
		case c == '(':
			var group strings.Builder
			next, err := decodeRLEInto(&group, s, i+1)
			if err != nil {
				return 0, err
			}
			if next >= len(runes) || runes[next] != ')' {
				return 0, errors.Wrapf(ErrMalformedRLE, "unmatched '(' in %q", s)
			}
			b.WriteString(group.String())
			i = next + 1
		default:
			b.WriteRune(c)
			i++
		}
	}
	return i, nil
}
