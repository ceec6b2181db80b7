package vtrace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedBitmap is returned when a PPM file's header or pixel data
// does not conform to the binary P6 format.
var ErrMalformedBitmap = errors.New("vtrace: malformed PPM image")

// DecodePPM reads a binary P6 PPM image from r and thresholds it into a
// foreground/background Bitmap using colorMax as the per-channel maximum
// (matching the header's own maxval is typical, but callers may override
// it). A pixel is foreground when R+G+B < colorMax*3/2.
func DecodePPM(r io.Reader, colorMax int) (*Bitmap, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
	}
	if magic[0] != 'P' || magic[1] != '6' {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedBitmap, magic)
	}
	if err := skipToNewline(br); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
	}

	width, height, headerMax, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}
	if colorMax <= 0 {
		colorMax = headerMax
	}

	bm := NewBitmap(width, height)
	pixel := make([]byte, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, err := io.ReadFull(br, pixel); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
			}
			sum := int(pixel[0]) + int(pixel[1]) + int(pixel[2])
			bm.Set(x, y, sum < colorMax*3/2)
		}
	}
	return bm, nil
}

func isPPMWhitespaceOrComment(b byte) bool {
	switch b {
	case '#', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func skipToNewline(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func readUintSkipWS(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			if len(digits) != 0 {
				break
			}
			continue
		}
		digits = append(digits, b)
	}
	n := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, ErrMalformedBitmap
		}
		n = n*10 + int(d-'0')
	}
	return n, nil
}

// readPPMHeader parses the width/height/maxval header fields, skipping
// '#'-prefixed comment lines, matching the reference PPM loader's
// peek-then-consume header scan.
func readPPMHeader(br *bufio.Reader) (width, height, colorMax int, err error) {
	haveSize := false
	for {
		b, perr := br.Peek(1)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedBitmap, perr)
		}
		switch {
		case b[0] == '#':
			br.Discard(1)
			if err := skipToNewline(br); err != nil {
				return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
			}
		case isPPMWhitespaceOrComment(b[0]):
			br.Discard(1)
		default:
			if !haveSize {
				width, err = readUintSkipWS(br)
				if err != nil {
					return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
				}
				height, err = readUintSkipWS(br)
				if err != nil {
					return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
				}
				if width <= 0 || height <= 0 {
					return 0, 0, 0, fmt.Errorf("%w: invalid size %dx%d", ErrMalformedBitmap, width, height)
				}
				haveSize = true
			} else {
				colorMax, err = readUintSkipWS(br)
				if err != nil {
					return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedBitmap, err)
				}
				if colorMax <= 0 || colorMax >= 65536 {
					return 0, 0, 0, fmt.Errorf("%w: invalid color range %d", ErrMalformedBitmap, colorMax)
				}
				return width, height, colorMax, nil
			}
		}
	}
}
