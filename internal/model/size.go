package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the terminal geometry passed to the subject via --size.
type Size struct {
	Cols int
	Rows int
}

// DefaultSize mirrors the subject's own default geometry.
var DefaultSize = Size{Cols: 120, Rows: 40}

// ParseSize parses the subject's COLSxROWS size notation.
func ParseSize(s string) (Size, error) {
	cols, rows, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, fmt.Errorf("invalid size format %q, want COLSxROWS (e.g. 80x24)", s)
	}

	c, err := strconv.Atoi(cols)
	if err != nil || c <= 0 {
		return Size{}, fmt.Errorf("invalid columns value %q in size %q", cols, s)
	}

	r, err := strconv.Atoi(rows)
	if err != nil || r <= 0 {
		return Size{}, fmt.Errorf("invalid rows value %q in size %q", rows, s)
	}

	return Size{Cols: c, Rows: r}, nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}
