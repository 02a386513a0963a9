package bind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind tells what follows the field name of a segment.
type SegmentKind int

const (
	SegmentField SegmentKind = iota
	SegmentIndex
	SegmentKey
	SegmentSize
)

// Segment is one dotted part of a Path.
type Segment struct {
	Name  string
	Kind  SegmentKind
	Index int
	Key   string
}

// String renders the segment in path syntax.
func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	case SegmentKey:
		return s.Name + "[" + s.Key + "]"
	case SegmentSize:
		return s.Name + "[#]"
	default:
		return s.Name
	}
}

// Path is a parsed member path.
type Path struct {
	Segments []Segment
}

// String renders the path.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// IsSimple reports whether the path is a single plain field.
func (p Path) IsSimple() bool {
	return len(p.Segments) == 1 && p.Segments[0].Kind == SegmentField
}

// ParsePath parses a member path.
// Supports: "Field", "Nested.Field", "Items[2]", "Items[#]", "Attrs[key]", "Items[0].Name".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []Segment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", path, err)
		}

		segments = append(segments, seg)
	}

	for _, seg := range segments[:len(segments)-1] {
		if seg.Kind == SegmentSize {
			return Path{}, fmt.Errorf("invalid path %q: size must be the last segment", path)
		}
	}

	return Path{Segments: segments}, nil
}

func parseSegment(part string) (Segment, error) {
	seg := Segment{Name: part}

	if open := strings.IndexByte(part, '['); open >= 0 {
		if !strings.HasSuffix(part, "]") {
			return Segment{}, fmt.Errorf("unterminated index in %q", part)
		}

		seg.Name = part[:open]
		inner := part[open+1 : len(part)-1]

		switch {
		case inner == "":
			return Segment{}, fmt.Errorf("empty index in %q", part)
		case inner == "#":
			seg.Kind = SegmentSize
		case strings.ContainsAny(inner, "[]"):
			return Segment{}, fmt.Errorf("nested index in %q", part)
		default:
			if n, err := strconv.Atoi(inner); err == nil {
				if n < 0 {
					return Segment{}, fmt.Errorf("negative index in %q", part)
				}

				seg.Kind = SegmentIndex
				seg.Index = n
			} else {
				seg.Kind = SegmentKey
				seg.Key = inner
			}
		}
	}

	if !isValidIdent(seg.Name) {
		return Segment{}, fmt.Errorf("invalid identifier %q", seg.Name)
	}

	return seg, nil
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
