package pptx

import (
	"fmt"
	"strconv"
	"strings"
)

// RefKind selects how a ShapeRef binds to a shape.
type RefKind int

const (
	RefIndex RefKind = iota
	RefName
	RefPlaceholder
)

// ShapeRef identifies a shape on a slide by position, name or placeholder type.
//
//	"10", "idx:10"   position in the shape tree
//	"name:Title 1"   cNvPr name
//	"ph:title"       placeholder type
type ShapeRef struct {
	Kind  RefKind
	Index int
	Value string
}

// IndexRef binds to a fixed position.
func IndexRef(i int) ShapeRef {
	return ShapeRef{Kind: RefIndex, Index: i}
}

// ParseShapeRef parses the textual form used in configuration files.
func ParseShapeRef(s string) (ShapeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ShapeRef{}, fmt.Errorf("empty shape reference")
	}

	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		prefix, rest = "idx", s
	}
	switch strings.ToLower(prefix) {
	case "idx", "index":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 0 {
			return ShapeRef{}, fmt.Errorf("invalid shape index %q", rest)
		}
		return IndexRef(n), nil
	case "name":
		if rest == "" {
			return ShapeRef{}, fmt.Errorf("empty shape name in %q", s)
		}
		return ShapeRef{Kind: RefName, Value: rest}, nil
	case "ph", "placeholder":
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return ShapeRef{}, fmt.Errorf("empty placeholder type in %q", s)
		}
		return ShapeRef{Kind: RefPlaceholder, Value: rest}, nil
	}
	return ShapeRef{}, fmt.Errorf("unknown shape reference %q", s)
}

func (r ShapeRef) String() string {
	switch r.Kind {
	case RefName:
		return "name:" + r.Value
	case RefPlaceholder:
		return "ph:" + r.Value
	}
	return "idx:" + strconv.Itoa(r.Index)
}
