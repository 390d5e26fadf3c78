package pptx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// shapeTags are the spTree children that count as shapes, in the order
// PowerPoint's own shape collection enumerates them.
var shapeTags = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

// Slide is one slide part.
type Slide struct {
	Index int
	Part  string
	pkg   *Package
	doc   *etree.Document
}

// NotesPart returns the slide's notes slide part.
func (s *Slide) NotesPart() (string, error) {
	return s.pkg.partByType(s.Part, RelTypeNotesSlide)
}

// LayoutPart returns the slide layout the slide is based on.
func (s *Slide) LayoutPart() (string, error) {
	return s.pkg.partByType(s.Part, RelTypeSlideLayout)
}

func (s *Slide) shapeTree() *etree.Element {
	root := s.doc.Root()
	if root == nil {
		return nil
	}
	cSld := root.SelectElement("cSld")
	if cSld == nil {
		return nil
	}
	return cSld.SelectElement("spTree")
}

// Shapes returns the top-level shapes of the slide in document order.
func (s *Slide) Shapes() []*Shape {
	tree := s.shapeTree()
	if tree == nil {
		return nil
	}
	var shapes []*Shape
	for _, child := range tree.ChildElements() {
		if !shapeTags[child.Tag] {
			continue
		}
		shapes = append(shapes, &Shape{Index: len(shapes), el: child})
	}
	return shapes
}

// Shape returns the shape at a 0-based position.
func (s *Slide) Shape(index int) (*Shape, error) {
	shapes := s.Shapes()
	if index < 0 || index >= len(shapes) {
		return nil, fmt.Errorf("%w: slide %d has %d shapes, wanted index %d", ErrShapeNotFound, s.Index+1, len(shapes), index)
	}
	return shapes[index], nil
}

// Find resolves a ShapeRef against this slide.
func (s *Slide) Find(ref ShapeRef) (*Shape, error) {
	if ref.Kind == RefIndex {
		return s.Shape(ref.Index)
	}
	for _, sh := range s.Shapes() {
		switch ref.Kind {
		case RefName:
			if sh.Name() == ref.Value {
				return sh, nil
			}
		case RefPlaceholder:
			if sh.PlaceholderType() == ref.Value {
				return sh, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: slide %d has no shape %s", ErrShapeNotFound, s.Index+1, ref)
}

// Shape wraps one spTree child.
type Shape struct {
	Index int
	el    *etree.Element
}

// Kind is the element name: sp, pic, graphicFrame, grpSp, cxnSp or contentPart.
func (sh *Shape) Kind() string {
	return sh.el.Tag
}

// nonVisual returns the p:nv*Pr element of the shape.
func (sh *Shape) nonVisual() *etree.Element {
	for _, c := range sh.el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") {
			return c
		}
	}
	return nil
}

func (sh *Shape) cNvPr() *etree.Element {
	nv := sh.nonVisual()
	if nv == nil {
		return nil
	}
	return nv.SelectElement("cNvPr")
}

// ID returns the shape id (cNvPr/@id).
func (sh *Shape) ID() string {
	if c := sh.cNvPr(); c != nil {
		return c.SelectAttrValue("id", "")
	}
	return ""
}

// Name returns the shape name (cNvPr/@name).
func (sh *Shape) Name() string {
	if c := sh.cNvPr(); c != nil {
		return c.SelectAttrValue("name", "")
	}
	return ""
}

// PlaceholderType returns the placeholder type, "obj" for an untyped
// placeholder and "" when the shape is not a placeholder.
func (sh *Shape) PlaceholderType() string {
	nv := sh.nonVisual()
	if nv == nil {
		return ""
	}
	nvPr := nv.SelectElement("nvPr")
	if nvPr == nil {
		return ""
	}
	ph := nvPr.SelectElement("ph")
	if ph == nil {
		return ""
	}
	return ph.SelectAttrValue("type", "obj")
}

// HasTextFrame reports whether the shape carries a text body.
func (sh *Shape) HasTextFrame() bool {
	return sh.el.Tag == "sp" && sh.el.SelectElement("txBody") != nil
}

// TextFrame returns the shape's text body.
func (sh *Shape) TextFrame() (*TextFrame, error) {
	if !sh.HasTextFrame() {
		return nil, fmt.Errorf("%w: shape %d (%s %q)", ErrNoTextFrame, sh.Index, sh.Kind(), sh.Name())
	}
	return &TextFrame{body: sh.el.SelectElement("txBody")}, nil
}

// Text returns the shape text with paragraphs joined by newlines, or "".
func (sh *Shape) Text() string {
	tf, err := sh.TextFrame()
	if err != nil {
		return ""
	}
	return tf.Text()
}
