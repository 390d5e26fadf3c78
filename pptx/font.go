package pptx

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// RGB is a 24-bit colour.
type RGB [3]uint8

// ParseRGB parses "RRGGBB" (an optional leading '#' is accepted).
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return RGB{}, fmt.Errorf("invalid RGB value %q", s)
	}
	return RGB{b[0], b[1], b[2]}, nil
}

// String returns the upper-case hex form used by a:srgbClr/@val.
func (c RGB) String() string {
	return strings.ToUpper(hex.EncodeToString(c[:]))
}

// fill elements that may appear in a:rPr; at most one is allowed.
var fillTags = map[string]bool{
	"noFill": true, "solidFill": true, "gradFill": true,
	"blipFill": true, "pattFill": true, "grpFill": true,
}

// Font reads and writes a:rPr of a run. Sizes are in hundredths of a point.
type Font struct {
	run *etree.Element
}

func (f *Font) rPr() *etree.Element {
	return f.run.SelectElement("a:rPr")
}

func (f *Font) getOrAddRPr() *etree.Element {
	if rPr := f.rPr(); rPr != nil {
		return rPr
	}
	rPr := etree.NewElement("a:rPr")
	f.run.InsertChildAt(0, rPr)
	return rPr
}

// Size returns the font size in centipoints.
func (f *Font) Size() (int, bool) {
	rPr := f.rPr()
	if rPr == nil {
		return 0, false
	}
	v := rPr.SelectAttrValue("sz", "")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetSize sets the font size in centipoints.
func (f *Font) SetSize(centipoints int) {
	f.getOrAddRPr().CreateAttr("sz", strconv.Itoa(centipoints))
}

// Bold returns the explicit bold flag.
func (f *Font) Bold() (bool, bool) {
	rPr := f.rPr()
	if rPr == nil {
		return false, false
	}
	switch rPr.SelectAttrValue("b", "") {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}

// SetBold writes an explicit bold flag.
func (f *Font) SetBold(bold bool) {
	v := "0"
	if bold {
		v = "1"
	}
	f.getOrAddRPr().CreateAttr("b", v)
}

// Color returns the explicit sRGB fill colour. Theme and preset colours are
// reported as absent.
func (f *Font) Color() (RGB, bool) {
	rPr := f.rPr()
	if rPr == nil {
		return RGB{}, false
	}
	fill := rPr.SelectElement("a:solidFill")
	if fill == nil {
		return RGB{}, false
	}
	clr := fill.SelectElement("a:srgbClr")
	if clr == nil {
		return RGB{}, false
	}
	c, err := ParseRGB(clr.SelectAttrValue("val", ""))
	if err != nil {
		return RGB{}, false
	}
	return c, true
}

// SetColor replaces any fill with a solid sRGB fill.
func (f *Font) SetColor(c RGB) {
	rPr := f.getOrAddRPr()
	for _, child := range rPr.ChildElements() {
		if fillTags[child.Tag] {
			rPr.RemoveChild(child)
		}
	}
	fill := etree.NewElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", c.String())

	// a:ln is the only element that precedes the fill.
	pos := 0
	if ln := rPr.SelectElement("a:ln"); ln != nil {
		pos = ln.Index() + 1
	}
	rPr.InsertChildAt(pos, fill)
}

// Name returns the latin typeface, or "".
func (f *Font) Name() string {
	rPr := f.rPr()
	if rPr == nil {
		return ""
	}
	if latin := rPr.SelectElement("a:latin"); latin != nil {
		return latin.SelectAttrValue("typeface", "")
	}
	return ""
}

// SetName sets the latin typeface.
func (f *Font) SetName(name string) {
	rPr := f.getOrAddRPr()
	latin := rPr.SelectElement("a:latin")
	if latin == nil {
		latin = etree.NewElement("a:latin")
		rPr.InsertChildAt(latinPosition(rPr), latin)
	}
	latin.CreateAttr("typeface", name)
}

// latinPosition finds where a:latin goes: before the first element that
// the schema orders after it.
func latinPosition(rPr *etree.Element) int {
	for _, c := range rPr.ChildElements() {
		switch c.Tag {
		case "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst":
			return c.Index()
		}
	}
	return len(rPr.Child)
}
