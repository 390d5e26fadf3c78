package pptx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// TextFrame wraps a p:txBody element.
type TextFrame struct {
	body *etree.Element
}

// Paragraphs returns the a:p children.
func (tf *TextFrame) Paragraphs() []*Paragraph {
	var ps []*Paragraph
	for _, e := range tf.body.SelectElements("a:p") {
		ps = append(ps, &Paragraph{el: e})
	}
	return ps
}

// Clear leaves exactly one empty paragraph, keeping the first paragraph's
// properties, and returns it.
func (tf *TextFrame) Clear() *Paragraph {
	ps := tf.Paragraphs()
	if len(ps) == 0 {
		return tf.AddParagraph()
	}
	for _, p := range ps[1:] {
		tf.body.RemoveChild(p.el)
	}
	ps[0].Clear()
	return ps[0]
}

// AddParagraph appends a new empty paragraph after the last one.
func (tf *TextFrame) AddParagraph() *Paragraph {
	p := etree.NewElement("a:p")
	tf.body.AddChild(p)
	return &Paragraph{el: p}
}

// Text joins paragraph texts with newlines.
func (tf *TextFrame) Text() string {
	ps := tf.Paragraphs()
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Paragraph wraps an a:p element.
type Paragraph struct {
	el *etree.Element
}

func isContent(e *etree.Element) bool {
	switch e.Tag {
	case "r", "br", "fld":
		return true
	}
	return false
}

// Clear removes runs, line breaks and fields. Paragraph properties and the
// end-of-paragraph run properties stay.
func (p *Paragraph) Clear() {
	for _, c := range p.el.ChildElements() {
		if isContent(c) {
			p.el.RemoveChild(c)
		}
	}
}

// Runs returns the a:r children.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, e := range p.el.SelectElements("a:r") {
		runs = append(runs, &Run{el: e})
	}
	return runs
}

// Text concatenates run and field text; line breaks become "\v".
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, c := range p.el.ChildElements() {
		switch c.Tag {
		case "r", "fld":
			if t := c.SelectElement("a:t"); t != nil {
				b.WriteString(t.Text())
			}
		case "br":
			b.WriteString("\v")
		}
	}
	return b.String()
}

// SetText replaces the paragraph content. "\n" and "\v" become line breaks;
// empty segments produce no run. Other control characters are escaped as
// _xHHHH_.
func (p *Paragraph) SetText(text string) []*Run {
	p.Clear()
	text = strings.ReplaceAll(text, "\n", "\v")
	var runs []*Run
	for i, seg := range strings.Split(text, "\v") {
		if i > 0 {
			p.insertContent(etree.NewElement("a:br"))
		}
		if seg == "" {
			continue
		}
		r := etree.NewElement("a:r")
		r.CreateElement("a:t").SetText(escapeControl(seg))
		p.insertContent(r)
		runs = append(runs, &Run{el: r})
	}
	return runs
}

// escapeControl writes characters XML 1.0 cannot carry (C0 controls other
// than tab, newline and carriage return) as _xHHHH_, the form Office reads
// back as the original character.
func escapeControl(s string) string {
	if strings.IndexFunc(s, isXMLControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isXMLControl(r) {
			fmt.Fprintf(&b, "_x%04X_", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isXMLControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}

// insertContent places e before a:endParaRPr when present.
func (p *Paragraph) insertContent(e *etree.Element) {
	if end := p.el.SelectElement("a:endParaRPr"); end != nil {
		p.el.InsertChildAt(end.Index(), e)
		return
	}
	p.el.AddChild(e)
}

// Level returns the outline level (a:pPr/@lvl), 0 when unset.
func (p *Paragraph) Level() int {
	pPr := p.el.SelectElement("a:pPr")
	if pPr == nil {
		return 0
	}
	n, err := strconv.Atoi(pPr.SelectAttrValue("lvl", "0"))
	if err != nil {
		return 0
	}
	return n
}

// SetLevel sets the outline level; 0 removes the attribute.
func (p *Paragraph) SetLevel(level int) {
	pPr := p.el.SelectElement("a:pPr")
	if level == 0 {
		if pPr != nil {
			pPr.RemoveAttr("lvl")
		}
		return
	}
	if pPr == nil {
		pPr = etree.NewElement("a:pPr")
		p.el.InsertChildAt(0, pPr)
	}
	pPr.CreateAttr("lvl", strconv.Itoa(level))
}

// Run wraps an a:r element.
type Run struct {
	el *etree.Element
}

// Text returns the run text.
func (r *Run) Text() string {
	if t := r.el.SelectElement("a:t"); t != nil {
		return t.Text()
	}
	return ""
}

// Font gives access to the run's character properties.
func (r *Run) Font() *Font {
	return &Font{run: r.el}
}
