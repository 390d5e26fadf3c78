// Package pptxtest builds small presentation packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"
)

// Run is the first run of a shape's text.
type Run struct {
	Text  string
	Size  int    // centipoints, 0 = unset
	Bold  string // "", "1" or "0"
	Color string // RRGGBB, "" = unset
	Font  string // latin typeface, "" = unset
}

// Shape describes one spTree child.
type Shape struct {
	Name        string
	Placeholder string // ph type, "" = not a placeholder
	NoText      bool   // emit a p:pic instead of a p:sp
	Paragraphs  []Run  // one run per paragraph
}

// Slide describes one slide.
type Slide struct {
	Shapes []Shape
	Notes  bool // attach a notes slide part
}

// Deck is the package to build.
type Deck struct {
	Slides []Slide
}

// Stamp is the fixed modification time written for every entry.
var Stamp = time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)

const (
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	ctSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctNotes = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctPres  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
)

// Build returns the .pptx bytes.
func (d Deck) Build() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, body string) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: Stamp})
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + body))
		return err
	}

	var ct strings.Builder
	ct.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	ct.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	ct.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	ct.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="` + ctPres + `"/>`)
	for i, s := range d.Slides {
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, i+1, ctSlide)
		if s.Notes {
			fmt.Fprintf(&ct, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="%s"/>`, i+1, ctNotes)
		}
	}
	ct.WriteString(`</Types>`)
	if err := write("[Content_Types].xml", ct.String()); err != nil {
		return nil, err
	}

	if err := write("_rels/.rels", `<Relationships xmlns="`+nsRel+`">`+
		`<Relationship Id="rId1" Type="`+nsR+`/officeDocument" Target="ppt/presentation.xml"/>`+
		`</Relationships>`); err != nil {
		return nil, err
	}

	var pres, presRels strings.Builder
	pres.WriteString(`<p:presentation xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:sldIdLst>`)
	presRels.WriteString(`<Relationships xmlns="` + nsRel + `">`)
	for i := range d.Slides {
		fmt.Fprintf(&pres, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+1)
		fmt.Fprintf(&presRels, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, i+1, nsR, i+1)
	}
	pres.WriteString(`</p:sldIdLst><p:sldSz cx="12192000" cy="6858000"/></p:presentation>`)
	presRels.WriteString(`</Relationships>`)
	if err := write("ppt/presentation.xml", pres.String()); err != nil {
		return nil, err
	}
	if err := write("ppt/_rels/presentation.xml.rels", presRels.String()); err != nil {
		return nil, err
	}

	for i, s := range d.Slides {
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s)); err != nil {
			return nil, err
		}
		if !s.Notes {
			continue
		}
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), fmt.Sprintf(
			`<Relationships xmlns="%s"><Relationship Id="rId1" Type="%s/notesSlide" Target="../notesSlides/notesSlide%d.xml"/></Relationships>`,
			nsRel, nsR, i+1)); err != nil {
			return nil, err
		}
		if err := write(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", i+1),
			`<p:notes xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`"><p:cSld><p:spTree/></p:cSld></p:notes>`); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func slideXML(s Slide) string {
	var b strings.Builder
	b.WriteString(`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for i, sh := range s.Shapes {
		name := sh.Name
		if name == "" {
			name = fmt.Sprintf("Shape %d", i)
		}
		id := i + 2
		if sh.NoText {
			fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill/><p:spPr/></p:pic>`, id, html.EscapeString(name))
			continue
		}
		ph := ""
		if sh.Placeholder != "" {
			ph = fmt.Sprintf(`<p:ph type="%s"/>`, sh.Placeholder)
		}
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`, id, html.EscapeString(name), ph)
		if len(sh.Paragraphs) == 0 {
			b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
		}
		for _, r := range sh.Paragraphs {
			b.WriteString(`<a:p><a:pPr algn="l"/>`)
			b.WriteString(runXML(r))
			b.WriteString(`<a:endParaRPr lang="en-US"/></a:p>`)
		}
		b.WriteString(`</p:txBody></p:sp>`)
	}
	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func runXML(r Run) string {
	var attrs, children strings.Builder
	attrs.WriteString(` lang="en-US"`)
	if r.Size > 0 {
		fmt.Fprintf(&attrs, ` sz="%d"`, r.Size)
	}
	if r.Bold != "" {
		fmt.Fprintf(&attrs, ` b="%s"`, r.Bold)
	}
	if r.Color != "" {
		fmt.Fprintf(&children, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Color)
	}
	if r.Font != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/>`, html.EscapeString(r.Font))
	}
	return fmt.Sprintf(`<a:r><a:rPr%s>%s</a:rPr><a:t>%s</a:t></a:r>`, attrs.String(), children.String(), html.EscapeString(r.Text))
}

// Reference returns a deck shaped like the production template: every
// slide has 13 shapes, slide 2's shapes 10 and 11 carry the reference
// title and body formatting.
func Reference(slides int) Deck {
	d := Deck{}
	for i := 0; i < slides; i++ {
		shapes := make([]Shape, 13)
		for j := range shapes {
			shapes[j] = Shape{
				Name:       fmt.Sprintf("Shape %d", j),
				Paragraphs: []Run{{Text: fmt.Sprintf("slide %d shape %d", i+1, j)}},
			}
		}
		shapes[0] = Shape{Name: "Logo", NoText: true}
		shapes[10].Name = "Title"
		shapes[10].Placeholder = "title"
		shapes[11].Name = "Body"
		shapes[11].Placeholder = "body"
		shapes[12].Name = "Date"
		shapes[12].Placeholder = "dt"
		if i == 1 {
			shapes[10].Paragraphs = []Run{{Text: "Reference title", Size: 2000, Bold: "1", Color: "1F3864", Font: "Georgia"}}
			shapes[11].Paragraphs = []Run{
				{Text: "Reference body", Size: 1400, Bold: "0", Color: "404040", Font: "Calibri"},
				{Text: "second line", Size: 1200},
			}
		}
		d.Slides = append(d.Slides, Slide{Shapes: shapes, Notes: true})
	}
	return d
}
