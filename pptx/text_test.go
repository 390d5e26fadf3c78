package pptx

import (
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"pgregory.net/rapid"

	"github.com/umairqidwai1/Slides-Automation/pptx/pptxtest"
)

func referenceShape(t *testing.T, index int) *Shape {
	t.Helper()
	pkg := openDeck(t, pptxtest.Reference(2))
	pres, err := pkg.Presentation()
	if err != nil {
		t.Fatal(err)
	}
	slide, err := pres.Slide(1)
	if err != nil {
		t.Fatal(err)
	}
	sh, err := slide.Shape(index)
	if err != nil {
		t.Fatal(err)
	}
	return sh
}

func xmlOf(e *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(e.Copy())
	s, _ := doc.WriteToString()
	return s
}

func TestFontGetters(t *testing.T) {
	tf, err := referenceShape(t, 10).TextFrame()
	if err != nil {
		t.Fatal(err)
	}
	run := tf.Paragraphs()[0].Runs()[0]
	f := run.Font()

	if size, ok := f.Size(); !ok || size != 2000 {
		t.Errorf("Size() = %d, %v", size, ok)
	}
	if bold, ok := f.Bold(); !ok || !bold {
		t.Errorf("Bold() = %v, %v", bold, ok)
	}
	if c, ok := f.Color(); !ok || c.String() != "1F3864" {
		t.Errorf("Color() = %v, %v", c, ok)
	}
	if f.Name() != "Georgia" {
		t.Errorf("Name() = %q", f.Name())
	}
}

func TestFontSettersOrderChildren(t *testing.T) {
	r := etree.NewElement("a:r")
	r.CreateElement("a:t").SetText("x")
	run := &Run{el: r}
	f := run.Font()

	if _, ok := f.Size(); ok {
		t.Fatal("fresh run should have no size")
	}
	f.SetName("Arial")
	f.SetColor(RGB{0x12, 0xAB, 0xEF})
	f.SetSize(1800)
	f.SetBold(false)

	got := xmlOf(r)
	want := `<a:r><a:rPr sz="1800" b="0"><a:solidFill><a:srgbClr val="12ABEF"/></a:solidFill><a:latin typeface="Arial"/></a:rPr><a:t>x</a:t></a:r>`
	if got != want {
		t.Errorf("run XML\n got: %s\nwant: %s", got, want)
	}

	f.SetColor(RGB{0, 0, 0})
	if n := len(r.SelectElement("a:rPr").SelectElements("a:solidFill")); n != 1 {
		t.Errorf("SetColor left %d fills", n)
	}
	if bold, ok := f.Bold(); !ok || bold {
		t.Errorf("Bold() = %v, %v after SetBold(false)", bold, ok)
	}
}

func TestTextFrameClearKeepsFirstParagraphProperties(t *testing.T) {
	tf, err := referenceShape(t, 11).TextFrame()
	if err != nil {
		t.Fatal(err)
	}
	p := tf.Clear()
	ps := tf.Paragraphs()
	if len(ps) != 1 {
		t.Fatalf("paragraphs after Clear = %d, want 1", len(ps))
	}
	if len(p.Runs()) != 0 {
		t.Errorf("cleared paragraph still has runs")
	}
	if p.el.SelectElement("a:pPr") == nil || p.el.SelectElement("a:endParaRPr") == nil {
		t.Errorf("paragraph properties were dropped: %s", xmlOf(p.el))
	}
}

func TestClearOnEmptyBodyAddsParagraph(t *testing.T) {
	body := etree.NewElement("p:txBody")
	body.CreateElement("a:bodyPr")
	tf := &TextFrame{body: body}
	tf.Clear()
	if len(tf.Paragraphs()) != 1 {
		t.Fatalf("expected a single paragraph")
	}
}

func TestParagraphSetText(t *testing.T) {
	p := &Paragraph{el: etree.NewElement("a:p")}
	p.el.CreateElement("a:endParaRPr")

	runs := p.SetText("one\ntwo")
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if got := p.Text(); got != "one\vtwo" {
		t.Errorf("Text() = %q", got)
	}
	children := p.el.ChildElements()
	if last := children[len(children)-1]; last.Tag != "endParaRPr" {
		t.Errorf("endParaRPr must stay last, got %s", last.Tag)
	}

	if runs := p.SetText(""); len(runs) != 0 {
		t.Errorf("empty text produced %d runs", len(runs))
	}
	if p.Text() != "" {
		t.Errorf("Text() after empty SetText = %q", p.Text())
	}
}

func TestParagraphSetTextEscapesControlCharacters(t *testing.T) {
	doc := etree.NewDocument()
	p := &Paragraph{el: doc.CreateElement("a:p")}

	runs := p.SetText("c\x01x\ttab\x1F")
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if got := runs[0].Text(); got != "c_x0001_x\ttab_x001F_" {
		t.Errorf("run text = %q", got)
	}
	out, err := doc.WriteToString()
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(out, '\uFFFD') || strings.ContainsRune(out, 0x01) {
		t.Errorf("control character leaked into XML: %q", out)
	}

	tests := map[string]string{
		"plain":      "plain",
		"a\x00b":     "a_x0000_b",
		"\x0C":       "_x000C_",
		"keep\r\n\t": "keep\r\n\t",
	}
	for in, want := range tests {
		if got := escapeControl(in); got != want {
			t.Errorf("escapeControl(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParagraphLevel(t *testing.T) {
	p := &Paragraph{el: etree.NewElement("a:p")}
	if p.Level() != 0 {
		t.Fatal("default level should be 0")
	}
	p.SetLevel(1)
	if p.Level() != 1 {
		t.Errorf("Level() = %d, want 1", p.Level())
	}
	if !strings.Contains(xmlOf(p.el), `<a:pPr lvl="1"/>`) {
		t.Errorf("unexpected XML %s", xmlOf(p.el))
	}
	p.SetLevel(0)
	if p.Level() != 0 || p.el.SelectElement("a:pPr").SelectAttr("lvl") != nil {
		t.Errorf("SetLevel(0) should remove lvl")
	}
}

func TestParseRGB(t *testing.T) {
	if _, err := ParseRGB("12345"); err == nil {
		t.Error("expected error for short value")
	}
	if _, err := ParseRGB("GGGGGG"); err == nil {
		t.Error("expected error for non-hex value")
	}
	rapid.Check(t, func(t *rapid.T) {
		c := RGB{
			rapid.Uint8().Draw(t, "r"),
			rapid.Uint8().Draw(t, "g"),
			rapid.Uint8().Draw(t, "b"),
		}
		got, err := ParseRGB("#" + strings.ToLower(c.String()))
		if err != nil {
			t.Fatal(err)
		}
		if got != c {
			t.Fatalf("ParseRGB(%s) = %v, want %v", c, got, c)
		}
	})
}

func TestParseShapeRef(t *testing.T) {
	tests := []struct {
		in      string
		want    ShapeRef
		wantErr bool
	}{
		{in: "11", want: IndexRef(11)},
		{in: " idx:3 ", want: IndexRef(3)},
		{in: "name:Title 1", want: ShapeRef{Kind: RefName, Value: "Title 1"}},
		{in: "ph:body", want: ShapeRef{Kind: RefPlaceholder, Value: "body"}},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "name:", wantErr: true},
		{in: "shape:1", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseShapeRef(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseShapeRef(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseShapeRef(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShapeRef(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDeleteSlideKeepsOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "slides")
		del := rapid.IntRange(0, n-1).Draw(rt, "delete")

		data, err := pptxtest.Reference(n).Build()
		if err != nil {
			rt.Fatal(err)
		}
		pkg, err := OpenBytes(data)
		if err != nil {
			rt.Fatal(err)
		}
		pres, _ := pkg.Presentation()
		if err := pres.DeleteSlide(del); err != nil {
			rt.Fatal(err)
		}
		if pres.SlideCount() != n-1 {
			rt.Fatalf("SlideCount() = %d, want %d", pres.SlideCount(), n-1)
		}
		slides, err := pres.Slides()
		if err != nil {
			rt.Fatal(err)
		}
		want := 0
		for _, s := range slides {
			if want == del {
				want++
			}
			if !strings.HasSuffix(s.Part, "slide"+strconv.Itoa(want+1)+".xml") {
				rt.Fatalf("slide order broken: got %s, want slide%d", s.Part, want+1)
			}
			want++
		}
	})
}
