package export

import (
	"testing"

	"github.com/umairqidwai1/Slides-Automation/pptx"
	"pgregory.net/rapid"
)

func TestExtractFormatting(t *testing.T) {
	pkg := openReference(t, 3)

	title := ExtractFormatting(shapeOn(t, pkg, 1, 10))
	if title == nil {
		t.Fatal("expected a profile for the reference title")
	}
	if title.Size == nil || *title.Size != 2000 {
		t.Errorf("size = %v", title.Size)
	}
	if title.Bold == nil || !*title.Bold {
		t.Errorf("bold = %v", title.Bold)
	}
	if title.Color == nil || title.Color.String() != "1F3864" {
		t.Errorf("color = %v", title.Color)
	}
	if title.FontName != "Georgia" {
		t.Errorf("font = %q", title.FontName)
	}

	plain := ExtractFormatting(shapeOn(t, pkg, 0, 3))
	if plain == nil {
		t.Fatal("a plain run still yields a profile")
	}
	if plain.Size != nil || plain.Bold != nil || plain.Color != nil || plain.FontName != "" {
		t.Errorf("plain run profile should be empty, got %+v", plain)
	}

	if p := ExtractFormatting(shapeOn(t, pkg, 0, 0)); p != nil {
		t.Errorf("picture should give nil profile, got %+v", p)
	}
}

func TestExtractFormattingWithoutRuns(t *testing.T) {
	pkg := openReference(t, 3)
	sh := shapeOn(t, pkg, 0, 4)
	tf, _ := sh.TextFrame()
	tf.Clear()
	if p := ExtractFormatting(sh); p != nil {
		t.Errorf("empty frame should give nil profile, got %+v", p)
	}
}

func TestScaled(t *testing.T) {
	var nilProfile *FormattingProfile
	if nilProfile.Scaled(1.2) != nil {
		t.Error("nil profile should scale to nil")
	}

	size := 1850
	f := &FormattingProfile{Size: &size, FontName: "Arial"}
	s := f.Scaled(1.2)
	if *s.Size != 2220 {
		t.Errorf("scaled size = %d, want 2220", *s.Size)
	}
	if *f.Size != 1850 {
		t.Error("Scaled must not modify the receiver")
	}
	if s.FontName != "Arial" {
		t.Errorf("font lost: %q", s.FontName)
	}

	noSize := (&FormattingProfile{FontName: "X"}).Scaled(2)
	if noSize.Size != nil {
		t.Error("missing size should stay missing")
	}
}

func TestScaledRounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(100, 40000).Draw(t, "size")
		f := &FormattingProfile{Size: &size}
		got := *f.Scaled(1.2).Size
		exact := float64(size) * 1.2
		if d := float64(got) - exact; d > 0.5 || d < -0.5 {
			t.Fatalf("Scaled(%d) = %d, exact %.2f", size, got, exact)
		}
	})
}

func TestApply(t *testing.T) {
	pkg := openReference(t, 3)
	tf, _ := shapeOn(t, pkg, 1, 11).TextFrame()
	run := tf.Paragraphs()[0].Runs()[0]

	var nilProfile *FormattingProfile
	nilProfile.Apply(run)
	if size, _ := run.Font().Size(); size != 1400 {
		t.Errorf("nil profile changed size to %d", size)
	}

	// only the fields present are written
	size := 3000
	(&FormattingProfile{Size: &size}).Apply(run)
	f := run.Font()
	if got, _ := f.Size(); got != 3000 {
		t.Errorf("size = %d", got)
	}
	if c, _ := f.Color(); c.String() != "404040" {
		t.Errorf("color should be untouched, got %s", c)
	}
	if f.Name() != "Calibri" {
		t.Errorf("font should be untouched, got %q", f.Name())
	}

	red := pptx.RGB{0xFF, 0, 0}
	bold := true
	(&FormattingProfile{Color: &red, Bold: &bold, FontName: "Verdana"}).Apply(run)
	f = run.Font()
	if c, _ := f.Color(); c != red {
		t.Errorf("color = %s", c)
	}
	if b, ok := f.Bold(); !ok || !b {
		t.Error("bold not set")
	}
	if f.Name() != "Verdana" {
		t.Errorf("font = %q", f.Name())
	}
}
