package export

import (
	"math"

	"github.com/umairqidwai1/Slides-Automation/pptx"
)

// FormattingProfile is the coarse run formatting copied from a reference
// shape. Nil fields and an empty FontName mean "leave as inherited".
type FormattingProfile struct {
	Color    *pptx.RGB
	Size     *int // centipoints
	Bold     *bool
	FontName string
}

// ExtractFormatting reads the first run of the first paragraph of shape.
// It returns nil when the shape has no text frame, no paragraph or no run.
func ExtractFormatting(shape *pptx.Shape) *FormattingProfile {
	tf, err := shape.TextFrame()
	if err != nil {
		return nil
	}
	paragraphs := tf.Paragraphs()
	if len(paragraphs) == 0 {
		return nil
	}
	runs := paragraphs[0].Runs()
	if len(runs) == 0 {
		return nil
	}

	font := runs[0].Font()
	profile := &FormattingProfile{FontName: font.Name()}
	if c, ok := font.Color(); ok {
		profile.Color = &c
	}
	if size, ok := font.Size(); ok {
		profile.Size = &size
	}
	if bold, ok := font.Bold(); ok {
		profile.Bold = &bold
	}
	return profile
}

// Scaled returns a copy with the size multiplied by factor, rounded to the
// nearest centipoint. A profile without a size is copied unchanged.
func (f *FormattingProfile) Scaled(factor float64) *FormattingProfile {
	if f == nil {
		return nil
	}
	out := *f
	if f.Size != nil {
		size := int(math.Round(float64(*f.Size) * factor))
		out.Size = &size
	}
	return &out
}

// Apply writes the profile onto run. A nil profile leaves the run alone.
func (f *FormattingProfile) Apply(run *pptx.Run) {
	if f == nil {
		return
	}
	font := run.Font()
	if f.Color != nil {
		font.SetColor(*f.Color)
	}
	if f.Size != nil && *f.Size > 0 {
		font.SetSize(*f.Size)
	}
	if f.Bold != nil {
		font.SetBold(*f.Bold)
	}
	if f.FontName != "" {
		font.SetName(f.FontName)
	}
}

// ApplyAll formats every run.
func (f *FormattingProfile) ApplyAll(runs []*pptx.Run) {
	for _, r := range runs {
		f.Apply(r)
	}
}
