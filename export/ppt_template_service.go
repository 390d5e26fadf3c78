package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/umairqidwai1/Slides-Automation/config"
	"github.com/umairqidwai1/Slides-Automation/content"
	"github.com/umairqidwai1/Slides-Automation/pptx"
)

// TemplateDeckService fills a PowerPoint template with content records,
// reusing the template's own slides and trimming the ones left over.
type TemplateDeckService struct {
	refs           config.Refs
	referenceSlide int
	titleScale     float64
	logger         func(string)
}

// NewTemplateDeckService creates a new template deck service
func NewTemplateDeckService(refs config.Refs, referenceSlide int, titleScale float64, logger func(string)) *TemplateDeckService {
	return &TemplateDeckService{
		refs:           refs,
		referenceSlide: referenceSlide,
		titleScale:     titleScale,
		logger:         logger,
	}
}

func (s *TemplateDeckService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// GenerateRequest names the three files of a run.
type GenerateRequest struct {
	TemplatePath string
	ContentPath  string
	OutputPath   string
}

// FillResult describes what Fill did to the deck.
type FillResult struct {
	Records         int
	Slides          int
	Removed         int
	TitleFormatting *FormattingProfile
	BodyFormatting  *FormattingProfile
}

// GenerateResult is FillResult plus where the deck went.
type GenerateResult struct {
	FillResult
	OutputPath string
}

// Generate loads the template and content, fills the deck and writes it.
func (s *TemplateDeckService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	pkg, err := pptx.Open(req.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", req.TemplatePath, err)
	}
	s.log(fmt.Sprintf("[DECK] Template loaded: %s", req.TemplatePath))

	records, err := content.Load(req.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", req.ContentPath, err)
	}
	s.log(fmt.Sprintf("[DECK] Content loaded: %d records", len(records)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.Fill(pkg, records)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(req.OutputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := pkg.Save(req.OutputPath); err != nil {
		return nil, fmt.Errorf("save %s: %w", req.OutputPath, err)
	}
	s.log(fmt.Sprintf("[DECK] Saved %s (%d slides)", req.OutputPath, res.Slides))

	return &GenerateResult{FillResult: *res, OutputPath: req.OutputPath}, nil
}

// Fill writes records into the template held by pkg. Record 0 goes on the
// cover (slide 0), record i on slide i, then slides past len(records) are
// removed while keeping the template's final slide.
func (s *TemplateDeckService) Fill(pkg *pptx.Package, records []content.Record) (*FillResult, error) {
	pres, err := pkg.Presentation()
	if err != nil {
		return nil, err
	}

	titleFmt, bodyFmt, err := s.referenceFormatting(pres)
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		if err := s.populateCover(pres, records[0], titleFmt, bodyFmt); err != nil {
			return nil, err
		}
		for i, rec := range records[1:] {
			if err := s.populateContent(pres, i+1, rec, titleFmt, bodyFmt); err != nil {
				return nil, err
			}
		}
	}

	removed, err := s.trim(pres, len(records))
	if err != nil {
		return nil, err
	}

	return &FillResult{
		Records:         len(records),
		Slides:          pres.SlideCount(),
		Removed:         removed,
		TitleFormatting: titleFmt,
		BodyFormatting:  bodyFmt,
	}, nil
}

// referenceFormatting captures the title and body profiles before any slide
// is rewritten; the reference slide is itself a content slide.
func (s *TemplateDeckService) referenceFormatting(pres *pptx.Presentation) (*FormattingProfile, *FormattingProfile, error) {
	slide, err := pres.Slide(s.referenceSlide)
	if err != nil {
		return nil, nil, fmt.Errorf("reference slide: %w", err)
	}
	titleShape, err := slide.Find(s.refs.ReferenceTitle)
	if err != nil {
		return nil, nil, fmt.Errorf("reference title: %w", err)
	}
	bodyShape, err := slide.Find(s.refs.ReferenceBody)
	if err != nil {
		return nil, nil, fmt.Errorf("reference body: %w", err)
	}

	titleFmt := ExtractFormatting(titleShape).Scaled(s.titleScale)
	bodyFmt := ExtractFormatting(bodyShape)
	if titleFmt == nil {
		s.log("[DECK] Reference title has no run formatting")
	}
	if bodyFmt == nil {
		s.log("[DECK] Reference body has no run formatting")
	}
	return titleFmt, bodyFmt, nil
}

func (s *TemplateDeckService) populateCover(pres *pptx.Presentation, rec content.Record, titleFmt, bodyFmt *FormattingProfile) error {
	slide, err := pres.Slide(0)
	if err != nil {
		return fmt.Errorf("cover: %w", err)
	}
	if err := writeText(slide, s.refs.CoverTitle, rec.Title, titleFmt); err != nil {
		return fmt.Errorf("cover title: %w", err)
	}
	if err := writeText(slide, s.refs.CoverPresenter, rec.Field(0), bodyFmt); err != nil {
		return fmt.Errorf("cover presenter: %w", err)
	}
	if err := writeText(slide, s.refs.CoverDate, rec.Field(1), bodyFmt); err != nil {
		return fmt.Errorf("cover date: %w", err)
	}
	s.log(fmt.Sprintf("[DECK] Cover: %q", rec.Title))
	return nil
}

func (s *TemplateDeckService) populateContent(pres *pptx.Presentation, index int, rec content.Record, titleFmt, bodyFmt *FormattingProfile) error {
	slide, err := pres.Slide(index)
	if err != nil {
		return fmt.Errorf("content record %d: template has too few slides: %w", index, err)
	}
	if err := writeText(slide, s.refs.ContentTitle, rec.Title, titleFmt); err != nil {
		return fmt.Errorf("slide %d title: %w", index+1, err)
	}

	shape, err := slide.Find(s.refs.ContentBody)
	if err != nil {
		return fmt.Errorf("slide %d body: %w", index+1, err)
	}
	tf, err := shape.TextFrame()
	if err != nil {
		return fmt.Errorf("slide %d body: %w", index+1, err)
	}
	// the paragraph kept by Clear stays empty; each line is appended after it
	tf.Clear()
	for _, line := range rec.Body {
		p := tf.AddParagraph()
		bodyFmt.ApplyAll(p.SetText(strings.TrimSpace(line)))
		p.SetLevel(bulletLevel(line))
	}
	s.log(fmt.Sprintf("[DECK] Slide %d: %q, %d lines", index+1, rec.Title, len(rec.Body)))
	return nil
}

// bulletLevel nests lines written as "- item" one level deeper.
func bulletLevel(line string) int {
	if strings.HasPrefix(line, "-") {
		return 1
	}
	return 0
}

// trim deletes the second-to-last slide until the deck holds one slide per
// record plus one. The cover consumes record 0 and the template's closing
// slide is kept, so the count works out to records+1.
func (s *TemplateDeckService) trim(pres *pptx.Presentation, records int) (int, error) {
	target := records + 1
	removed := 0
	for pres.SlideCount() > target {
		index := pres.SlideCount() - 2
		if err := pres.DeleteSlide(index); err != nil {
			return removed, fmt.Errorf("trim slide %d: %w", index+1, err)
		}
		removed++
	}
	if removed > 0 {
		s.log(fmt.Sprintf("[DECK] Trimmed %d unused slides", removed))
	}
	return removed, nil
}

// writeText clears the text frame of the shape bound by ref and writes
// text as its only paragraph.
func writeText(slide *pptx.Slide, ref pptx.ShapeRef, text string, profile *FormattingProfile) error {
	shape, err := slide.Find(ref)
	if err != nil {
		return err
	}
	tf, err := shape.TextFrame()
	if err != nil {
		return err
	}
	profile.ApplyAll(tf.Clear().SetText(text))
	return nil
}
