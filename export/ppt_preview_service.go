package export

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// PreviewService reads generated decks back through GoPPT as plain text
// per slide.
type PreviewService struct {
	logger func(string)
}

// NewPreviewService creates a new preview service
func NewPreviewService(logger func(string)) *PreviewService {
	return &PreviewService{logger: logger}
}

func (s *PreviewService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// SlideText is the visible text of one slide. Title is the first non-empty
// paragraph; Texts holds the rest.
type SlideText struct {
	Index int
	Title string
	Texts []string
}

// SlideTexts opens a deck and collects the text of every slide.
func (s *PreviewService) SlideTexts(filePath string) ([]SlideText, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPT file: %w", err)
	}

	slides := pres.GetAllSlides()
	out := make([]SlideText, 0, len(slides))
	for i, slide := range slides {
		st := SlideText{Index: i}
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				var b strings.Builder
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						b.WriteString(run.GetText())
					}
				}
				text := strings.TrimSpace(b.String())
				if text == "" {
					continue
				}
				if st.Title == "" {
					st.Title = text
				} else {
					st.Texts = append(st.Texts, text)
				}
			}
		}
		out = append(out, st)
	}
	s.log(fmt.Sprintf("[PREVIEW] %s: %d slides", filePath, len(out)))
	return out, nil
}
