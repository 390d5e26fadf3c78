package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/umairqidwai1/Slides-Automation/config"
	"github.com/umairqidwai1/Slides-Automation/export"
	"github.com/umairqidwai1/Slides-Automation/i18n"
	"github.com/umairqidwai1/Slides-Automation/logger"
	"github.com/umairqidwai1/Slides-Automation/pptx"
)

// App holds one CLI invocation: its config, logger and services.
type App struct {
	cfg     config.Config
	logger  *logger.Logger
	runID   string
	preview *export.PreviewService
}

// NewApp sets up logging and the UI language for cfg. console receives log
// lines when cfg.Verbose is set.
func NewApp(cfg config.Config, console io.Writer) (*App, error) {
	l := logger.NewLogger()
	if cfg.Verbose {
		l.SetConsole(console)
	}
	if cfg.LogDir != "" {
		if err := l.Init(cfg.LogDir); err != nil {
			return nil, WrapError("App", "Init", err)
		}
	}
	i18n.SetLanguage(i18n.Detect(cfg.Language, os.Getenv("LC_ALL"), os.Getenv("LANG")))

	a := &App{
		cfg:    cfg,
		logger: l,
		runID:  uuid.NewString(),
	}
	a.preview = export.NewPreviewService(a.Log)
	return a, nil
}

// Log writes to the run log
func (a *App) Log(message string) {
	a.logger.Log(message)
}

// RunID identifies this invocation in the log.
func (a *App) RunID() string {
	return a.runID
}

// LogPath is the log file of this run, "" without --log-dir.
func (a *App) LogPath() string {
	return a.logger.Path()
}

// Close flushes the log.
func (a *App) Close() {
	a.logger.Close()
}

// Generate runs the template fill pipeline with the app's config.
func (a *App) Generate(ctx context.Context) (*export.GenerateResult, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, WrapError("App", "Configure", err)
	}
	refs, err := a.cfg.Shapes.Refs()
	if err != nil {
		return nil, WrapError("App", "Configure", err)
	}

	a.Log(fmt.Sprintf("[RUN] %s template=%s content=%s output=%s",
		a.runID, a.cfg.TemplatePath, a.cfg.ContentPath, a.cfg.OutputPath))

	svc := export.NewTemplateDeckService(refs, a.cfg.ReferenceSlide, a.cfg.TitleScale, a.Log)
	res, err := svc.Generate(ctx, export.GenerateRequest{
		TemplatePath: a.cfg.TemplatePath,
		ContentPath:  a.cfg.ContentPath,
		OutputPath:   a.cfg.OutputPath,
	})
	if err != nil {
		a.Log(fmt.Sprintf("[RUN] %s failed: %v", a.runID, err))
		return nil, WrapError("TemplateDeckService", "Generate", err)
	}
	a.Log(fmt.Sprintf("[RUN] %s done: %d slides", a.runID, res.Slides))
	return res, nil
}

// ShapeReport is one row of the inspect listing.
type ShapeReport struct {
	Index       int
	ID          string
	Kind        string
	Name        string
	Placeholder string
	HasText     bool
	Text        string
}

// SlideReport lists the shapes of one slide.
type SlideReport struct {
	Index  int
	Part   string
	Shapes []ShapeReport
}

// DeckReport is what inspect prints.
type DeckReport struct {
	Path    string
	Count   int
	Slides  []SlideReport
	Preview []export.SlideText
}

const previewRunes = 60

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-2]) + ".."
}

// Inspect lists the slides and shapes of a deck with their positional
// indexes. slide is 1-based; 0 lists every slide. With preview set the deck
// is also read back through GoPPT.
func (a *App) Inspect(path string, slide int, preview bool) (*DeckReport, error) {
	pkg, err := pptx.Open(path)
	if err != nil {
		return nil, WrapError("App", "Inspect", err)
	}
	pres, err := pkg.Presentation()
	if err != nil {
		return nil, WrapError("App", "Inspect", err)
	}

	report := &DeckReport{Path: path, Count: pres.SlideCount()}
	slides, err := pres.Slides()
	if err != nil {
		return nil, WrapError("App", "Inspect", err)
	}
	if slide > 0 {
		if slide > len(slides) {
			return nil, WrapError("App", "Inspect", fmt.Errorf("%w: %s", pptx.ErrSlideNotFound, i18n.T("inspect.no_slide", slide)))
		}
		slides = slides[slide-1 : slide]
	}

	for _, s := range slides {
		sr := SlideReport{Index: s.Index, Part: s.Part}
		for _, sh := range s.Shapes() {
			sr.Shapes = append(sr.Shapes, ShapeReport{
				Index:       sh.Index,
				ID:          sh.ID(),
				Kind:        sh.Kind(),
				Name:        sh.Name(),
				Placeholder: sh.PlaceholderType(),
				HasText:     sh.HasTextFrame(),
				Text:        truncate(sh.Text(), previewRunes),
			})
		}
		report.Slides = append(report.Slides, sr)
	}

	if preview {
		texts, err := a.preview.SlideTexts(path)
		if err != nil {
			return nil, WrapError("PreviewService", "SlideTexts", err)
		}
		report.Preview = texts
	}
	a.Log(fmt.Sprintf("[INSPECT] %s: %d slides", path, report.Count))
	return report, nil
}
