package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/umairqidwai1/Slides-Automation/pptx"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "slidegen.yaml"

// ShapeBindings says where each text slot lives. Values use the ShapeRef
// syntax: "10", "idx:10", "name:Title 1" or "ph:title".
type ShapeBindings struct {
	ReferenceTitle string `yaml:"referenceTitle"` // on the reference slide
	ReferenceBody  string `yaml:"referenceBody"`
	CoverTitle     string `yaml:"coverTitle"`
	CoverPresenter string `yaml:"coverPresenter"`
	CoverDate      string `yaml:"coverDate"`
	ContentTitle   string `yaml:"contentTitle"`
	ContentBody    string `yaml:"contentBody"`
}

// Config structure
type Config struct {
	TemplatePath   string        `yaml:"template"`
	ContentPath    string        `yaml:"content"`
	OutputPath     string        `yaml:"output"`
	ReferenceSlide int           `yaml:"referenceSlide"` // 0-based
	TitleScale     float64       `yaml:"titleScale"`
	Shapes         ShapeBindings `yaml:"shapes"`
	LogDir         string        `yaml:"logDir"`
	Language       string        `yaml:"language"`
	Verbose        bool          `yaml:"verbose"`
}

// Default returns the layout of the stock template.
func Default() Config {
	return Config{
		TemplatePath:   "templates/Template.pptx",
		ContentPath:    "content.json",
		OutputPath:     "Generated_Presentation.pptx",
		ReferenceSlide: 1,
		TitleScale:     1.2,
		Shapes: ShapeBindings{
			ReferenceTitle: "10",
			ReferenceBody:  "11",
			CoverTitle:     "11",
			CoverPresenter: "10",
			CoverDate:      "12",
			ContentTitle:   "10",
			ContentBody:    "11",
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error
// when optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Refs are the parsed shape bindings.
type Refs struct {
	ReferenceTitle pptx.ShapeRef
	ReferenceBody  pptx.ShapeRef
	CoverTitle     pptx.ShapeRef
	CoverPresenter pptx.ShapeRef
	CoverDate      pptx.ShapeRef
	ContentTitle   pptx.ShapeRef
	ContentBody    pptx.ShapeRef
}

// Refs parses every binding.
func (b ShapeBindings) Refs() (Refs, error) {
	var refs Refs
	fields := []struct {
		name string
		in   string
		out  *pptx.ShapeRef
	}{
		{"referenceTitle", b.ReferenceTitle, &refs.ReferenceTitle},
		{"referenceBody", b.ReferenceBody, &refs.ReferenceBody},
		{"coverTitle", b.CoverTitle, &refs.CoverTitle},
		{"coverPresenter", b.CoverPresenter, &refs.CoverPresenter},
		{"coverDate", b.CoverDate, &refs.CoverDate},
		{"contentTitle", b.ContentTitle, &refs.ContentTitle},
		{"contentBody", b.ContentBody, &refs.ContentBody},
	}
	for _, f := range fields {
		ref, err := pptx.ParseShapeRef(f.in)
		if err != nil {
			return Refs{}, fmt.Errorf("shapes.%s: %w", f.name, err)
		}
		*f.out = ref
	}
	return refs, nil
}

// Validate checks paths, the reference slide, the title scale and bindings.
func (c Config) Validate() error {
	if c.TemplatePath == "" {
		return errors.New("template path is empty")
	}
	if c.ContentPath == "" {
		return errors.New("content path is empty")
	}
	if c.OutputPath == "" {
		return errors.New("output path is empty")
	}
	if c.ReferenceSlide < 0 {
		return fmt.Errorf("referenceSlide must be >= 0, got %d", c.ReferenceSlide)
	}
	if c.TitleScale <= 0 {
		return fmt.Errorf("titleScale must be > 0, got %v", c.TitleScale)
	}
	_, err := c.Shapes.Refs()
	return err
}
