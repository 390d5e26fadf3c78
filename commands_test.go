package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/umairqidwai1/Slides-Automation/config"
	"github.com/umairqidwai1/Slides-Automation/pptx"
	"github.com/umairqidwai1/Slides-Automation/pptx/pptxtest"
)

type workspace struct {
	dir      string
	template string
	content  string
	config   string
}

func newWorkspace(t *testing.T, slides int, contentJSON string) workspace {
	t.Helper()
	dir := t.TempDir()
	data, err := pptxtest.Reference(slides).Build()
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace{
		dir:      dir,
		template: filepath.Join(dir, "Template.pptx"),
		content:  filepath.Join(dir, "content.json"),
		config:   filepath.Join(dir, "slidegen.yaml"),
	}
	if err := os.WriteFile(ws.template, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ws.content, []byte(contentJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ws.config, []byte("language: en\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return ws
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRoot()
	cmd.SetArgs(args)
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

const twoRecords = `[
	{"title": "Cover", "body": ["Presenter", "Today"]},
	{"title": "Agenda", "body": ["Intro", "- Detail"]}
]`

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRoot()
	if cmd.Use != "slidegen" {
		t.Fatalf("unexpected root %q", cmd.Use)
	}
	for _, name := range []string{"generate", "inspect"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s command", name)
		}
	}
}

func TestRootRunsGenerate(t *testing.T) {
	ws := newWorkspace(t, 5, twoRecords)
	out := filepath.Join(ws.dir, "out", "deck.pptx")
	logDir := filepath.Join(ws.dir, "logs")

	stdout, _, err := run(t, "--config", ws.config, "--template", ws.template, "--content", ws.content, "--output", out, "--log-dir", logDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("output path not reported:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2 records, 3 slides, 2 template slides removed") {
		t.Errorf("summary missing:\n%s", stdout)
	}

	pkg, err := pptx.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	pres, _ := pkg.Presentation()
	if pres.SlideCount() != 3 {
		t.Errorf("slides = %d, want 3", pres.SlideCount())
	}

	logs, _ := filepath.Glob(filepath.Join(logDir, "slidegen_*.log"))
	if len(logs) != 1 {
		t.Fatalf("expected one log file, got %v", logs)
	}
	data, _ := os.ReadFile(logs[0])
	if !strings.Contains(string(data), "[DECK] Saved") {
		t.Errorf("log missing save line:\n%s", data)
	}
}

func TestGenerateSubcommandUsesConfigFile(t *testing.T) {
	ws := newWorkspace(t, 3, twoRecords)
	out := filepath.Join(ws.dir, "from-config.pptx")
	yaml := "language: en\ntemplate: " + ws.template + "\ncontent: " + ws.content + "\noutput: " + out + "\n"
	if err := os.WriteFile(ws.config, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "generate", "--config", ws.config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output from config paths: %v", err)
	}
}

func TestGenerateFailsOnShortTemplate(t *testing.T) {
	ws := newWorkspace(t, 2, `[{"title":"a"},{"title":"b"},{"title":"c"}]`)
	out := filepath.Join(ws.dir, "never.pptx")
	_, _, err := run(t, "--config", ws.config, "--template", ws.template, "--content", ws.content, "--output", out)
	if !errors.Is(err, pptx.ErrSlideNotFound) {
		t.Fatalf("expected ErrSlideNotFound, got %v", err)
	}
	var se *ServiceError
	if !errors.As(err, &se) || se.Operation != "Generate" {
		t.Errorf("expected a ServiceError from Generate, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output should be written on failure")
	}
}

func TestGenerateRejectsBadBinding(t *testing.T) {
	ws := newWorkspace(t, 3, twoRecords)
	if err := os.WriteFile(ws.config, []byte("language: en\nshapes:\n  contentBody: \"slot:1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "--config", ws.config, "--template", ws.template, "--content", ws.content, "--output", filepath.Join(ws.dir, "x.pptx"))
	if err == nil || !strings.Contains(err.Error(), "contentBody") {
		t.Fatalf("expected binding error, got %v", err)
	}
}

func TestInspectListsShapes(t *testing.T) {
	ws := newWorkspace(t, 3, twoRecords)
	stdout, _, err := run(t, "inspect", ws.template, "--config", ws.config, "--slide", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"3 slides", "ppt/slides/slide2.xml", "name:Title", "ph:title", `"Reference title"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "slide1.xml") {
		t.Errorf("--slide 2 should only list slide 2:\n%s", stdout)
	}
}

func TestInspectSlideOutOfRange(t *testing.T) {
	ws := newWorkspace(t, 2, twoRecords)
	_, _, err := run(t, "inspect", ws.template, "--config", ws.config, "--slide", "9")
	if !errors.Is(err, pptx.ErrSlideNotFound) {
		t.Fatalf("expected ErrSlideNotFound, got %v", err)
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	ws := newWorkspace(t, 2, twoRecords)
	cfg, from, err := loadConfig(&globalOptions{configPath: ws.config, logDir: "L", lang: "zh", verbose: true})
	if err != nil {
		t.Fatal(err)
	}
	if from != ws.config {
		t.Errorf("loaded from %q", from)
	}
	if cfg.LogDir != "L" || cfg.Language != "zh" || !cfg.Verbose {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.TemplatePath != config.Default().TemplatePath {
		t.Errorf("unset values should keep defaults, got %q", cfg.TemplatePath)
	}

	if _, _, err := loadConfig(&globalOptions{configPath: filepath.Join(ws.dir, "missing.yaml")}); err == nil {
		t.Error("an explicit missing config file is an error")
	}
}
