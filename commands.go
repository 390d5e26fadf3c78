package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/umairqidwai1/Slides-Automation/config"
	"github.com/umairqidwai1/Slides-Automation/i18n"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Width(13)
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logDir     string
	lang       string
	verbose    bool
}

type generateOptions struct {
	template string
	content  string
	output   string
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRoot()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorStyle.Render(i18n.T("error.prefix", err)))
		return 1
	}
	return 0
}

func NewRoot() *cobra.Command {
	global := &globalOptions{}
	gen := &generateOptions{}

	root := &cobra.Command{
		Use:           "slidegen",
		Short:         "Fill a PowerPoint template with slides from a JSON file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, gen)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&global.configPath, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	pf.StringVar(&global.logDir, "log-dir", "", "Write a run log into this directory")
	pf.StringVar(&global.lang, "lang", "", "Message language: en or zh (default from $LANG)")
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "Print log lines to stderr")
	bindGenerateFlags(root, gen)

	root.AddCommand(
		GenerateCmd(global),
		InspectCmd(global),
	)
	return root
}

func bindGenerateFlags(cmd *cobra.Command, gen *generateOptions) {
	cmd.Flags().StringVar(&gen.template, "template", "", "Template .pptx")
	cmd.Flags().StringVar(&gen.content, "content", "", "Content JSON file")
	cmd.Flags().StringVar(&gen.output, "output", "", "Output .pptx")
}

// loadConfig layers defaults, the config file and command-line flags.
func loadConfig(global *globalOptions) (config.Config, string, error) {
	path := global.configPath
	optional := path == ""
	if optional {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		path = ""
	}
	if global.logDir != "" {
		cfg.LogDir = global.logDir
	}
	if global.lang != "" {
		cfg.Language = global.lang
	}
	if global.verbose {
		cfg.Verbose = true
	}
	return cfg, path, nil
}

func newApp(cmd *cobra.Command, cfg config.Config, loadedFrom string) (*App, error) {
	app, err := NewApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if loadedFrom != "" {
		app.Log(i18n.T("config.loaded", loadedFrom))
	}
	return app, nil
}

func GenerateCmd(global *globalOptions) *cobra.Command {
	gen := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill the template and write the presentation (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, gen)
		},
	}
	bindGenerateFlags(cmd, gen)
	return cmd
}

func runGenerate(cmd *cobra.Command, global *globalOptions, gen *generateOptions) error {
	cfg, loadedFrom, err := loadConfig(global)
	if err != nil {
		return err
	}
	if gen.template != "" {
		cfg.TemplatePath = gen.template
	}
	if gen.content != "" {
		cfg.ContentPath = gen.content
	}
	if gen.output != "" {
		cfg.OutputPath = gen.output
	}

	app, err := newApp(cmd, cfg, loadedFrom)
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, mutedStyle.Render(i18n.T("generate.run", app.RunID())))
	fmt.Fprintln(out, i18n.T("generate.template", cfg.TemplatePath))
	fmt.Fprintln(out, i18n.T("generate.content", cfg.ContentPath))

	res, err := app.Generate(cmd.Context())
	if err != nil {
		if cmd.Context().Err() != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("generate.cancelled"))
		}
		return fmt.Errorf("%s: %w", i18n.T("generate.failed"), err)
	}

	fmt.Fprintln(out, successStyle.Render("✓ "+i18n.T("generate.done", res.OutputPath)))
	fmt.Fprintln(out, mutedStyle.Render("  "+i18n.T("generate.summary", res.Records, res.Slides, res.Removed)))
	if p := app.LogPath(); p != "" {
		fmt.Fprintln(out, mutedStyle.Render(i18n.T("log.file", p)))
	}
	return nil
}

func InspectCmd(global *globalOptions) *cobra.Command {
	var slide int
	var preview bool
	cmd := &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: "List slides and shapes with the indexes used by shape bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loadedFrom, err := loadConfig(global)
			if err != nil {
				return err
			}
			app, err := newApp(cmd, cfg, loadedFrom)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Inspect(args[0], slide, preview)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 0, "Only list this slide (1-based)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Also show the text as read back by the GoPPT reader")
	return cmd
}

var flatten = strings.NewReplacer("\n", " | ", "\v", " ")

func printReport(w io.Writer, r *DeckReport) {
	fmt.Fprintln(w, headerStyle.Render(i18n.T("inspect.header", r.Path, r.Count)))
	for _, s := range r.Slides {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(i18n.T("inspect.slide", s.Index+1, s.Part)))
		for _, sh := range s.Shapes {
			ref := "name:" + sh.Name
			if sh.Placeholder != "" {
				ref += "  ph:" + sh.Placeholder
			}
			text := mutedStyle.Render(i18n.T("inspect.no_text"))
			if sh.HasText {
				if sh.Text == "" {
					text = mutedStyle.Render(i18n.T("inspect.empty"))
				} else {
					text = fmt.Sprintf("%q", flatten.Replace(sh.Text))
				}
			}
			fmt.Fprintf(w, "  %3d  %s %s  %s\n", sh.Index, kindStyle.Render(sh.Kind), ref, text)
		}
	}

	if len(r.Preview) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(i18n.T("inspect.preview")))
		for _, p := range r.Preview {
			fmt.Fprintf(w, "  %3d  %s\n", p.Index+1, p.Title)
			for _, t := range p.Texts {
				fmt.Fprintf(w, "       %s\n", mutedStyle.Render(t))
			}
		}
	}
}
