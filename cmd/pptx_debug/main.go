package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/umairqidwai1/Slides-Automation/pptx"
)

func describeRun(r *pptx.Run) string {
	f := r.Font()
	var attrs []string
	if sz, ok := f.Size(); ok {
		attrs = append(attrs, fmt.Sprintf("sz=%d", sz))
	}
	if b, ok := f.Bold(); ok {
		attrs = append(attrs, fmt.Sprintf("b=%v", b))
	}
	if c, ok := f.Color(); ok {
		attrs = append(attrs, "color="+c.String())
	}
	if name := f.Name(); name != "" {
		attrs = append(attrs, "font="+name)
	}
	return fmt.Sprintf("%q [%s]", r.Text(), strings.Join(attrs, " "))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pptx_debug <file.pptx> [slide]")
		os.Exit(1)
	}

	pkg, err := pptx.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening pptx: %v\n", err)
		os.Exit(1)
	}

	only := 0
	if len(os.Args) > 2 {
		only, err = strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid slide number %q\n", os.Args[2])
			os.Exit(1)
		}
	}

	pres, err := pkg.Presentation()
	if err != nil {
		fmt.Printf("Error reading presentation: %v\n", err)
		os.Exit(1)
	}
	slides, err := pres.Slides()
	if err != nil {
		fmt.Printf("Error reading slides: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parts: %d, slides: %d\n", len(pkg.PartNames()), len(slides))

	for _, slide := range slides {
		if only > 0 && slide.Index+1 != only {
			continue
		}
		fmt.Printf("\n=== Slide %d: %s ===\n", slide.Index+1, slide.Part)
		if layout, err := slide.LayoutPart(); err == nil {
			fmt.Printf("  layout: %s\n", layout)
		}
		if notes, err := slide.NotesPart(); err == nil {
			fmt.Printf("  notes:  %s\n", notes)
		}

		rels, err := pkg.Relationships(slide.Part)
		if err == nil {
			for _, rel := range rels {
				kind := rel.Type[strings.LastIndex(rel.Type, "/")+1:]
				fmt.Printf("  rel %s %s -> %s\n", rel.ID, kind, rel.Target)
			}
		}

		for _, sh := range slide.Shapes() {
			fmt.Printf("  [%d] %s id=%s name=%q", sh.Index, sh.Kind(), sh.ID(), sh.Name())
			if ph := sh.PlaceholderType(); ph != "" {
				fmt.Printf(" ph=%s", ph)
			}
			fmt.Println()

			tf, err := sh.TextFrame()
			if err != nil {
				continue
			}
			for pi, p := range tf.Paragraphs() {
				fmt.Printf("      p%d lvl=%d", pi, p.Level())
				for _, r := range p.Runs() {
					fmt.Printf(" %s", describeRun(r))
				}
				fmt.Println()
			}
		}
	}
}
