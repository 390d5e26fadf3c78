package i18n

var englishTranslations = map[string]string{
	// Generate
	"generate.run":       "Run %s",
	"generate.template":  "Template: %s",
	"generate.content":   "Content:  %s",
	"generate.done":      "Saved presentation: %s",
	"generate.summary":   "%d records, %d slides, %d template slides removed",
	"generate.failed":    "Generation failed",
	"generate.cancelled": "Cancelled before the presentation was written",

	// Inspect
	"inspect.header":   "%s: %d slides",
	"inspect.slide":    "Slide %d (%s)",
	"inspect.no_text":  "(no text frame)",
	"inspect.empty":    "(empty)",
	"inspect.preview":  "Preview",
	"inspect.no_slide": "No such slide: %d",


	// Config and logging
	"config.loaded":  "Config loaded from %s",
	"config.invalid": "Invalid configuration: %v",
	"log.file":       "Log file: %s",

	// Errors
	"error.prefix": "Error: %v",
}
