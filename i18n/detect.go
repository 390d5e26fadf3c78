package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.SimplifiedChinese,
})

// ParseLanguage maps a language setting to a supported Language. It takes
// the display names ("English", "简体中文") as well as BCP 47 tags and
// POSIX locale strings such as "zh_CN.UTF-8". Anything unrecognised is English.
func ParseLanguage(s string) Language {
	switch strings.TrimSpace(s) {
	case string(Chinese):
		return Chinese
	case string(English), "", "C", "POSIX":
		return English
	}

	tag := s
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(tag, "_", "-")

	_, index := language.MatchStrings(matcher, tag)
	if index == 1 {
		return Chinese
	}
	return English
}

// Detect picks the language from an explicit setting, falling back to the
// given locale environment values in order (typically $LC_ALL, $LANG).
func Detect(setting string, env ...string) Language {
	if strings.TrimSpace(setting) != "" {
		return ParseLanguage(setting)
	}
	for _, v := range env {
		if v != "" {
			return ParseLanguage(v)
		}
	}
	return English
}
