package models

import "strings"

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"zh": "Chinese",
	"ko": "Korean",
	"ar": "Arabic",
}

// LanguageName translates a locale code such as "es_ES" into a language name
// for prompt context. Unrecognized codes come back as the upper-cased language
// part; an empty locale returns "".
func LanguageName(locale string) string {
	if locale == "" {
		return ""
	}
	code := strings.ToLower(strings.SplitN(locale, "_", 2)[0])
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
