package models

import "strings"

// Language identifies a translation target. RTL marks scripts that are laid
// out right-to-left in the report.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	RTL        bool   `json:"rtl"`
}

var (
	Arabic = Language{Code: "arabic", Name: "Arabic", NativeName: "العربية", RTL: true}
	Hindi  = Language{Code: "hindi", Name: "Hindi", NativeName: "हिन्दी"}
	Hebrew = Language{Code: "hebrew", Name: "Hebrew", NativeName: "עברית", RTL: true}
)

var knownLanguages = map[string]Language{
	Arabic.Code: Arabic,
	Hindi.Code:  Hindi,
	Hebrew.Code: Hebrew,
}

// DefaultLanguages is the fixed target-language order used when none is
// configured.
func DefaultLanguages() []Language {
	return []Language{Arabic, Hindi, Hebrew}
}

// LanguageByCode resolves a configured language code.
func LanguageByCode(code string) (Language, bool) {
	lang, ok := knownLanguages[strings.ToLower(strings.TrimSpace(code))]
	return lang, ok
}
