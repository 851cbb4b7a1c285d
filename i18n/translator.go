package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for violation codes.
// data provides optional values substituted into {placeholders} (for example,
// "min" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"required":     "may not be null",
		"not_empty":    "may not be empty",
		"not_blank":    "may not be blank",
		"is_null":      "must be null",
		"too_small":    "must be larger than or equal to {min}",
		"too_big":      "must be less than or equal to {max}",
		"too_short":    "length must be larger than or equal to {min}",
		"too_long":     "length must be less than or equal to {max}",
		"size":         "size must be between {min} and {max}",
		"between":      "must be between {min} and {max}",
		"pattern":      "must match {pattern}",
		"invalid_enum": "must be one of {values}",
	},
	"ja": {
		"required":     "必須です",
		"not_empty":    "空にできません",
		"not_blank":    "空白のみにはできません",
		"is_null":      "値を指定できません",
		"too_small":    "{min} 以上である必要があります",
		"too_big":      "{max} 以下である必要があります",
		"too_short":    "{min} 文字以上である必要があります",
		"too_long":     "{max} 文字以下である必要があります",
		"size":         "サイズは {min} から {max} の範囲である必要があります",
		"between":      "{min} から {max} の範囲である必要があります",
		"pattern":      "{pattern} に一致する必要があります",
		"invalid_enum": "{values} のいずれかである必要があります",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return Format(msg, data)
}

// Format substitutes {key} placeholders in msg with values from data.
// Unknown placeholders are left as written.
func Format(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
