package i18n

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a catalog defines no messages.
var ErrEmptyCatalog = errors.New("i18n: catalog has no messages")

// Catalog is a Translator backed by a YAML message catalog of the form
//
//	en:
//	  required: "is required"
//	  too_small: "must be >= {min}"
//
// Codes missing from the catalog fall back to the built-in dictionary of the
// same language, then to English.
type Catalog struct {
	lang     string
	messages map[string]map[string]string
}

// LoadYAML parses a catalog and selects lang as the active language.
func LoadYAML(data []byte, lang string) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}
	n := 0
	for _, msgs := range raw {
		n += len(msgs)
	}
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Catalog{lang: lang, messages: raw}, nil
}

// Languages lists the languages defined by the catalog.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		out = append(out, lang)
	}
	return out
}

// Message implements Translator.
func (c *Catalog) Message(code string, data map[string]string) string {
	if msg, ok := c.messages[c.lang][code]; ok {
		return Format(msg, data)
	}
	lang := c.lang
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}.Message(code, data)
}
