package nuvemshop

import "encoding/json"

// LocalizedString decodes platform fields that arrive either as a plain string
// or as a language map like {"pt": "...", "es": "..."}.
type LocalizedString map[string]string

var localePreference = []string{"pt", "es", "en"}

// UnmarshalJSON accepts both string and object representations.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*l = LocalizedString{"pt": asString}
		return nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(data, &asMap); err != nil {
		return err
	}
	*l = LocalizedString(asMap)
	return nil
}

// Resolve picks the best translation, preferring pt, then es, then en, then
// any remaining value.
func (l LocalizedString) Resolve() string {
	if len(l) == 0 {
		return ""
	}
	for _, locale := range localePreference {
		if value, ok := l[locale]; ok && value != "" {
			return value
		}
	}
	for _, value := range l {
		if value != "" {
			return value
		}
	}
	return ""
}
