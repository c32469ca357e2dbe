package domain

import (
	"golang.org/x/text/language"
)

var (
	PrimaryLanguage   = language.English
	SecondaryLanguage = language.Arabic

	languageMatcher = language.NewMatcher([]language.Tag{PrimaryLanguage, SecondaryLanguage})
)

// BilingualText is a display string stored in the primary language with an optional translation.
type BilingualText struct {
	Primary   string  `json:"primary"`
	Secondary *string `json:"secondary,omitempty"`
}

func NewBilingualText(primary string, secondary string) BilingualText {
	t := BilingualText{Primary: primary}
	if secondary != "" {
		t.Secondary = &secondary
	}

	return t
}

// Localize picks the value for the requested language (an Accept-Language style string).
// It falls back to the primary value, then to any value that is present.
func Localize(t BilingualText, lang string) string {
	if lang != "" {
		tags, _, err := language.ParseAcceptLanguage(lang)
		if err == nil && len(tags) > 0 {
			_, idx, conf := languageMatcher.Match(tags...)
			if conf != language.No && idx == 1 && t.Secondary != nil && *t.Secondary != "" {
				return *t.Secondary
			}
		}
	}

	if t.Primary != "" {
		return t.Primary
	}

	if t.Secondary != nil {
		return *t.Secondary
	}

	return ""
}
