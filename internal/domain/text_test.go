package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	text := NewBilingualText("Opening Night", "ليلة الافتتاح")

	tests := []struct {
		name string
		text BilingualText
		lang string
		want string
	}{
		{name: "no preference", text: text, want: "Opening Night"},
		{name: "arabic", text: text, lang: "ar", want: "ليلة الافتتاح"},
		{name: "arabic with region and weights", text: text, lang: "ar-SA,en;q=0.5", want: "ليلة الافتتاح"},
		{name: "english", text: text, lang: "en-US", want: "Opening Night"},
		{name: "unsupported language", text: text, lang: "fr", want: "Opening Night"},
		{name: "arabic without translation", text: NewBilingualText("Opening Night", ""), lang: "ar", want: "Opening Night"},
		{name: "only a translation", text: BilingualText{Secondary: text.Secondary}, want: "ليلة الافتتاح"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Localize(tt.text, tt.lang))
		})
	}
}
