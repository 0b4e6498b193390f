package http

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/MKhiriev/go-user-directory/models"
)

const langQueryParam = "lang"

// requestLanguage picks the language of gender labels. The lang query
// parameter overrides Accept-Language; anything unparsable falls back to
// [models.DefaultLanguage].
func requestLanguage(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get(langQueryParam); lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			return models.DefaultLanguage
		}
		return models.MatchLanguage(tag)
	}

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return models.DefaultLanguage
	}

	return models.MatchLanguage(tags...)
}
