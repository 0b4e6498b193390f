// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "golang.org/x/text/language"

// Gender is the three-way gender code stored on an [Account].
type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
	GenderUnspecified
)

// Valid reports whether g is one of the known gender codes.
func (g Gender) Valid() bool {
	return g >= GenderFemale && g <= GenderUnspecified
}

// DefaultLanguage is the language used for display labels when the caller
// does not ask for a specific one.
var DefaultLanguage = language.Russian

// SupportedLanguages lists the languages gender labels are available in.
// The first entry is the fallback for [language.NewMatcher].
var SupportedLanguages = []language.Tag{
	language.Russian,
	language.English,
}

var genderLabels = map[language.Tag]map[Gender]string{
	language.Russian: {
		GenderFemale:      "Женщина",
		GenderMale:        "Мужчина",
		GenderUnspecified: "Неизвестно",
	},
	language.English: {
		GenderFemale:      "Female",
		GenderMale:        "Male",
		GenderUnspecified: "Unknown",
	},
}

var languageMatcher = language.NewMatcher(SupportedLanguages)

// MatchLanguage picks the best supported language for the given preferred
// tags, falling back to [DefaultLanguage].
func MatchLanguage(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultLanguage
	}

	_, idx, confidence := languageMatcher.Match(preferred...)
	if confidence == language.No {
		return DefaultLanguage
	}

	return SupportedLanguages[idx]
}

// Label renders the gender as a display label in the given language.
// Out-of-range codes render as unspecified.
func (g Gender) Label(lang language.Tag) string {
	labels, ok := genderLabels[lang]
	if !ok {
		labels = genderLabels[DefaultLanguage]
	}

	if !g.Valid() {
		return labels[GenderUnspecified]
	}

	return labels[g]
}
