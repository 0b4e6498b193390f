package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestAccount_Views(t *testing.T) {
	birthday := date(1990, 5, 6)
	a := Account{
		ID:        uuid.New(),
		Login:     "bob",
		Password:  "secret",
		Name:      "Bob",
		Gender:    GenderMale,
		Birthday:  &birthday,
		CreatedOn: date(2026, 1, 1),
		CreatedBy: "Admin",
	}
	a.StampRevocation("Admin", date(2026, 2, 1))

	view := a.View(language.English)
	assert.Equal(t, AccountView{
		Login:    "bob",
		Name:     "Bob",
		Gender:   "Male",
		Birthday: &Date{Time: birthday},
		IsActive: false,
	}, view)

	full := a.FullView(language.Russian)
	assert.Equal(t, a.ID, full.ID)
	assert.Equal(t, "Мужчина", full.Gender)
	assert.Equal(t, "Admin", full.CreatedBy)
	assert.Equal(t, a.RevokedOn, full.RevokedOn)
	assert.False(t, full.IsActive)
}

func TestViews_PreservesOrder(t *testing.T) {
	views := Views([]Account{{Login: "a"}, {Login: "b"}}, language.English)

	if assert.Len(t, views, 2) {
		assert.Equal(t, "a", views[0].Login)
		assert.Equal(t, "b", views[1].Login)
	}
}
