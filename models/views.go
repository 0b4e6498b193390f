// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// AccountView is the restricted projection of an [Account] used in
// listings.
type AccountView struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Birthday *Date  `json:"birthday"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// AccountFullView is the privileged projection of an [Account] that adds
// the identifier and all provenance fields.
type AccountFullView struct {
	ID         uuid.UUID  `json:"id"`
	Login      string     `json:"login"`
	Name       string     `json:"name"`
	Gender     string     `json:"gender"`
	Birthday   *Date      `json:"birthday"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedOn  time.Time  `json:"created_on"`
	CreatedBy  string     `json:"created_by"`
	ModifiedOn *time.Time `json:"modified_on"`
	ModifiedBy *string    `json:"modified_by"`
	RevokedOn  *time.Time `json:"revoked_on"`
	RevokedBy  *string    `json:"revoked_by"`
	IsActive   bool       `json:"is_active"`
}

// View projects the account into an [AccountView] with the gender label
// rendered in lang.
func (a Account) View(lang language.Tag) AccountView {
	return AccountView{
		Login:    a.Login,
		Name:     a.Name,
		Gender:   a.Gender.Label(lang),
		Birthday: NewDate(a.Birthday),
		IsActive: a.IsActive(),
		IsAdmin:  a.Admin,
	}
}

// FullView projects the account into an [AccountFullView] with the gender
// label rendered in lang.
func (a Account) FullView(lang language.Tag) AccountFullView {
	return AccountFullView{
		ID:         a.ID,
		Login:      a.Login,
		Name:       a.Name,
		Gender:     a.Gender.Label(lang),
		Birthday:   NewDate(a.Birthday),
		IsAdmin:    a.Admin,
		CreatedOn:  a.CreatedOn,
		CreatedBy:  a.CreatedBy,
		ModifiedOn: a.ModifiedOn,
		ModifiedBy: a.ModifiedBy,
		RevokedOn:  a.RevokedOn,
		RevokedBy:  a.RevokedBy,
		IsActive:   a.IsActive(),
	}
}

// Views projects every account in accounts into an [AccountView].
func Views(accounts []Account, lang language.Tag) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View(lang))
	}

	return views
}
