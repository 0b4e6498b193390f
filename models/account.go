// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted identity record of the user directory.
//
// Login is unique among all accounts (active and revoked) under
// case-insensitive comparison. RevokedOn and RevokedBy are either both nil
// (the account is active) or both set (the account is soft-deleted).
type Account struct {
	// ID is assigned once at creation and never changes.
	ID uuid.UUID `json:"id"`

	// Login is the mutable lookup key of the account.
	Login string `json:"login"`

	// Password is an opaque credential compared by exact match.
	Password string `json:"-"`

	Name     string     `json:"name"`
	Gender   Gender     `json:"gender"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Admin    bool       `json:"admin"`

	// CreatedOn and CreatedBy are stamped once by the create operation.
	CreatedOn time.Time `json:"created_on"`
	CreatedBy string    `json:"created_by"`

	// ModifiedOn and ModifiedBy are nil until the first modification.
	ModifiedOn *time.Time `json:"modified_on,omitempty"`
	ModifiedBy *string    `json:"modified_by,omitempty"`

	RevokedOn *time.Time `json:"revoked_on,omitempty"`
	RevokedBy *string    `json:"revoked_by,omitempty"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// IsRevoked reports whether the account is soft-deleted.
func (a Account) IsRevoked() bool {
	return a.RevokedOn != nil
}

// IsActive reports whether the account is not soft-deleted.
func (a Account) IsActive() bool {
	return a.RevokedOn == nil
}

// StampModification records who changed the account and when.
func (a *Account) StampModification(by string, at time.Time) {
	a.ModifiedOn = &at
	a.ModifiedBy = &by
}

// StampRevocation marks the account as soft-deleted. Both revocation
// fields are always set together.
func (a *Account) StampRevocation(by string, at time.Time) {
	a.RevokedOn = &at
	a.RevokedBy = &by
}

// ClearRevocation restores a soft-deleted account.
func (a *Account) ClearRevocation() {
	a.RevokedOn = nil
	a.RevokedBy = nil
}

// AgeAt returns the number of whole years elapsed between birthday and
// today, decremented when the birthday has not occurred yet this year.
func AgeAt(birthday, today time.Time) int {
	age := today.Year() - birthday.Year()
	if today.Month() < birthday.Month() ||
		(today.Month() == birthday.Month() && today.Day() < birthday.Day()) {
		age--
	}

	return age
}

// OlderThan reports whether the account has a birthday and its age at
// today exceeds age. Accounts without a birthday are never older.
//
// Both dates are taken in UTC, the zone birthdays are stored in, so the
// answer does not depend on the zone of the caller's clock.
func (a Account) OlderThan(age int, today time.Time) bool {
	if a.Birthday == nil {
		return false
	}

	return AgeAt(a.Birthday.UTC(), today.UTC()) > age
}
