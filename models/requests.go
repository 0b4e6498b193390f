package models

// Credentials is the login/password bundle extracted by the transport layer
// from whatever credential encoding it uses.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Empty reports whether the bundle carries no login or no password.
func (c Credentials) Empty() bool {
	return c.Login == "" || c.Password == ""
}

// CreateAccountRequest carries the fields of a new account.
type CreateAccountRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	Birthday *Date  `json:"birthday,omitempty"`
	Admin    bool   `json:"admin"`
}

// UpdateInfoRequest overwrites the descriptive fields of the account
// identified by Login.
type UpdateInfoRequest struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	Birthday *Date  `json:"birthday,omitempty"`
}

// UpdatePasswordRequest replaces the password of the account identified by
// Login. OldPassword is ignored when an administrator acts.
type UpdatePasswordRequest struct {
	Login       string `json:"login"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateLoginRequest renames the account identified by OldLogin. Password
// is ignored when an administrator acts.
type UpdateLoginRequest struct {
	OldLogin string `json:"old_login"`
	NewLogin string `json:"new_login"`
	Password string `json:"password"`
}
