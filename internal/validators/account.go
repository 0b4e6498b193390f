package validators

import (
	"context"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/MKhiriev/go-user-directory/models"
)

// Field names match the JSON tags of the request types, which ozzo uses as
// the keys of [validation.Errors].
const (
	FieldLogin       = "login"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldGender      = "gender"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldOldLogin    = "old_login"
	FieldNewLogin    = "new_login"
	FieldAge         = "age"
)

var (
	alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	letters      = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ]+$`)
)

var (
	loginRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 64),
		validation.Match(alphanumeric).Error("must contain only latin letters and digits"),
	}
	passwordRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 128),
		validation.Match(alphanumeric).Error("must contain only latin letters and digits"),
	}
	nameRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 128),
		validation.Match(letters).Error("must contain only latin or cyrillic letters"),
	}
	genderRules = []validation.Rule{
		validation.In(models.GenderFemale, models.GenderMale, models.GenderUnspecified).
			Error("must be 0 (female), 1 (male) or 2 (unspecified)"),
	}
)

// AgeQuery is the argument of an older-than listing.
type AgeQuery struct {
	Age int `json:"age"`
}

// AccountValidator enforces the input constraints of account requests.
type AccountValidator struct{}

// NewAccountValidator constructs a [Validator] for account requests.
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate checks obj against its rules. When fields are given only
// violations of those fields are reported.
func (v *AccountValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var err error

	switch value := obj.(type) {
	case models.CreateAccountRequest:
		err = validateCreateAccount(value)
	case *models.CreateAccountRequest:
		err = validateCreateAccount(*value)

	case models.UpdateInfoRequest:
		err = validateUpdateInfo(value)
	case *models.UpdateInfoRequest:
		err = validateUpdateInfo(*value)

	case models.UpdatePasswordRequest:
		err = validateUpdatePassword(value)
	case *models.UpdatePasswordRequest:
		err = validateUpdatePassword(*value)

	case models.UpdateLoginRequest:
		err = validateUpdateLogin(value)
	case *models.UpdateLoginRequest:
		err = validateUpdateLogin(*value)

	case models.Credentials:
		err = validateCredentials(value)
	case *models.Credentials:
		err = validateCredentials(*value)

	case AgeQuery:
		err = validateAge(value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	if err = onlyFields(err, fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

func validateCreateAccount(r models.CreateAccountRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, loginRules...),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Gender, genderRules...),
	)
}

func validateUpdateInfo(r models.UpdateInfoRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, loginRules...),
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Gender, genderRules...),
	)
}

// validateUpdatePassword leaves OldPassword optional: administrators do
// not send it.
func validateUpdatePassword(r models.UpdatePasswordRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, loginRules...),
		validation.Field(&r.OldPassword, validation.Match(alphanumeric)),
		validation.Field(&r.NewPassword, passwordRules...),
	)
}

func validateUpdateLogin(r models.UpdateLoginRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldLogin, loginRules...),
		validation.Field(&r.NewLogin, loginRules...),
		validation.Field(&r.Password, validation.Match(alphanumeric)),
	)
}

func validateCredentials(r models.Credentials) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func validateAge(q AgeQuery) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Age, validation.Min(0)),
	)
}

// onlyFields drops violations of fields outside the requested set.
func onlyFields(err error, fields []string) error {
	if err == nil || len(fields) == 0 {
		return err
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	kept := validation.Errors{}
	for _, f := range fields {
		if fieldErr, found := errs[f]; found {
			kept[f] = fieldErr
		}
	}

	return kept.Filter()
}
