// Package policy decides whether an acting principal may perform an
// account operation. It holds no state and performs no I/O.
package policy

import (
	"strings"

	"github.com/MKhiriev/go-user-directory/models"
)

// Operation names an account operation guarded by [Authorize].
type Operation int

const (
	OperationCreate Operation = iota
	OperationListActive
	OperationGetByLogin
	OperationListOlderThan
	OperationDelete
	OperationRestore
	OperationUpdateInfo
	OperationChangeLogin
	OperationChangePassword
)

var operationNames = map[Operation]string{
	OperationCreate:         "create",
	OperationListActive:     "list-active",
	OperationGetByLogin:     "get-by-login",
	OperationListOlderThan:  "list-older-than",
	OperationDelete:         "delete",
	OperationRestore:        "restore",
	OperationUpdateInfo:     "update-info",
	OperationChangeLogin:    "change-login",
	OperationChangePassword: "change-password",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// AdminOnly reports whether only administrators may perform the operation.
func (o Operation) AdminOnly() bool {
	switch o {
	case OperationUpdateInfo, OperationChangeLogin, OperationChangePassword:
		return false
	default:
		return true
	}
}

// IsAdministrator reports whether principal carries the administrator flag.
func IsAdministrator(principal *models.Account) bool {
	return principal != nil && principal.Admin
}

// CanModify reports whether principal is an administrator or owns the
// account holding targetLogin.
func CanModify(principal *models.Account, targetLogin string) bool {
	if principal == nil {
		return false
	}

	return principal.Admin || strings.EqualFold(principal.Login, targetLogin)
}

// ActingAsAdmin reports whether principal may skip re-proving the current
// password of the target account.
func ActingAsAdmin(principal *models.Account) bool {
	return IsAdministrator(principal)
}

// Authorize gates op for principal. targetLogin is only consulted for
// self-or-admin operations. It returns [ErrUnauthenticated] for a nil
// principal and [ErrForbidden] when the principal lacks the right.
func Authorize(principal *models.Account, op Operation, targetLogin string) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	if op.AdminOnly() {
		if !IsAdministrator(principal) {
			return ErrForbidden
		}
		return nil
	}

	if !CanModify(principal, targetLogin) {
		return ErrForbidden
	}

	return nil
}
