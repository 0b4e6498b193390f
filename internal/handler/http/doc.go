// Package http implements the REST transport of the user directory.
//
// Every request gets a trace id and an access log entry. Requests under
// /api/users additionally have their Basic credentials resolved into the
// acting principal, which each handler passes through the authorization
// policy before delegating to the account service. Responses are JSON,
// compressed with gzip when the client accepts it.
package http
