/*
 * Copyright (C) 2026 Veldt community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package oauth

// ErrorCode specifies error codes as defined by the OAuth2 specifications.
// Codes and descriptions are returned in the error response of a failed flow.
type ErrorCode string

const (
	// AccessDenied is returned when the resource owner or authorization server denied the request. (RFC6749)
	// It is also the code reported to the verifier when the holder refuses to share credentials.
	AccessDenied ErrorCode = "access_denied"
	// InvalidRequest is returned when the request is missing a required parameter, includes an
	// invalid parameter value or is otherwise malformed. (RFC6749)
	InvalidRequest ErrorCode = "invalid_request"
	// InvalidRequestObject is returned when the request parameter contains an invalid Request Object. (RFC9101)
	InvalidRequestObject ErrorCode = "invalid_request_object"
	// ServerError is returned when the server encountered an unexpected condition that prevented
	// it from fulfilling the request. (RFC6749)
	ServerError ErrorCode = "server_error"
	// VpFormatsNotSupported is returned when the wallet does not support any of the formats
	// requested by the verifier. (OpenID4VP)
	VpFormatsNotSupported ErrorCode = "vp_formats_not_supported"
)

// OAuth2Error is an OAuth2 error reported back to the requesting party.
type OAuth2Error struct {
	// Code is the error code as defined by the OAuth2 specifications.
	Code ErrorCode `json:"error"`
	// Description is a human-readable text providing additional information about the error.
	Description string `json:"error_description,omitempty"`
	// InternalError is the underlying error, may be omitted. It is not intended to be returned
	// to the requesting party, only to be logged.
	InternalError error `json:"-"`
}

// Error returns the error detail, if any. If there's no detail, it returns the error code.
func (e OAuth2Error) Error() string {
	if e.Description != "" {
		return string(e.Code) + " - " + e.Description
	}
	return string(e.Code)
}
