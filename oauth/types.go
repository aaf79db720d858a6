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

// Package oauth contains generic OAuth related functionality, variables and constants
package oauth

// oauth parameter keys
const (
	// ClientIDParam is the parameter name for the client_id parameter. (RFC6749)
	ClientIDParam = "client_id"
	// ErrorParam is the parameter name for the error parameter
	ErrorParam = "error"
	// ErrorDescriptionParam is the parameter name for the error_description parameter
	ErrorDescriptionParam = "error_description"
	// IDTokenParam is the parameter name for the id_token parameter. (SIOPv2)
	IDTokenParam = "id_token"
	// NonceParam is the parameter name for the nonce parameter
	NonceParam = "nonce"
	// PresentationSubmissionParam is the parameter name for the presentation_submission parameter. (OpenID4VP)
	PresentationSubmissionParam = "presentation_submission"
	// RedirectURIParam is the parameter name for the redirect_uri parameter. (RFC6749)
	RedirectURIParam = "redirect_uri"
	// ResponseModeParam is the parameter name for the OAuth2 response_mode parameter.
	ResponseModeParam = "response_mode"
	// ResponseParam is the parameter name for the JWT-secured authorization response parameter. (JARM)
	ResponseParam = "response"
	// ResponseURIParam is the parameter name for the OpenID4VP response_uri parameter.
	ResponseURIParam = "response_uri"
	// StateParam is the parameter name for the state parameter. (RFC6749)
	StateParam = "state"
	// VpTokenParam is the parameter name for the vp_token parameter. (OpenID4VP)
	VpTokenParam = "vp_token"
)

// ResponseMode is the mechanism used by the wallet to deliver the authorization response,
// declared by the verifier through the response_mode authorization request parameter.
// The plain variants are defined by OAuth2 Multiple Response Types / OpenID4VP,
// the .jwt variants by JARM.
type ResponseMode string

const (
	// ResponseModeDirectPost posts the response parameters to the verifier's response_uri. (OpenID4VP)
	ResponseModeDirectPost ResponseMode = "direct_post"
	// ResponseModeDirectPostJWT posts a JWT-secured response to the verifier's response_uri. (OpenID4VP, JARM)
	ResponseModeDirectPostJWT ResponseMode = "direct_post.jwt"
	// ResponseModeQuery encodes the response parameters in the redirect URI query.
	ResponseModeQuery ResponseMode = "query"
	// ResponseModeQueryJWT encodes a JWT-secured response in the redirect URI query. (JARM)
	ResponseModeQueryJWT ResponseMode = "query.jwt"
	// ResponseModeFragment encodes the response parameters in the redirect URI fragment.
	ResponseModeFragment ResponseMode = "fragment"
	// ResponseModeFragmentJWT encodes a JWT-secured response in the redirect URI fragment. (JARM)
	ResponseModeFragmentJWT ResponseMode = "fragment.jwt"
)

// Valid reports whether the response mode is one of the six supported modes.
func (m ResponseMode) Valid() bool {
	switch m {
	case ResponseModeDirectPost, ResponseModeDirectPostJWT,
		ResponseModeQuery, ResponseModeQueryJWT,
		ResponseModeFragment, ResponseModeFragmentJWT:
		return true
	}
	return false
}

// JWTSecured reports whether the response must be wrapped in a JARM JWT.
func (m ResponseMode) JWTSecured() bool {
	switch m {
	case ResponseModeDirectPostJWT, ResponseModeQueryJWT, ResponseModeFragmentJWT:
		return true
	}
	return false
}

// UsesDirectPost reports whether the response is delivered with an HTTP POST to the
// verifier's response_uri, as opposed to a redirect of the user-agent.
func (m ResponseMode) UsesDirectPost() bool {
	return m == ResponseModeDirectPost || m == ResponseModeDirectPostJWT
}

// Redirect is the response from the verifier on the direct_post authorization response.
type Redirect struct {
	// RedirectURI is the URI to redirect the user-agent to.
	RedirectURI string `json:"redirect_uri"`
}
