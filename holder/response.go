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

package holder

import (
	"fmt"
	"net/url"

	"github.com/veldt-id/openid4vp/jarm"
	"github.com/veldt-id/openid4vp/oauth"
)

// AuthorizationResponse is the response envelope: a payload paired with the
// delivery mechanism and target taken from the request. For the JWT-secured
// response modes it also carries the request's JARM requirement.
type AuthorizationResponse struct {
	Mode    oauth.ResponseMode
	Target  url.URL
	Payload ResponsePayload
	// JARM is nil unless Mode is one of the .jwt variants.
	JARM jarm.Requirement
}

// BuildResponse builds the payload for the given request and consensus and wraps it
// in the envelope matching the request's response mode. It is pure: identical inputs
// yield structurally equal envelopes.
func BuildResponse(request ResolvedRequest, consensus Consensus) AuthorizationResponse {
	return responseWith(request.request(), BuildPayload(request, consensus))
}

// ErrorResponse is BuildResponse for the error branch.
func ErrorResponse(request ResolvedRequest, auth2Error oauth.OAuth2Error) AuthorizationResponse {
	return responseWith(request.request(), ErrorPayload(request, auth2Error))
}

// responseWith pairs a payload with the envelope for the request's response mode.
// Each of the six modes maps to exactly one envelope shape; a request that reached
// this point with an unknown mode escaped resolver validation, which is fatal.
func responseWith(req Request, payload ResponsePayload) AuthorizationResponse {
	if !req.ResponseMode.Valid() {
		panic(fmt.Sprintf("openid4vp: unsupported response mode %q", req.ResponseMode))
	}
	response := AuthorizationResponse{
		Mode:    req.ResponseMode,
		Target:  req.Target,
		Payload: payload,
	}
	if req.ResponseMode.JWTSecured() {
		response.JARM = req.JARM
	}
	return response
}
