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

	"github.com/veldt-id/openid4vp/oauth"
	"github.com/veldt-id/openid4vp/pe"
)

// PayloadType discriminates the authorization response payload variants.
type PayloadType int

const (
	// SiopAuthenticationPayload carries an ID token.
	SiopAuthenticationPayload PayloadType = iota
	// OpenID4VPAuthorizationPayload carries a VP token and its presentation submission.
	OpenID4VPAuthorizationPayload
	// SiopOpenID4VPAuthenticationPayload carries both.
	SiopOpenID4VPAuthenticationPayload
	// InvalidRequestPayload reports a protocol error back to the verifier.
	InvalidRequestPayload
	// NoConsensusPayload reports that the holder refused the request.
	NoConsensusPayload
)

// ResponsePayload is the authorization response before wire encoding.
// State and ClientID are always copied verbatim from the request: both are echoed
// back to the verifier regardless of the payload variant.
type ResponsePayload struct {
	Type                   PayloadType
	IDToken                string
	VPToken                string
	PresentationSubmission *pe.PresentationSubmission
	Error                  *oauth.OAuth2Error
	State                  string
	ClientID               string
}

// BuildPayload maps the resolved request and the holder's consensus onto a response
// payload. A NegativeConsensus short-circuits every request variant to a
// NoConsensusPayload. A positive consensus must match the request variant; the six
// cross-variant pairings panic since they either drop approved tokens or answer the
// verifier with less than it asked for, which only an integration bug can produce.
func BuildPayload(request ResolvedRequest, consensus Consensus) ResponsePayload {
	req := request.request()
	if _, ok := consensus.(NegativeConsensus); ok {
		return ResponsePayload{Type: NoConsensusPayload, State: req.State, ClientID: req.ClientID}
	}
	switch request.(type) {
	case SiopAuthentication:
		c, ok := consensus.(IDTokenConsensus)
		if !ok {
			panic(pairingViolation(request, consensus))
		}
		return ResponsePayload{
			Type:     SiopAuthenticationPayload,
			IDToken:  c.IDToken,
			State:    req.State,
			ClientID: req.ClientID,
		}
	case OpenID4VPAuthorization:
		c, ok := consensus.(VPTokenConsensus)
		if !ok {
			panic(pairingViolation(request, consensus))
		}
		submission := c.PresentationSubmission
		return ResponsePayload{
			Type:                   OpenID4VPAuthorizationPayload,
			VPToken:                c.VPToken,
			PresentationSubmission: &submission,
			State:                  req.State,
			ClientID:               req.ClientID,
		}
	case SiopOpenID4VPAuthentication:
		c, ok := consensus.(IDAndVPTokenConsensus)
		if !ok {
			panic(pairingViolation(request, consensus))
		}
		submission := c.PresentationSubmission
		return ResponsePayload{
			Type:                   SiopOpenID4VPAuthenticationPayload,
			IDToken:                c.IDToken,
			VPToken:                c.VPToken,
			PresentationSubmission: &submission,
			State:                  req.State,
			ClientID:               req.ClientID,
		}
	default:
		panic(fmt.Sprintf("openid4vp: unknown resolved request type %T", request))
	}
}

// ErrorPayload builds the payload reporting a protocol error back to the verifier,
// e.g. when the wallet holds none of the requested credentials.
func ErrorPayload(request ResolvedRequest, auth2Error oauth.OAuth2Error) ResponsePayload {
	req := request.request()
	return ResponsePayload{
		Type:     InvalidRequestPayload,
		Error:    &auth2Error,
		State:    req.State,
		ClientID: req.ClientID,
	}
}

func pairingViolation(request ResolvedRequest, consensus Consensus) string {
	return fmt.Sprintf("openid4vp: %T cannot answer %T", consensus, request)
}
