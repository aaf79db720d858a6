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
	"encoding/json"
	"fmt"

	"github.com/veldt-id/openid4vp/jarm"
	"github.com/veldt-id/openid4vp/oauth"
)

// parameters renders the payload as its wire parameters, shared by the form body of
// the direct_post modes and the query/fragment of the redirect modes. An absent state
// is an omitted parameter, never an empty one.
func (p ResponsePayload) parameters() (map[string]string, error) {
	params := map[string]string{}
	switch p.Type {
	case SiopAuthenticationPayload:
		params[oauth.IDTokenParam] = p.IDToken
	case OpenID4VPAuthorizationPayload:
		submission, err := json.Marshal(p.PresentationSubmission)
		if err != nil {
			return nil, err
		}
		params[oauth.VpTokenParam] = p.VPToken
		params[oauth.PresentationSubmissionParam] = string(submission)
	case SiopOpenID4VPAuthenticationPayload:
		submission, err := json.Marshal(p.PresentationSubmission)
		if err != nil {
			return nil, err
		}
		params[oauth.IDTokenParam] = p.IDToken
		params[oauth.VpTokenParam] = p.VPToken
		params[oauth.PresentationSubmissionParam] = string(submission)
	case InvalidRequestPayload:
		params[oauth.ErrorParam] = string(p.Error.Code)
		if p.Error.Description != "" {
			params[oauth.ErrorDescriptionParam] = p.Error.Description
		}
	case NoConsensusPayload:
		params[oauth.ErrorParam] = string(oauth.AccessDenied)
	default:
		panic(fmt.Sprintf("openid4vp: unknown payload type %d", p.Type))
	}
	if p.State != "" {
		params[oauth.StateParam] = p.State
	}
	return params, nil
}

// jarmClaims renders the payload as the claim set of a JWT-secured response.
// The claim names mirror the wire parameter names; the presentation submission is
// embedded as a JSON object rather than a serialized string.
func (p ResponsePayload) jarmClaims() jarm.Claims {
	claims := jarm.Claims{
		Audience: p.ClientID,
		State:    p.State,
	}
	switch p.Type {
	case SiopAuthenticationPayload:
		claims.IDToken = p.IDToken
	case OpenID4VPAuthorizationPayload:
		claims.VPToken = p.VPToken
		claims.PresentationSubmission = p.PresentationSubmission
	case SiopOpenID4VPAuthenticationPayload:
		claims.IDToken = p.IDToken
		claims.VPToken = p.VPToken
		claims.PresentationSubmission = p.PresentationSubmission
	case InvalidRequestPayload:
		claims.Error = p.Error.Code
		claims.ErrorDescription = p.Error.Description
	case NoConsensusPayload:
		claims.Error = oauth.AccessDenied
	default:
		panic(fmt.Sprintf("openid4vp: unknown payload type %d", p.Type))
	}
	return claims
}

// responseParameters returns the wire parameters for the envelope. For the JWT-secured
// modes the payload is collapsed into exactly two parameters: the JARM JWT and, when
// present, the state. A JARM encoding failure aborts the dispatch; the payload is
// never downgraded to plain parameters.
func (d *Dispatcher) responseParameters(response AuthorizationResponse) (map[string]string, error) {
	if !response.Mode.JWTSecured() {
		return response.Payload.parameters()
	}
	if response.JARM == nil {
		return nil, fmt.Errorf("response mode %s requires a JARM requirement", response.Mode)
	}
	token, err := d.jarm.Encode(response.JARM, response.Payload.jarmClaims())
	if err != nil {
		return nil, fmt.Errorf("unable to create JWT-secured authorization response: %w", err)
	}
	params := map[string]string{oauth.ResponseParam: token}
	if state := response.Payload.State; state != "" {
		params[oauth.StateParam] = state
	}
	return params, nil
}
