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

package jarm

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/veldt-id/openid4vp/oauth"
	"github.com/veldt-id/openid4vp/pe"
)

// Claims is the claim set of a JWT-secured authorization response.
// Zero-valued fields are omitted from the produced JWT.
type Claims struct {
	// Audience is the client_id of the verifier the response is intended for.
	Audience string
	// State is the opaque correlation value from the authorization request.
	State string
	// IDToken is the self-issued ID token, for SIOP responses.
	IDToken string
	// VPToken carries the verifiable presentation(s), for OpenID4VP responses.
	VPToken string
	// PresentationSubmission describes how VPToken fulfills the presentation definition.
	PresentationSubmission *pe.PresentationSubmission
	// Error and ErrorDescription carry an error response instead of tokens.
	Error            oauth.ErrorCode
	ErrorDescription string
}

// claimSet renders the claims as a map, adding iss (when the wallet has an issuer
// identifier) and iat. The map form is what the JWTSigner contract accepts and what
// gets serialized as JWE plaintext for the encrypted-only variant.
func (c Claims) claimSet(issuer string, issuedAt time.Time) map[string]interface{} {
	claims := map[string]interface{}{
		jwt.AudienceKey: c.Audience,
		jwt.IssuedAtKey: issuedAt.Unix(),
	}
	if issuer != "" {
		claims[jwt.IssuerKey] = issuer
	}
	if c.State != "" {
		claims[oauth.StateParam] = c.State
	}
	if c.IDToken != "" {
		claims[oauth.IDTokenParam] = c.IDToken
	}
	if c.VPToken != "" {
		claims[oauth.VpTokenParam] = c.VPToken
	}
	if c.PresentationSubmission != nil {
		claims[oauth.PresentationSubmissionParam] = c.PresentationSubmission
	}
	if c.Error != "" {
		claims[oauth.ErrorParam] = string(c.Error)
		if c.ErrorDescription != "" {
			claims[oauth.ErrorDescriptionParam] = c.ErrorDescription
		}
	}
	return claims
}
