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

// Package holder builds and dispatches SIOPv2/OpenID4VP authorization responses on
// behalf of the wallet. Request resolution, consent gathering and credential
// selection happen elsewhere; this package starts where both a resolved request
// and the holder's decision are available.
package holder

import (
	"net/url"

	"github.com/veldt-id/openid4vp/jarm"
	"github.com/veldt-id/openid4vp/oauth"
)

// Request holds the fields of a resolved authorization request that drive response
// construction. It is immutable once resolved; the resolver has already validated
// the request and negotiated the JARM requirement against the wallet's capabilities.
type Request struct {
	// ClientID identifies the verifier, echoed as aud in JWT-secured responses.
	ClientID string
	// Nonce binds the response tokens to the request.
	Nonce string
	// State is the verifier's opaque correlation value, empty when not provided.
	State string
	// ResponseMode is the delivery mechanism declared by the request.
	ResponseMode oauth.ResponseMode
	// Target is the verifier's response_uri for the direct_post modes,
	// or its redirect_uri for the query and fragment modes.
	Target url.URL
	// JARM is the negotiated response protection, nil for the plain response modes.
	JARM jarm.Requirement
}

// ResolvedRequest is the resolved authorization request, one of SiopAuthentication,
// OpenID4VPAuthorization or SiopOpenID4VPAuthentication.
type ResolvedRequest interface {
	request() Request
}

// SiopAuthentication requests a self-issued ID token. (SIOPv2)
type SiopAuthentication struct {
	Request
}

// OpenID4VPAuthorization requests a verifiable presentation. (OpenID4VP)
type OpenID4VPAuthorization struct {
	Request
}

// SiopOpenID4VPAuthentication requests both a self-issued ID token and a
// verifiable presentation in a single flow.
type SiopOpenID4VPAuthentication struct {
	Request
}

func (r SiopAuthentication) request() Request          { return r.Request }
func (r OpenID4VPAuthorization) request() Request      { return r.Request }
func (r SiopOpenID4VPAuthentication) request() Request { return r.Request }
