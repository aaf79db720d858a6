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

import "github.com/veldt-id/openid4vp/pe"

// Consensus is the holder's decision on a resolved authorization request.
// A positive consensus must match the request variant: an ID token answers a SIOP
// authentication, a VP token an OpenID4VP authorization, and both answer the
// combined flow. Handing the builder a mismatched consensus is a programming
// error in the caller, not a protocol condition.
type Consensus interface {
	consensus()
}

// NegativeConsensus is the holder's refusal to answer the request.
type NegativeConsensus struct{}

// IDTokenConsensus approves a SiopAuthentication request.
type IDTokenConsensus struct {
	// IDToken is the self-issued ID token built from the holder's claims.
	IDToken string
}

// VPTokenConsensus approves an OpenID4VPAuthorization request.
type VPTokenConsensus struct {
	// VPToken carries the verifiable presentation(s) the holder agreed to share.
	VPToken string
	// PresentationSubmission maps the presentation onto the requested definition.
	PresentationSubmission pe.PresentationSubmission
}

// IDAndVPTokenConsensus approves a SiopOpenID4VPAuthentication request.
type IDAndVPTokenConsensus struct {
	IDToken                string
	VPToken                string
	PresentationSubmission pe.PresentationSubmission
}

func (NegativeConsensus) consensus()     {}
func (IDTokenConsensus) consensus()      {}
func (VPTokenConsensus) consensus()      {}
func (IDAndVPTokenConsensus) consensus() {}
