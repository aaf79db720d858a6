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

// Package jarm implements JWT-secured authorization responses as specified by
// https://openid.net/specs/oauth-v2-jarm.html. The response payload is carried
// in a signed JWT, an encrypted JWT, or a signed JWT nested in an encrypted one.
package jarm

import (
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/veldt-id/openid4vp/crypto"
)

// Requirement describes the JOSE protection negotiated between the verifier's client
// metadata and the wallet's capabilities. It is attached to a resolved authorization
// request whose response mode is one of the .jwt variants.
type Requirement interface {
	requirement()
}

// Signed requires the authorization response to be a JWT signed by the wallet.
type Signed struct {
	// Algorithm is the JWS algorithm negotiated for the response.
	Algorithm jwa.SignatureAlgorithm
	// Signer produces the signature. It must support Algorithm.
	Signer crypto.JWTSigner
}

// Encrypted requires the authorization response to be an encrypted JWT,
// encrypted to one of the verifier's published keys.
type Encrypted struct {
	// Algorithm is the JWE key management algorithm negotiated for the response.
	Algorithm jwa.KeyEncryptionAlgorithm
	// Method is the JWE content encryption method.
	Method jwa.ContentEncryptionAlgorithm
	// Keys holds the verifier's public keys. A key is only eligible when its key type
	// matches the family of Algorithm.
	Keys jwk.Set
}

// SignedAndEncrypted requires a signed JWT nested in an encrypted JWT:
// the outer layer is encryption, the inner layer the wallet's signature.
// Both sub-requirements must be independently valid.
type SignedAndEncrypted struct {
	Signed    Signed
	Encrypted Encrypted
}

func (Signed) requirement()             {}
func (Encrypted) requirement()          {}
func (SignedAndEncrypted) requirement() {}
