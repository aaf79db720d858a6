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

// Package crypto holds the signing capability consumed when producing JWT-secured
// authorization responses. The actual key material is owned by the application
// embedding this library.
package crypto

import (
	"errors"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// ErrPrivateKeyNotFound is returned when the private key doesn't exist
var ErrPrivateKeyNotFound = errors.New("private key not found")

// JWTSigner is the interface used to sign authorization responses.
type JWTSigner interface {
	// KID returns the identifier of the signing key, included as kid header in produced signatures.
	KID() string
	// SupportedAlgorithms returns the JWS algorithms this signer can produce.
	SupportedAlgorithms() []jwa.SignatureAlgorithm
	// SignJWT creates a signed JWT from the given map of claims.
	// The headers param can be used to add additional protected headers.
	SignJWT(claims map[string]interface{}, headers map[string]interface{}) (string, error)
}
