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
 *
 */

package crypto

import (
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var _ JWTSigner = MemoryJWTSigner{}

// MemoryJWTSigner is a JWTSigner implementation that performs cryptographic operations on an in-memory JWK.
// This should only be used for low-assurance use cases, e.g. session-bound user keys.
// The key must have its alg and kid parameters set.
type MemoryJWTSigner struct {
	Key jwk.Key
}

func (m MemoryJWTSigner) KID() string {
	return m.Key.KeyID()
}

func (m MemoryJWTSigner) SupportedAlgorithms() []jwa.SignatureAlgorithm {
	if alg, ok := m.Key.Algorithm().(jwa.SignatureAlgorithm); ok {
		return []jwa.SignatureAlgorithm{alg}
	}
	return nil
}

func (m MemoryJWTSigner) SignJWT(claims map[string]interface{}, headers map[string]interface{}) (string, error) {
	return signJWT(m.Key, claims, headers)
}

// signJWT signs claims with the given JWK and returns the compacted token.
func signJWT(key jwk.Key, claims map[string]interface{}, headers map[string]interface{}) (string, error) {
	t := jwt.New()
	for k, v := range claims {
		if err := t.Set(k, v); err != nil {
			return "", err
		}
	}
	hdr := jws.NewHeaders()
	if err := hdr.Set(jws.KeyIDKey, key.KeyID()); err != nil {
		return "", err
	}
	for k, v := range headers {
		if err := hdr.Set(k, v); err != nil {
			return "", err
		}
	}

	sig, err := jwt.Sign(t, jwt.WithKey(key.Algorithm(), key, jws.WithProtectedHeaders(hdr)))
	if err != nil {
		return "", err
	}
	return string(sig), nil
}
