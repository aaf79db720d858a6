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
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwe"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// ErrNoMatchingKey is returned when the verifier's key set holds no key whose type
// matches the family of the negotiated key management algorithm.
var ErrNoMatchingKey = errors.New("no key in the JWK set matches the encryption algorithm")

// Encoder produces JWT-secured authorization responses.
// The zero value is usable; it produces responses without an iss claim.
type Encoder struct {
	// Issuer is the wallet's issuer identifier, set as iss claim when non-empty.
	Issuer string
	// Clock supplies the iat claim, defaults to time.Now.
	Clock func() time.Time
}

// Encode renders the claims according to the given requirement and returns the
// compact serialization. For SignedAndEncrypted the signed JWT is produced first
// and then encrypted as a nested JWT (outer encryption, inner signature).
func (e Encoder) Encode(requirement Requirement, claims Claims) (string, error) {
	switch req := requirement.(type) {
	case Signed:
		return e.sign(req, claims)
	case Encrypted:
		plaintext, err := json.Marshal(claims.claimSet(e.Issuer, e.now()))
		if err != nil {
			return "", err
		}
		return encrypt(req, plaintext, "")
	case SignedAndEncrypted:
		signed, err := e.sign(req.Signed, claims)
		if err != nil {
			return "", err
		}
		return encrypt(req.Encrypted, []byte(signed), "JWT")
	case nil:
		return "", errors.New("no JARM requirement")
	default:
		panic(fmt.Sprintf("jarm: unknown requirement type %T", requirement))
	}
}

func (e Encoder) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e Encoder) sign(req Signed, claims Claims) (string, error) {
	if req.Signer == nil {
		return "", errors.New("wallet has no signing configuration")
	}
	if !slices.Contains(req.Signer.SupportedAlgorithms(), req.Algorithm) {
		return "", fmt.Errorf("wallet signing configuration does not support algorithm %s", req.Algorithm)
	}
	return req.Signer.SignJWT(claims.claimSet(e.Issuer, e.now()), nil)
}

// encrypt encrypts the plaintext to the first eligible key in the verifier's key set.
// Keys of the wrong family are never used; a family-compatible key that fails to yield
// an encrypter is skipped in favor of the next candidate.
func encrypt(req Encrypted, plaintext []byte, contentType string) (string, error) {
	if req.Keys == nil || req.Keys.Len() == 0 {
		return "", errors.New("verifier supplied no encryption keys")
	}
	var lastErr error
	for i := 0; i < req.Keys.Len(); i++ {
		key, ok := req.Keys.Key(i)
		if !ok || !keyMatchesAlgorithm(key, req.Algorithm) {
			continue
		}
		var rawKey interface{}
		if err := key.Raw(&rawKey); err != nil {
			lastErr = err
			continue
		}
		headers := jwe.NewHeaders()
		if kid := key.KeyID(); kid != "" {
			if err := headers.Set(jwe.KeyIDKey, kid); err != nil {
				return "", err
			}
		}
		if contentType != "" {
			if err := headers.Set(jwe.ContentTypeKey, contentType); err != nil {
				return "", err
			}
		}
		encrypted, err := jwe.Encrypt(plaintext,
			jwe.WithKey(req.Algorithm, rawKey),
			jwe.WithContentEncryption(req.Method),
			jwe.WithProtectedHeaders(headers))
		if err != nil {
			lastErr = err
			continue
		}
		return string(encrypted), nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("unable to encrypt to any key in the JWK set: %w", lastErr)
	}
	return "", fmt.Errorf("%w: %s", ErrNoMatchingKey, req.Algorithm)
}

// keyMatchesAlgorithm reports whether the key's type is structurally compatible with
// the key management algorithm: ECDH family requires an EC (or OKP) key, RSA family
// an RSA key. A mismatch disqualifies the key, it never degrades to a wrong-family key.
func keyMatchesAlgorithm(key jwk.Key, alg jwa.KeyEncryptionAlgorithm) bool {
	switch alg {
	case jwa.ECDH_ES, jwa.ECDH_ES_A128KW, jwa.ECDH_ES_A192KW, jwa.ECDH_ES_A256KW:
		return key.KeyType() == jwa.EC || key.KeyType() == jwa.OKP
	case jwa.RSA1_5, jwa.RSA_OAEP, jwa.RSA_OAEP_256:
		return key.KeyType() == jwa.RSA
	}
	return false
}
