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

package holder

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	walletCrypto "github.com/veldt-id/openid4vp/crypto"
	"github.com/veldt-id/openid4vp/jarm"
	"github.com/veldt-id/openid4vp/oauth"
)

type dispatcherTestContext struct {
	dispatcher *Dispatcher
	server     *httptest.Server
	signer     walletCrypto.MemoryJWTSigner
	signingKey *ecdsa.PrivateKey

	requestBody   url.Values
	contentType   string
	responseCode  int
	responseBody  string
}

func newDispatcherTestContext(t *testing.T) *dispatcherTestContext {
	t.Helper()
	ctx := &dispatcherTestContext{
		responseCode: http.StatusOK,
		responseBody: "{}",
	}
	ctx.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, request.ParseForm())
		ctx.requestBody = request.PostForm
		ctx.contentType = request.Header.Get("Content-Type")
		writer.WriteHeader(ctx.responseCode)
		_, _ = writer.Write([]byte(ctx.responseBody))
	}))
	t.Cleanup(ctx.server.Close)

	signingKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	key, err := jwk.FromRaw(signingKey)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, "wallet-key-1"))
	require.NoError(t, key.Set(jwk.AlgorithmKey, jwa.ES256))
	ctx.signingKey = signingKey
	ctx.signer = walletCrypto.MemoryJWTSigner{Key: key}

	ctx.dispatcher = NewDispatcher("https://wallet.example.id", false, 5*time.Second)
	return ctx
}

func (ctx *dispatcherTestContext) directPostRequest(mode oauth.ResponseMode) Request {
	target, _ := url.Parse(ctx.server.URL + "/response")
	request := testRequest(mode)
	request.Target = *target
	if mode.JWTSecured() {
		request.JARM = jarm.Signed{Algorithm: jwa.ES256, Signer: ctx.signer}
	}
	return request
}

func TestDispatcher_PostAuthorizationResponse(t *testing.T) {
	consensus := IDTokenConsensus{IDToken: "abc"}

	t.Run("accepted without redirect", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Empty(t, outcome.RedirectURI)
		assert.Equal(t, "application/x-www-form-urlencoded", ctx.contentType)
		assert.Equal(t, url.Values{"id_token": {"abc"}, "state": {"s1"}}, ctx.requestBody)
	})
	t.Run("accepted with redirect", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		ctx.responseBody = `{"redirect_uri":"https://verifier.example.org/callback?code=123"}`
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Equal(t, "https://verifier.example.org/callback?code=123", outcome.RedirectURI)
	})
	t.Run("malformed success body degrades to accepted", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		ctx.responseBody = "not json"
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Empty(t, outcome.RedirectURI)
	})
	t.Run("rejected on non-success status", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		ctx.responseCode = http.StatusBadRequest
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.False(t, outcome.Accepted)
	})
	t.Run("rejected when the verifier is unreachable", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}
		ctx.server.Close()

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.False(t, outcome.Accepted)
	})
	t.Run("direct_post.jwt posts exactly response and state", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPostJWT)}

		outcome, err := ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)

		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		require.Len(t, ctx.requestBody, 2)
		assert.Equal(t, "s1", ctx.requestBody.Get("state"))

		token, err := jwt.Parse([]byte(ctx.requestBody.Get("response")), jwt.WithKey(jwa.ES256, ctx.signingKey.Public()))
		require.NoError(t, err)
		assert.Equal(t, "https://wallet.example.id", token.Issuer())
		assert.Equal(t, []string{"c1"}, token.Audience())
		idToken, _ := token.Get("id_token")
		assert.Equal(t, "abc", idToken)
		state, _ := token.Get("state")
		assert.Equal(t, "s1", state)
	})
	t.Run("posting a redirect-mode response panics", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeQuery)}

		assert.Panics(t, func() {
			_, _ = ctx.dispatcher.PostAuthorizationResponse(context.Background(), request, consensus)
		})
	})
	t.Run("strict mode refuses a plain HTTP response_uri", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		strict := NewDispatcher("", true, 5*time.Second)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		_, err := strict.PostAuthorizationResponse(context.Background(), request, consensus)

		require.ErrorContains(t, err, "invalid verifier response_uri")
	})
}

func TestDispatcher_PostError(t *testing.T) {
	t.Run("error parameters reach the verifier", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := OpenID4VPAuthorization{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		outcome, err := ctx.dispatcher.PostError(context.Background(), request,
			oauth.OAuth2Error{Code: oauth.InvalidRequest, Description: "missing nonce parameter"})

		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Equal(t, url.Values{
			"error":             {"invalid_request"},
			"error_description": {"missing nonce parameter"},
			"state":             {"s1"},
		}, ctx.requestBody)
	})
}

func TestDispatcher_RedirectURI(t *testing.T) {
	newRedirectRequest := func(t *testing.T, ctx *dispatcherTestContext, mode oauth.ResponseMode) Request {
		t.Helper()
		target, err := url.Parse("https://foo.bar")
		require.NoError(t, err)
		request := testRequest(mode)
		request.Target = *target
		if mode.JWTSecured() {
			request.JARM = jarm.Signed{Algorithm: jwa.ES256, Signer: ctx.signer}
		}
		return request
	}

	t.Run("query with JARM", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{newRedirectRequest(t, ctx, oauth.ResponseModeQueryJWT)}

		redirectURI, err := ctx.dispatcher.RedirectURI(request, IDTokenConsensus{IDToken: "abc"})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(redirectURI, "https://foo.bar?"))
		parsed, err := url.Parse(redirectURI)
		require.NoError(t, err)
		query := parsed.Query()
		assert.Equal(t, "s1", query.Get("state"))
		token, err := jwt.Parse([]byte(query.Get("response")), jwt.WithKey(jwa.ES256, ctx.signingKey.Public()))
		require.NoError(t, err)
		state, _ := token.Get("state")
		assert.Equal(t, "s1", state)
	})
	t.Run("plain query", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{newRedirectRequest(t, ctx, oauth.ResponseModeQuery)}

		redirectURI, err := ctx.dispatcher.RedirectURI(request, IDTokenConsensus{IDToken: "abc"})

		require.NoError(t, err)
		parsed, err := url.Parse(redirectURI)
		require.NoError(t, err)
		assert.Equal(t, "abc", parsed.Query().Get("id_token"))
		assert.Equal(t, "s1", parsed.Query().Get("state"))
	})
	t.Run("fragment without consensus carries access_denied", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{newRedirectRequest(t, ctx, oauth.ResponseModeFragment)}

		redirectURI, err := ctx.dispatcher.RedirectURI(request, NegativeConsensus{})

		require.NoError(t, err)
		base, fragment, found := strings.Cut(redirectURI, "#")
		require.True(t, found)
		assert.Equal(t, "https://foo.bar", base)
		params, err := url.ParseQuery(fragment)
		require.NoError(t, err)
		assert.Equal(t, "access_denied", params.Get("error"))
		assert.Equal(t, "s1", params.Get("state"))
	})
	t.Run("missing JARM requirement on a .jwt mode is an error", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := newRedirectRequest(t, ctx, oauth.ResponseModeFragmentJWT)
		request.JARM = nil

		_, err := ctx.dispatcher.RedirectURI(SiopAuthentication{request}, IDTokenConsensus{IDToken: "abc"})

		require.ErrorContains(t, err, "requires a JARM requirement")
	})
	t.Run("direct_post mode panics", func(t *testing.T) {
		ctx := newDispatcherTestContext(t)
		request := SiopAuthentication{ctx.directPostRequest(oauth.ResponseModeDirectPost)}

		assert.Panics(t, func() {
			_, _ = ctx.dispatcher.RedirectURI(request, IDTokenConsensus{IDToken: "abc"})
		})
	})
}
