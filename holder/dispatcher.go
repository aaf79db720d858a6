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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veldt-id/openid4vp/core"
	"github.com/veldt-id/openid4vp/holder/log"
	httpVeldt "github.com/veldt-id/openid4vp/http"
	"github.com/veldt-id/openid4vp/jarm"
	"github.com/veldt-id/openid4vp/oauth"
)

// VerifierResponse is the verifier's reaction to a posted authorization response.
type VerifierResponse struct {
	// Accepted is false when the verifier answered with a non-success status,
	// or could not be reached at all.
	Accepted bool
	// RedirectURI is the URI the verifier wants the user-agent redirected to,
	// empty when the verifier's reply did not carry one.
	RedirectURI string
}

// Dispatcher delivers authorization responses. Each call performs at most one HTTP
// round trip and holds no state across calls, so a single Dispatcher is safe for
// concurrent use. Retry policy is owned by the caller.
type Dispatcher struct {
	httpClient core.HTTPRequestDoer
	jarm       jarm.Encoder
	strictMode bool
}

// NewDispatcher returns a Dispatcher. walletIssuer is the wallet's issuer identifier
// for the iss claim of JWT-secured responses, may be empty. In strict mode only
// HTTPS verifier endpoints are accepted.
func NewDispatcher(walletIssuer string, strictMode bool, httpClientTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		httpClient: core.NewStrictHTTPClient(strictMode, httpClientTimeout, nil),
		jarm:       jarm.Encoder{Issuer: walletIssuer},
		strictMode: strictMode,
	}
}

// PostAuthorizationResponse builds the authorization response for the given request
// and consensus and posts it to the verifier's response_uri. The request's response
// mode must be direct_post or direct_post.jwt.
//
// A reachable verifier answering with a success status yields an accepted outcome,
// carrying the redirect_uri from its JSON reply when present. A non-success status
// or an unreachable verifier yields a rejected outcome, not an error: the delivery
// attempt itself completed. Errors are reserved for failures to construct the
// response, such as a JARM configuration gap.
func (d *Dispatcher) PostAuthorizationResponse(ctx context.Context, request ResolvedRequest, consensus Consensus) (VerifierResponse, error) {
	return d.post(ctx, BuildResponse(request, consensus))
}

// PostError posts an error response to the verifier's response_uri, e.g. when the
// wallet does not hold the requested credentials. Same mode requirement and outcome
// semantics as PostAuthorizationResponse.
func (d *Dispatcher) PostError(ctx context.Context, request ResolvedRequest, auth2Error oauth.OAuth2Error) (VerifierResponse, error) {
	return d.post(ctx, ErrorResponse(request, auth2Error))
}

// RedirectURI builds the authorization response for the given request and consensus
// and returns it encoded as the verifier's redirect URI. The request's response mode
// must be one of the query or fragment variants. No network I/O happens here;
// navigating the user-agent to the returned URI is the caller's responsibility.
func (d *Dispatcher) RedirectURI(request ResolvedRequest, consensus Consensus) (string, error) {
	return d.redirectURI(BuildResponse(request, consensus))
}

// ErrorRedirectURI is RedirectURI for the error branch.
func (d *Dispatcher) ErrorRedirectURI(request ResolvedRequest, auth2Error oauth.OAuth2Error) (string, error) {
	return d.redirectURI(ErrorResponse(request, auth2Error))
}

func (d *Dispatcher) post(ctx context.Context, response AuthorizationResponse) (VerifierResponse, error) {
	if !response.Mode.UsesDirectPost() {
		panic(fmt.Sprintf("openid4vp: response mode %s cannot be posted to the verifier", response.Mode))
	}
	responseURL, err := core.ParsePublicURL(response.Target.String(), d.strictMode)
	if err != nil {
		return VerifierResponse{}, fmt.Errorf("invalid verifier response_uri: %w", err)
	}
	params, err := d.responseParameters(response)
	if err != nil {
		return VerifierResponse{}, err
	}
	data := url.Values{}
	for key, value := range params {
		data.Set(key, value)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, responseURL.String(), strings.NewReader(data.Encode()))
	if err != nil {
		return VerifierResponse{}, err
	}
	request.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	httpResponse, err := d.httpClient.Do(request)
	if err != nil {
		log.Logger().WithError(err).
			Warnf("Failed to post authorization response to verifier @ %s", responseURL.String())
		return VerifierResponse{Accepted: false}, nil
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		responseData, _ := io.ReadAll(httpResponse.Body)
		log.Logger().WithField("http_response_code", httpResponse.StatusCode).
			Debugf("Verifier rejected authorization response (len=%d)", len(responseData))
		return VerifierResponse{Accepted: false}, nil
	}

	// the verifier may return {"redirect_uri": "..."} to send the user-agent somewhere,
	// anything else in a success response is ignored
	responseData, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return VerifierResponse{Accepted: true}, nil
	}
	var redirect oauth.Redirect
	if err = json.Unmarshal(responseData, &redirect); err != nil {
		log.Logger().WithError(err).
			Debug("Verifier accepted the authorization response with a non-JSON reply body")
		return VerifierResponse{Accepted: true}, nil
	}
	return VerifierResponse{Accepted: true, RedirectURI: redirect.RedirectURI}, nil
}

func (d *Dispatcher) redirectURI(response AuthorizationResponse) (string, error) {
	if response.Mode.UsesDirectPost() {
		panic(fmt.Sprintf("openid4vp: response mode %s is not redirect-based", response.Mode))
	}
	redirectURL, err := core.ParsePublicURL(response.Target.String(), d.strictMode)
	if err != nil {
		return "", fmt.Errorf("invalid verifier redirect_uri: %w", err)
	}
	params, err := d.responseParameters(response)
	if err != nil {
		return "", err
	}

	switch response.Mode {
	case oauth.ResponseModeQuery, oauth.ResponseModeQueryJWT:
		withQuery := httpVeldt.AddQueryParams(*redirectURL, params)
		return withQuery.String(), nil
	case oauth.ResponseModeFragment, oauth.ResponseModeFragmentJWT:
		// A fragment is not a query string: url.URL would apply fragment escaping rules,
		// so the key=value pairs are percent-encoded and appended by hand.
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		base := *redirectURL
		base.Fragment = ""
		base.RawFragment = ""
		return base.String() + "#" + values.Encode(), nil
	default:
		panic(fmt.Sprintf("openid4vp: unsupported response mode %q", response.Mode))
	}
}
