package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth implements fixed custom header authentication.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	for header, value := range a.Headers {
		req.Header.Set(header, value)
	}
}

// AlgoliaAuth authenticates against an Algolia-backed search index, the way
// the wine catalog's public search endpoint expects it.
type AlgoliaAuth struct {
	AppID  string
	APIKey string
}

// Apply implements the Authenticator interface for AlgoliaAuth.
func (a *AlgoliaAuth) Apply(req *http.Request) {
	req.Header.Set("x-algolia-application-id", a.AppID)
	req.Header.Set("x-algolia-api-key", a.APIKey)
}
