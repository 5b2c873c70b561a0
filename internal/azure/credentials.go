package azure

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Environment variable names for the client-credential flow.
const (
	EnvTenantID     = "AZURE_TENANT_ID"
	EnvClientID     = "AZURE_CLIENT_ID"
	EnvClientSecret = "AZURE_CLIENT_SECRET"
)

// GraphScope is the default audience for Microsoft Graph tokens.
const GraphScope = "https://graph.microsoft.com/.default"

// tokenURLFormat is the Azure AD v2 token endpoint, parameterized by tenant.
const tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

// Config holds the application registration used for the client-credential
// flow against Azure AD.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// ConfigFromEnv reads the Azure application registration from the process
// environment. Each missing variable is named in the returned error so the
// operator knows exactly what to set.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		TenantID:     os.Getenv(EnvTenantID),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}

	var missing []string
	if cfg.TenantID == "" {
		missing = append(missing, EnvTenantID)
	}
	if cfg.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Validate checks that every field of the registration is present.
func (c Config) Validate() error {
	if c.TenantID == "" || c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("incomplete Azure credentials: tenant ID, client ID and client secret are all required")
	}
	return nil
}

// TokenProvider is an interface for yielding bearer tokens for the Graph API.
// The abstraction allows tests to substitute a static token source.
type TokenProvider interface {
	// TokenSource returns a source of bearer tokens for the Graph audience.
	TokenSource(ctx context.Context) oauth2.TokenSource
}

// TokenSource returns an oauth2 token source for the Graph audience using the
// client-credential grant. Token caching and renewal live inside the oauth2
// reuse source; callers treat it as opaque and thread-safe.
func (c Config) TokenSource(ctx context.Context) oauth2.TokenSource {
	conf := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     fmt.Sprintf(tokenURLFormat, c.TenantID),
		Scopes:       []string{GraphScope},
	}
	return conf.TokenSource(ctx)
}

// HTTPClient returns an HTTP client that attaches a bearer token to every
// request, fetching and refreshing tokens on demand.
func (c Config) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, c.TokenSource(ctx))
}

// StaticTokenProvider yields a fixed token. Used in tests and for callers
// that already hold a bearer token.
type StaticTokenProvider struct {
	Token string
}

// TokenSource returns a source that always yields the static token.
func (p StaticTokenProvider) TokenSource(_ context.Context) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.Token})
}
