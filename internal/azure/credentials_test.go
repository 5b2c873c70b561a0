package azure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvTenantID, "tenant-123")
	t.Setenv(EnvClientID, "client-456")
	t.Setenv(EnvClientSecret, "secret-789")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tenant-123", cfg.TenantID)
	assert.Equal(t, "client-456", cfg.ClientID)
	assert.Equal(t, "secret-789", cfg.ClientSecret)
}

func TestConfigFromEnv_NamesMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		tenant  string
		client  string
		secret  string
		missing []string
	}{
		{
			name:    "all missing",
			missing: []string{EnvTenantID, EnvClientID, EnvClientSecret},
		},
		{
			name:    "secret missing",
			tenant:  "t",
			client:  "c",
			missing: []string{EnvClientSecret},
		},
		{
			name:    "tenant missing",
			client:  "c",
			secret:  "s",
			missing: []string{EnvTenantID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvTenantID, tt.tenant)
			t.Setenv(EnvClientID, tt.client)
			t.Setenv(EnvClientSecret, tt.secret)

			_, err := ConfigFromEnv()
			require.Error(t, err)
			for _, key := range tt.missing {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestStaticTokenProvider(t *testing.T) {
	provider := StaticTokenProvider{Token: "abc"}

	token, err := provider.TokenSource(context.Background()).Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token.AccessToken)
}
