package scaleway

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const testConfigFile = `
access_key: SCWDEFAULT
secret_key: default-secret
api_url: https://api.scaleway.com
profiles:
  staging:
    secret_key: staging-secret
  other:
    access_key: SCWOTHER
    secret_key: other-secret
    api_url: https://staging.example.com
`

func TestLoadProfileDefault(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)

	profile, err := LoadProfile(path, "")
	require.NoError(t, err)
	require.Equal(t, "SCWDEFAULT", profile.AccessKey)
	require.Equal(t, "default-secret", profile.SecretKey)
}

func TestLoadProfileNamedInheritsDefaults(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)

	profile, err := LoadProfile(path, "staging")
	require.NoError(t, err)
	// Unset fields inherit from the top-level profile.
	require.Equal(t, "SCWDEFAULT", profile.AccessKey)
	require.Equal(t, "staging-secret", profile.SecretKey)
	require.Equal(t, "https://api.scaleway.com", profile.APIURL)
}

func TestLoadProfileUnknownName(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)

	_, err := LoadProfile(path, "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvAPIURL, "https://env.example.com")

	// Explicit keys beat the profile; the profile beats the environment.
	resolved, err := ResolveConfig(ClientConfig{AccessKey: "SCWEXPLICIT"}, path, "other")
	require.NoError(t, err)
	require.Equal(t, "SCWEXPLICIT", resolved.AccessKey)
	require.Equal(t, "other-secret", resolved.SecretKey)
	require.Equal(t, "https://staging.example.com", resolved.APIURL)
}

func TestResolveConfigEnvFallback(t *testing.T) {
	t.Setenv(EnvAccessKey, "SCWENV")
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvAPIURL, "https://env.example.com")

	resolved, err := ResolveConfig(ClientConfig{}, "", "")
	require.NoError(t, err)
	require.Equal(t, "SCWENV", resolved.AccessKey)
	require.Equal(t, "env-secret", resolved.SecretKey)
	require.Equal(t, "https://env.example.com", resolved.APIURL)
}
