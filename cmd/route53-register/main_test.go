package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	register "github.com/atlassian/route53-register"
	"github.com/atlassian/route53-register/internal/fixtures"
)

func TestSetupConfigurationFromFlags(t *testing.T) {
	v, err := setupConfiguration([]string{"route53-register", "--dry-run", "--slack-channel", "C0123456"})
	require.NoError(t, err)

	assert.True(t, v.GetBool(register.ParamDryRun))
	assert.Equal(t, "C0123456", v.GetString(register.ParamSlackChannel))
	assert.Equal(t, register.DefaultSlackUsername, v.GetString(register.ParamSlackUsername))
}

func TestSetupConfigurationFromEnvironment(t *testing.T) {
	t.Setenv("SLACK_TOKEN", "xoxb-legacy")
	t.Setenv("SLACK_CHANNEL", "C0123456")
	t.Setenv("R53R_DRY_RUN", "true")

	v, err := setupConfiguration([]string{"route53-register"})
	require.NoError(t, err)

	assert.Equal(t, "xoxb-legacy", v.GetString(register.ParamSlackToken))
	assert.Equal(t, "C0123456", v.GetString(register.ParamSlackChannel))
	assert.True(t, v.GetBool(register.ParamDryRun))
}

func TestSetupConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
slack-channel = "C0FROMFILE"

[aws]
max-retries = 5
`), 0o600))

	v, err := setupConfiguration([]string{"route53-register", "--config-path", path})
	require.NoError(t, err)

	assert.Equal(t, "C0FROMFILE", v.GetString(register.ParamSlackChannel))
	assert.Equal(t, 5, v.GetInt("aws.max-retries"))
}

func TestSetupConfigurationBadFlag(t *testing.T) {
	_, err := setupConfiguration([]string{"route53-register", "--no-such-flag"})
	assert.Error(t, err)
}

func TestConstructHandler(t *testing.T) {
	v := viper.New()
	v.Set(register.ParamSlackToken, "xoxb-test")
	v.Set(register.ParamSlackChannel, "C0123456")
	v.Set("aws.region", "ap-northeast-1")

	h, err := constructHandler(v, fixtures.NewTestLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestConstructHandlerRequiresSlackConfig(t *testing.T) {
	v := viper.New()
	v.Set("aws.region", "ap-northeast-1")

	h, err := constructHandler(v, fixtures.NewTestLogger(t))
	assert.Nil(t, h)
	assert.EqualError(t, err, "missing `Token` value; missing `Channel` value")
}
