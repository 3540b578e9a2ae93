package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AcceptedOrigins)
	assert.Equal(t, UploadBackendDisk, cfg.Upload.Backend)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.False(t, cfg.LogPretty)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(map[string]string{
		"PORT":                   "9000",
		"TOKEN_TTL_MINUTES":      "15",
		"ACCEPTED_ORIGINS":       "http://a.test, ,http://b.test",
		"UPLOAD_BACKEND":         "S3",
		"UPLOAD_BUCKET":          "images",
		"UPLOAD_PUBLIC_BASE_URL": "https://cdn.test/",
		"LOG_PRETTY":             "true",
		"READ_TIMEOUT_SECONDS":   "not-a-number",
	})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AcceptedOrigins)
	assert.Equal(t, UploadBackendS3, cfg.Upload.Backend)
	assert.Equal(t, "https://cdn.test", cfg.Upload.PublicBaseURL)
	assert.Equal(t, 180*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.LogPretty)
}

func TestLoadRejectsBadUploadSettings(t *testing.T) {
	_, err := Load(map[string]string{"UPLOAD_BACKEND": "s3"})
	assert.Error(t, err)

	_, err = Load(map[string]string{"UPLOAD_BACKEND": "ftp"})
	assert.Error(t, err)

	_, err = Load(map[string]string{"TOKEN_TTL_MINUTES": "0"})
	assert.Error(t, err)
}

type fakeParameters struct {
	value string
	err   error
	asked *ssm.GetParameterInput
}

func (f *fakeParameters) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveJWTSecret(t *testing.T) {
	t.Run("direct secret wins", func(t *testing.T) {
		cfg := Config{JWTSecret: "direct", JWTSecretSSMParam: "/diyhub/jwt"}
		require.NoError(t, ResolveJWTSecret(context.Background(), &cfg, nil))
		assert.Equal(t, "direct", cfg.JWTSecret)
		assert.False(t, cfg.NeedsSSM())
	})

	t.Run("from parameter store", func(t *testing.T) {
		cfg := Config{JWTSecretSSMParam: "/diyhub/jwt"}
		params := &fakeParameters{value: "from-ssm"}
		require.True(t, cfg.NeedsSSM())
		require.NoError(t, ResolveJWTSecret(context.Background(), &cfg, params))
		assert.Equal(t, "from-ssm", cfg.JWTSecret)
		assert.Equal(t, "/diyhub/jwt", aws.ToString(params.asked.Name))
		assert.True(t, aws.ToBool(params.asked.WithDecryption))
	})

	t.Run("missing", func(t *testing.T) {
		cfg := Config{}
		assert.ErrorIs(t, ResolveJWTSecret(context.Background(), &cfg, nil), ErrMissingJWTSecret)
	})

	t.Run("lookup failure", func(t *testing.T) {
		cfg := Config{JWTSecretSSMParam: "/diyhub/jwt"}
		err := ResolveJWTSecret(context.Background(), &cfg, &fakeParameters{err: errors.New("denied")})
		assert.ErrorContains(t, err, "denied")
	})
}
