package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET or JWT_SECRET_SSM_PARAM must be set")

// ParameterGetter is the part of the SSM client used to read secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds a Parameter Store client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// NeedsSSM reports whether the JWT secret has to be fetched from Parameter Store.
func (c Config) NeedsSSM() bool {
	return c.JWTSecret == "" && c.JWTSecretSSMParam != ""
}

// ResolveJWTSecret fills cfg.JWTSecret from SSM when only the parameter name is configured.
// A directly configured secret always wins and client may then be nil.
func ResolveJWTSecret(ctx context.Context, cfg *Config, client ParameterGetter) error {
	if cfg.JWTSecret != "" {
		return nil
	}
	if cfg.JWTSecretSSMParam == "" {
		return ErrMissingJWTSecret
	}
	if client == nil {
		return fmt.Errorf("no ssm client to resolve %s", cfg.JWTSecretSSMParam)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.JWTSecretSSMParam),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get parameter %s: %w", cfg.JWTSecretSSMParam, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return fmt.Errorf("parameter %s is empty", cfg.JWTSecretSSMParam)
	}

	cfg.JWTSecret = aws.ToString(out.Parameter.Value)
	return nil
}
