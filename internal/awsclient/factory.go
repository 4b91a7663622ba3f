// Where: cli/internal/awsclient/factory.go
// What: AWS client factory for asset destinations.
// Why: Scope SDK clients to a destination's region and role.
package awsclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// Placeholder tokens in destination fields, resolved at publish time.
const (
	PlaceholderAccount = "${AWS::AccountId}"
	PlaceholderRegion  = "${AWS::Region}"
)

// Factory builds AWS-backed collaborators for asset destinations. One
// factory is shared by a publishing run; the discovered account id is
// cached after the first lookup.
type Factory struct {
	cfg aws.Config

	accountOnce sync.Once
	account     string
	accountErr  error
}

// NewFactory loads the default AWS configuration, optionally pinned to
// a profile and region.
func NewFactory(ctx context.Context, profile, region string) (*Factory, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Factory{cfg: cfg}, nil
}

// configFor derives a config scoped to the destination's region and
// assume-role settings.
func (f *Factory) configFor(region, roleArn, externalID string) aws.Config {
	cfg := f.cfg.Copy()
	if region != "" {
		cfg.Region = region
	}
	if roleArn != "" {
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, roleArn, func(o *stscreds.AssumeRoleOptions) {
			if externalID != "" {
				o.ExternalID = aws.String(externalID)
			}
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}
	return cfg
}

// Registry returns a registry client scoped to the image destination.
func (f *Factory) Registry(ctx context.Context, dest manifest.DockerImageDestination) (ports.Registry, error) {
	cfg := f.configFor(dest.Region, dest.AssumeRoleArn, dest.AssumeRoleExternalId)
	return &ecrRegistry{
		ecr: ecr.NewFromConfig(cfg),
		sts: sts.NewFromConfig(cfg),
	}, nil
}

// ObjectStore returns an object store scoped to the file destination.
func (f *Factory) ObjectStore(ctx context.Context, dest manifest.FileDestination) (ports.ObjectStore, error) {
	cfg := f.configFor(dest.Region, dest.AssumeRoleArn, dest.AssumeRoleExternalId)
	return &s3Store{client: s3.NewFromConfig(cfg)}, nil
}

// RegistryCredentials obtains short-lived registry credentials for the
// image destination's registry.
func (f *Factory) RegistryCredentials(ctx context.Context, dest manifest.DockerImageDestination) (username, password, server string, err error) {
	cfg := f.configFor(dest.Region, dest.AssumeRoleArn, dest.AssumeRoleExternalId)
	out, err := ecr.NewFromConfig(cfg).GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return "", "", "", fmt.Errorf("obtain registry token: %w", err)
	}
	if len(out.AuthorizationData) == 0 {
		return "", "", "", fmt.Errorf("obtain registry token: empty authorization data")
	}
	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return "", "", "", fmt.Errorf("decode registry token: %w", err)
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", "", fmt.Errorf("decode registry token: unexpected format")
	}
	return username, password, aws.ToString(data.ProxyEndpoint), nil
}

// AccountID discovers the caller's account id. Cached after the first
// successful lookup.
func (f *Factory) AccountID(ctx context.Context) (string, error) {
	f.accountOnce.Do(func() {
		out, err := sts.NewFromConfig(f.cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			f.accountErr = fmt.Errorf("discover account: %w", err)
			return
		}
		f.account = aws.ToString(out.Account)
	})
	return f.account, f.accountErr
}

// ResolvePlaceholders substitutes account and region placeholder
// tokens in the given value. Text without tokens passes through
// unchanged and performs no lookups.
func (f *Factory) ResolvePlaceholders(ctx context.Context, value string) (string, error) {
	return ResolvePlaceholders(ctx, value, f.cfg.Region, f.AccountID)
}

// ResolvePlaceholders is the substitution core, split out so it can be
// exercised without AWS credentials.
func ResolvePlaceholders(ctx context.Context, value, region string, accountID func(context.Context) (string, error)) (string, error) {
	if strings.Contains(value, PlaceholderAccount) {
		account, err := accountID(ctx)
		if err != nil {
			return "", err
		}
		value = strings.ReplaceAll(value, PlaceholderAccount, account)
	}
	if strings.Contains(value, PlaceholderRegion) {
		value = strings.ReplaceAll(value, PlaceholderRegion, region)
	}
	return value, nil
}
