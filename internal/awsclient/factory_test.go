// Where: cli/internal/awsclient/factory_test.go
// What: Tests for placeholder resolution.
package awsclient

import (
	"context"
	"errors"
	"testing"
)

func TestResolvePlaceholdersSubstitutes(t *testing.T) {
	account := func(_ context.Context) (string, error) { return "12345", nil }

	got, err := ResolvePlaceholders(context.Background(),
		"${AWS::AccountId}.dkr.ecr.${AWS::Region}.amazonaws.com/repo", "us-east-1", account)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "12345.dkr.ecr.us-east-1.amazonaws.com/repo" {
		t.Fatalf("unexpected result: %s", got)
	}
}

func TestResolvePlaceholdersPassthrough(t *testing.T) {
	called := false
	account := func(_ context.Context) (string, error) {
		called = true
		return "12345", nil
	}

	got, err := ResolvePlaceholders(context.Background(), "plain-repo-name", "us-east-1", account)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "plain-repo-name" {
		t.Fatalf("unexpected result: %s", got)
	}
	if called {
		t.Fatalf("expected no account lookup for plain text")
	}
}

func TestResolvePlaceholdersPropagatesLookupError(t *testing.T) {
	account := func(_ context.Context) (string, error) {
		return "", errors.New("no credentials")
	}

	_, err := ResolvePlaceholders(context.Background(), "${AWS::AccountId}/repo", "us-east-1", account)
	if err == nil {
		t.Fatalf("expected lookup error to propagate")
	}
}

func TestResolvePlaceholdersRegionOnly(t *testing.T) {
	account := func(_ context.Context) (string, error) {
		t.Fatalf("unexpected account lookup")
		return "", nil
	}

	got, err := ResolvePlaceholders(context.Background(), "bucket-${AWS::Region}", "ap-south-1", account)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "bucket-ap-south-1" {
		t.Fatalf("unexpected result: %s", got)
	}
}
