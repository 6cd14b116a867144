// Package secrets resolves the upstream credential, either from configuration or
// from AWS Systems Manager Parameter Store.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/sqsrelay/sqsrelay/internal/errors"
	"github.com/sqsrelay/sqsrelay/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

// Store retrieves a secret value by name.
type Store interface {
	RetrieveSecret(ctx context.Context, name string) (string, error)
}

// ParameterStore reads SecureString parameters, decrypted with their KMS key.
type ParameterStore struct {
	client Client
	logger *slog.Logger
}

// NewParameterStore creates a new Parameter Store backed secret reader.
func NewParameterStore(client Client, log *slog.Logger) *ParameterStore {
	return &ParameterStore{
		client: client,
		logger: log,
	}
}

// RetrieveSecret retrieves and decrypts a parameter value. name is the full
// parameter name or ARN.
func (p *ParameterStore) RetrieveSecret(ctx context.Context, name string) (string, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, p.logger)

	result, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if isParameterNotFound(err) {
			reqLogger.Error("parameter not found", "name", name)
			return "", apperrors.ErrConfiguration(fmt.Sprintf("parameter %s not found", name), err)
		}
		reqLogger.Error("failed to retrieve parameter", "error", err, "name", name, "aws_error_code", apiErrorCode(err))
		return "", apperrors.ErrSecretLookup("failed to retrieve parameter", err)
	}

	if result == nil || result.Parameter == nil || result.Parameter.Value == nil {
		reqLogger.Warn("unexpected nil response from parameter store", "name", name)
		return "", apperrors.ErrSecretLookup("unexpected response from parameter store", nil)
	}

	reqLogger.Debug("parameter retrieved", "name", name, "version", result.Parameter.Version)
	return *result.Parameter.Value, nil
}

// isParameterNotFound checks if an error is a ParameterNotFound response.
func isParameterNotFound(err error) bool {
	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return true
	}
	return apiErrorCode(err) == "ParameterNotFound"
}

// apiErrorCode returns the AWS error code carried by err, if any.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
