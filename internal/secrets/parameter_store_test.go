package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/sqsrelay/sqsrelay/internal/config"
	apperrors "github.com/sqsrelay/sqsrelay/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	getParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
	calls            []*ssm.GetParameterInput
}

func (m *mockClient) GetParameter(
	ctx context.Context,
	params *ssm.GetParameterInput,
	_ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	m.calls = append(m.calls, params)
	if m.getParameterFunc != nil {
		return m.getParameterFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func parameterValue(value string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{
			Name:    aws.String("/sqsrelay/token"),
			Value:   aws.String(value),
			Version: 3,
		},
	}
}

func TestParameterStore_RetrieveSecret(t *testing.T) {
	client := &mockClient{
		getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			return parameterValue("dXNlcjpwYXNz"), nil
		},
	}
	store := NewParameterStore(client, slog.Default())

	value, err := store.RetrieveSecret(context.Background(), "/sqsrelay/token")

	require.NoError(t, err)
	assert.Equal(t, "dXNlcjpwYXNz", value)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "/sqsrelay/token", aws.ToString(client.calls[0].Name))
	assert.True(t, aws.ToBool(client.calls[0].WithDecryption), "SecureString values must be decrypted")
}

func TestParameterStore_RetrieveSecret_Errors(t *testing.T) {
	tests := []struct {
		name         string
		output       *ssm.GetParameterOutput
		err          error
		expectedCode string
	}{
		{
			name:         "typed parameter not found",
			err:          fmt.Errorf("failed to get parameter: %w", &types.ParameterNotFound{Message: aws.String("missing")}),
			expectedCode: apperrors.ErrCodeConfiguration,
		},
		{
			name:         "generic API error with not found code",
			err:          &smithy.GenericAPIError{Code: "ParameterNotFound", Message: "missing"},
			expectedCode: apperrors.ErrCodeConfiguration,
		},
		{
			name:         "access denied",
			err:          &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "no"},
			expectedCode: apperrors.ErrCodeSecretLookup,
		},
		{
			name:         "network failure",
			err:          errors.New("dial tcp: i/o timeout"),
			expectedCode: apperrors.ErrCodeSecretLookup,
		},
		{
			name:         "nil parameter",
			output:       &ssm.GetParameterOutput{},
			expectedCode: apperrors.ErrCodeSecretLookup,
		},
		{
			name:         "nil value",
			output:       &ssm.GetParameterOutput{Parameter: &types.Parameter{}},
			expectedCode: apperrors.ErrCodeSecretLookup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{
				getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
					return tt.output, tt.err
				},
			}
			store := NewParameterStore(client, slog.Default())

			value, err := store.RetrieveSecret(context.Background(), "/sqsrelay/token")

			require.Error(t, err)
			assert.Empty(t, value)
			assert.Equal(t, tt.expectedCode, apperrors.GetErrorCode(err))
		})
	}
}

func TestIsParameterNotFound(t *testing.T) {
	assert.False(t, isParameterNotFound(errors.New("ParameterNotFound")), "plain strings are not API errors")
	assert.True(t, isParameterNotFound(&types.ParameterNotFound{}))
	assert.True(t, isParameterNotFound(&smithy.GenericAPIError{Code: "ParameterNotFound"}))
	assert.False(t, isParameterNotFound(&smithy.GenericAPIError{Code: "ThrottlingException"}))
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name          string
		cfg           *config.Config
		storeValue    string
		storeErr      error
		expected      string
		expectErr     bool
		expectedCalls int
	}{
		{
			name:          "configured token wins",
			cfg:           &config.Config{Token: "from-env", TokenParameter: "/sqsrelay/token"},
			storeValue:    "from-ssm",
			expected:      "from-env",
			expectedCalls: 0,
		},
		{
			name:          "parameter store when token empty",
			cfg:           &config.Config{TokenParameter: "/sqsrelay/token"},
			storeValue:    "from-ssm",
			expected:      "from-ssm",
			expectedCalls: 1,
		},
		{
			name:          "empty token without parameter",
			cfg:           &config.Config{},
			expected:      "",
			expectedCalls: 0,
		},
		{
			name:          "store failure",
			cfg:           &config.Config{TokenParameter: "/sqsrelay/token"},
			storeErr:      errors.New("throttled"),
			expectErr:     true,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{
				getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return parameterValue(tt.storeValue), nil
				},
			}
			store := NewParameterStore(client, slog.Default())

			token, err := ResolveToken(context.Background(), tt.cfg, store)

			if tt.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, token)
			}
			assert.Len(t, client.calls, tt.expectedCalls)
		})
	}
}
