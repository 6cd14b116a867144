package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Client defines the SSM operations used by the ParameterStore.
// This interface makes the code easier to test by allowing mock implementations.
type Client interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// ClientAdapter wraps the AWS SDK SSM client to implement Client interface.
type ClientAdapter struct {
	client *ssm.Client
}

// NewClientAdapter creates a new adapter wrapping the AWS SDK SSM client.
func NewClientAdapter(client *ssm.Client) *ClientAdapter {
	return &ClientAdapter{client: client}
}

// GetParameter wraps the AWS SDK GetParameter operation.
func (a *ClientAdapter) GetParameter(
	ctx context.Context,
	params *ssm.GetParameterInput,
	optFns ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	result, err := a.client.GetParameter(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter: %w", err)
	}
	return result, nil
}
