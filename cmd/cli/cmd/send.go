package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sqsrelay/sqsrelay/internal/app"
	"github.com/sqsrelay/sqsrelay/internal/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	sendBody         string
	sendEventPath    string
	sendURL          string
	sendToken        string
	sendFailOnStatus bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Forward a message body or an SQS event to the upstream",
	Long: `Forward a message the same way the Lambda function does.

Use --body to send a single JSON message, or --event to replay an SQS event
fixture (JSON or YAML). Record bodies in a fixture may be JSON strings or
structured values.`,
	Example: `  sqsrelay send --url https://example.com/hook --body '{"a":1}'
  sqsrelay send --event fixtures/order-created.yaml`,
	Args: cobra.NoArgs,
	RunE: sendRun,
}

func init() {
	sendCmd.Flags().StringVar(&sendBody, "body", "", "JSON message body to forward")
	sendCmd.Flags().StringVar(&sendEventPath, "event", "", "Path to an SQS event fixture (JSON or YAML)")
	sendCmd.Flags().StringVar(&sendURL, "url", "", "Upstream URL (overrides URL)")
	sendCmd.Flags().StringVar(&sendToken, "token", "", "Credential sent after 'Basic ' (overrides TOKEN)")
	sendCmd.Flags().BoolVar(&sendFailOnStatus, "fail-on-status", false,
		"Treat upstream responses with status >= 400 as failures")
	sendCmd.MarkFlagsMutuallyExclusive("body", "event")
	sendCmd.MarkFlagsOneRequired("body", "event")
	rootCmd.AddCommand(sendCmd)
}

func sendRun(cmd *cobra.Command, _ []string) error {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sendCfg := *cfg
	if sendURL != "" {
		sendCfg.URL = sendURL
	}
	if sendToken != "" {
		sendCfg.Token = sendToken
	}
	if sendFailOnStatus {
		sendCfg.FailOnUpstreamStatus = true
	}
	if sendCfg.URL == "" {
		return errors.New("upstream URL is required (use --url or set URL)")
	}

	event, err := loadEvent(sendBody, sendEventPath)
	if err != nil {
		return err
	}

	fwd, err := app.Initialize(cmd.Context(), &sendCfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to initialize forwarder: %w", err)
	}

	service := NewSendService(fwd, NewOutputWrapper())
	return service.Send(cmd.Context(), sendCfg.URL, event)
}

// SendService handles forwarding logic for the send command.
type SendService struct {
	relay  server.Relay
	output OutputInterface
}

// NewSendService creates a new SendService with the provided dependencies.
func NewSendService(relay server.Relay, outputter OutputInterface) *SendService {
	return &SendService{
		relay:  relay,
		output: outputter,
	}
}

// Send forwards event and prints the resulting envelope.
// It returns an error when the envelope reports a failure.
func (s *SendService) Send(ctx context.Context, url string, event *events.SQSEvent) error {
	if len(event.Records) > 1 {
		s.output.Warningf("event has %d records, only the first one is forwarded", len(event.Records))
	}

	s.output.Infof("Forwarding to %s", s.output.Bold(url))
	resp := s.relay.Handle(ctx, event)
	s.output.Response(resp)
	s.output.Blank()

	if !resp.OK() {
		return fmt.Errorf("forwarding failed with status %d", resp.StatusCode)
	}

	s.output.Successf("Message forwarded successfully")
	return nil
}

// loadEvent builds the event to forward from either a raw body or a fixture file.
func loadEvent(body, path string) (*events.SQSEvent, error) {
	if path == "" {
		return &events.SQSEvent{
			Records: []events.SQSMessage{{
				MessageId:   uuid.NewString(),
				Body:        body,
				EventSource: "aws:sqs",
			}},
		}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	return parseEvent(data)
}

// parseEvent decodes a JSON or YAML SQS event fixture. Record bodies given as
// structured values are encoded back into JSON text.
func parseEvent(data []byte) (*events.SQSEvent, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	if records, ok := raw["Records"].([]any); ok {
		for i, record := range records {
			fields, isMap := record.(map[string]any)
			if !isMap {
				continue
			}
			body, exists := fields["body"]
			if _, isString := body.(string); !exists || isString {
				continue
			}
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode body of record %d: %w", i, err)
			}
			fields["body"] = string(encoded)
		}
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize event: %w", err)
	}

	var event events.SQSEvent
	if err = json.Unmarshal(normalized, &event); err != nil {
		return nil, fmt.Errorf("invalid SQS event: %w", err)
	}

	return &event, nil
}
