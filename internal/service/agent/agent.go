package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrValidation means the provisioning request is missing or carries
	// malformed fields.
	ErrValidation = errors.New("dados do agente invalidos")

	// ErrUpstream means the automation webhook failed or refused the
	// request.
	ErrUpstream = errors.New("falha no webhook de automacao")
)

// Request is the agent provisioning input.
type Request struct {
	Empresa  string `json:"empresa"`
	Telefone string `json:"telefone"`
}

// Service validates provisioning requests and forwards them to the
// external automation webhook that actually creates the WhatsApp agent.
type Service struct {
	logger     *zap.Logger
	httpClient *http.Client

	// Overridable webhook URL for testing.
	webhookURL string
}

func NewService(webhookURL string, logger *zap.Logger) *Service {
	return &Service{
		logger:     logger,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		webhookURL: webhookURL,
	}
}

// Provision sanitizes the request and forwards it upstream. The upstream
// body is relayed verbatim to the caller on success.
func (s *Service) Provision(ctx context.Context, req Request) ([]byte, error) {
	empresa := strings.TrimSpace(req.Empresa)
	if empresa == "" || len(empresa) > 120 {
		return nil, fmt.Errorf("%w: empresa", ErrValidation)
	}

	telefone := extractDigits(req.Telefone)
	if len(telefone) < 10 || len(telefone) > 13 {
		return nil, fmt.Errorf("%w: telefone", ErrValidation)
	}

	body, err := json.Marshal(Request{Empresa: empresa, Telefone: telefone})
	if err != nil {
		return nil, fmt.Errorf("encoding agent request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building agent request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Error("error calling automation webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("automation webhook refused the request",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return respBody, nil
}

// extractDigits keeps only the decimal digits of a phone string.
func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
