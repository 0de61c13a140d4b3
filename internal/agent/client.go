package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// RuntimeClient is the HTTP implementation of Invoker. It issues one
// synchronous request per invocation and decodes the runtime's streamed
// response: a sequence of newline-delimited JSON events carrying either a
// completion chunk, a trace entry, or an attribution payload.
type RuntimeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the runtime client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewRuntimeClient creates a client for the runtime at cfg.BaseURL.
func NewRuntimeClient(cfg Config) *RuntimeClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		// Completion time depends on the foundation model and prompt
		// length; a full trace can take a minute or more.
		timeout = 120 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuntimeClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// invokeBody is the request payload for the invoke endpoint.
type invokeBody struct {
	InputText   string `json:"inputText"`
	EnableTrace bool   `json:"enableTrace"`
}

// streamEvent is one newline-delimited event in the response stream.
// Exactly one of the fields is set per event.
type streamEvent struct {
	Chunk *struct {
		Bytes       []byte `json:"bytes"`
		Attribution *struct {
			Citations []map[string]any `json:"citations"`
		} `json:"attribution"`
	} `json:"chunk"`
	Trace *struct {
		Trace map[string]json.RawMessage `json:"trace"`
	} `json:"trace"`
}

// InvokeAgent sends the prompt and assembles the completion from the chunk
// events in arrival order. Trace events are bucketed by phase tag and
// citations are collected from chunk attributions. Any transport or
// decode fault returns an error and no partial completion.
func (c *RuntimeClient) InvokeAgent(ctx context.Context, req Request) (*Invocation, error) {
	if req.AgentID == "" {
		return nil, fmt.Errorf("invoke agent: agent id not configured")
	}

	endpoint := fmt.Sprintf("%s/agents/%s/agentAliases/%s/sessions/%s/text",
		c.baseURL,
		url.PathEscape(req.AgentID),
		url.PathEscape(req.AgentAliasID),
		url.PathEscape(req.SessionID))

	body, err := json.Marshal(invokeBody{
		InputText:   req.InputText,
		EnableTrace: req.EnableTrace,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke agent: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invoke agent: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("invoking agent",
		zap.String("agent_id", req.AgentID),
		zap.String("session_id", req.SessionID),
		zap.Int("prompt_len", len(req.InputText)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("invoke agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("agent invocation rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail))
		return nil, fmt.Errorf("invoke agent: runtime returned status %d", resp.StatusCode)
	}

	return decodeStream(resp.Body)
}

// decodeStream reads the event stream to completion. Chunk byte payloads
// are concatenated in arrival order; a decode failure mid-stream discards
// the whole invocation rather than surfacing a partial completion.
func decodeStream(r io.Reader) (*Invocation, error) {
	inv := &Invocation{Trace: make(map[string][]map[string]any)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var event streamEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("invoke agent: decode stream event: %w", err)
		}

		switch {
		case event.Chunk != nil:
			inv.Completion += string(event.Chunk.Bytes)
			if event.Chunk.Attribution != nil {
				inv.Citations = append(inv.Citations, event.Chunk.Attribution.Citations...)
			}
		case event.Trace != nil:
			for _, phase := range TracePhases {
				raw, ok := event.Trace.Trace[phase]
				if !ok {
					continue
				}
				var entry map[string]any
				if err := json.Unmarshal(raw, &entry); err != nil {
					return nil, fmt.Errorf("invoke agent: decode %s entry: %w", phase, err)
				}
				inv.Trace[phase] = append(inv.Trace[phase], entry)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("invoke agent: read stream: %w", err)
	}
	return inv, nil
}
