package agent

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *RuntimeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRuntimeClient(Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
}

func TestInvokeAgent_ConcatenatesChunksInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/agents/AGENT1/agentAliases/ALIAS1/sessions/s1/text", r.URL.Path)

		fmt.Fprintf(w, `{"chunk":{"bytes":"%s"}}`+"\n", b64("Team "))
		fmt.Fprintf(w, `{"chunk":{"bytes":"%s"}}`+"\n", b64("composition: "))
		fmt.Fprintf(w, `{"chunk":{"bytes":"%s"}}`+"\n", b64("5 players."))
	})

	inv, err := client.InvokeAgent(context.Background(), Request{
		AgentID:      "AGENT1",
		AgentAliasID: "ALIAS1",
		SessionID:    "s1",
		InputText:    "build a team",
		EnableTrace:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Team composition: 5 players.", inv.Completion)
	assert.Empty(t, inv.Citations)
}

func TestInvokeAgent_BucketsTraceByPhase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"trace":{"trace":{"orchestrationTrace":{"rationale":{"traceId":"t-1","text":"thinking"}}}}}`)
		fmt.Fprintln(w, `{"trace":{"trace":{"orchestrationTrace":{"observation":{"traceId":"t-1","type":"FINISH"}}}}}`)
		fmt.Fprintln(w, `{"trace":{"trace":{"preProcessingTrace":{"modelInvocationInput":{"traceId":"p-1"}}}}}`)
		fmt.Fprintf(w, `{"chunk":{"bytes":"%s"}}`+"\n", b64("done"))
	})

	inv, err := client.InvokeAgent(context.Background(), Request{
		AgentID: "A", AgentAliasID: "B", SessionID: "s", InputText: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "done", inv.Completion)
	assert.Len(t, inv.Trace[PhaseOrchestration], 2)
	assert.Len(t, inv.Trace[PhasePreProcessing], 1)
	assert.Empty(t, inv.Trace[PhasePostProcessing])
}

func TestInvokeAgent_CollectsCitations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chunk":{"bytes":"%s","attribution":{"citations":[{"generatedResponsePart":{"textResponsePart":{"text":"snippet"}},"retrievedReferences":[{"content":{"text":"ref1"}},{"content":{"text":"ref2"}}]}]}}}`+"\n", b64("answer"))
	})

	inv, err := client.InvokeAgent(context.Background(), Request{
		AgentID: "A", AgentAliasID: "B", SessionID: "s", InputText: "x",
	})
	require.NoError(t, err)
	require.Len(t, inv.Citations, 1)
	refs, ok := inv.Citations[0]["retrievedReferences"].([]any)
	require.True(t, ok)
	assert.Len(t, refs, 2)
}

func TestInvokeAgent_RejectedCall(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"access denied"}`, http.StatusForbidden)
	})

	inv, err := client.InvokeAgent(context.Background(), Request{
		AgentID: "A", AgentAliasID: "B", SessionID: "s", InputText: "x",
	})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.Contains(t, err.Error(), "status 403")
}

// A decode fault mid-stream yields an error and no partial completion.
func TestInvokeAgent_MalformedStream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chunk":{"bytes":"%s"}}`+"\n", b64("partial "))
		fmt.Fprintln(w, `this is not json`)
	})

	inv, err := client.InvokeAgent(context.Background(), Request{
		AgentID: "A", AgentAliasID: "B", SessionID: "s", InputText: "x",
	})
	require.Error(t, err)
	assert.Nil(t, inv)
}

func TestInvokeAgent_MissingAgentID(t *testing.T) {
	client := NewRuntimeClient(Config{BaseURL: "http://localhost:0"})
	_, err := client.InvokeAgent(context.Background(), Request{SessionID: "s"})
	assert.Error(t, err)
}

func TestInvokeAgent_SendsBearerWhenConfigured(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	t.Cleanup(srv.Close)

	client := NewRuntimeClient(Config{BaseURL: srv.URL, APIKey: "secret"})
	_, err := client.InvokeAgent(context.Background(), Request{
		AgentID: "A", AgentAliasID: "B", SessionID: "s",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}
