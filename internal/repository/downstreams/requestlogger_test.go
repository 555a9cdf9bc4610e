package downstreams

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-paycomet-client/internal/logging"
)

type cannedClient struct {
	status int
	body   string
	err    error
}

func (c *cannedClient) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	response.Status = c.status
	if bodyPtr, ok := response.Body.(**[]byte); ok {
		body := []byte(c.body)
		*bodyPtr = &body
	}
	return c.err
}

func performLogged(t *testing.T, wrapped aurestclientapi.Client) (string, error) {
	buf := &bytes.Buffer{}
	logging.SetOutput(buf)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
	})

	ctx := logging.ContextWithRequestID(context.Background(), "abcd1234")

	bodyPtr := &[]byte{}
	response := aurestclientapi.ParsedResponse{Body: &bodyPtr}
	err := NewRequestLoggingWrapper(wrapped).Perform(ctx, http.MethodPost, "https://gateway/v1/heartbeat", nil, &response)
	return buf.String(), err
}

func TestRequestLoggingWrapper(t *testing.T) {
	tests := []struct {
		name        string
		client      *cannedClient
		contains    []string
		notContains []string
	}{
		{
			name:        "success is logged without body",
			client:      &cannedClient{status: http.StatusOK, body: `{"time":"1"}`},
			contains:    []string{"abcd1234", "-> 200 OK", "/v1/heartbeat"},
			notContains: []string{`"time"`},
		},
		{
			name:     "error status shows the body",
			client:   &cannedClient{status: http.StatusBadRequest, body: `{"errorCode":1001}`},
			contains: []string{"abcd1234", "-> 400", `{"errorCode":1001}`},
		},
		{
			name:     "failed call shows error and body",
			client:   &cannedClient{status: http.StatusInternalServerError, body: `{"errorCode":305}`, err: errors.New("got http status 500")},
			contains: []string{"abcd1234", "FAILED", "got http status 500", `{"errorCode":305}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := performLogged(t, tt.client)
			require.Equal(t, tt.client.err, err)
			for _, expected := range tt.contains {
				require.Contains(t, out, expected)
			}
			for _, unexpected := range tt.notContains {
				require.NotContains(t, out, unexpected)
			}
		})
	}
}

func TestBodySnippetTruncates(t *testing.T) {
	body := []byte(strings.Repeat("x", maxLoggedBodyLength+10))
	bodyPtr := &body
	response := aurestclientapi.ParsedResponse{Body: &bodyPtr}

	snippet := bodySnippet(&response)
	require.Len(t, snippet, maxLoggedBodyLength+3)
	require.True(t, strings.HasSuffix(snippet, "..."))

	require.Equal(t, "", bodySnippet(&aurestclientapi.ParsedResponse{}))
}
