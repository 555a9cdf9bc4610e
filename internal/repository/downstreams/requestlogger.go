package downstreams

import (
	"context"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/eurofurence/reg-paycomet-client/internal/logging"
)

// snippets of failed responses are logged, so operators can see the gateway's error code
const maxLoggedBodyLength = 512

// RequestLoggingImpl logs every gateway call through the logger in the context, which carries
// the request id that is also sent to PAYCOMET.
type RequestLoggingImpl struct {
	Wrapped aurestclientapi.Client
}

func NewRequestLoggingWrapper(wrapped aurestclientapi.Client) aurestclientapi.Client {
	return &RequestLoggingImpl{
		Wrapped: wrapped,
	}
}

func (c *RequestLoggingImpl) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	logger := logging.LoggerFromContext(ctx)
	requestId := logging.RequestIDFromContext(ctx)

	before := time.Now()
	err := c.Wrapped.Perform(ctx, method, requestUrl, requestBody, response)
	millis := time.Since(before).Milliseconds()

	switch {
	case err != nil:
		logger.Warn("paycomet %s %s [%s] -> %d FAILED (%d ms): %s [response]: %s",
			method, requestUrl, requestId, response.Status, millis, err.Error(), bodySnippet(response))
	case response.Status >= 300:
		logger.Warn("paycomet %s %s [%s] -> %d (%d ms) [response]: %s",
			method, requestUrl, requestId, response.Status, millis, bodySnippet(response))
	default:
		logger.Info("paycomet %s %s [%s] -> %d OK (%d ms)", method, requestUrl, requestId, response.Status, millis)
	}
	return err
}

// bodySnippet only knows raw bodies, anything the restclient already parsed is not shown.
func bodySnippet(response *aurestclientapi.ParsedResponse) string {
	bodyPtr, ok := response.Body.(**[]byte)
	if !ok || bodyPtr == nil || *bodyPtr == nil {
		return ""
	}

	body := **bodyPtr
	if len(body) > maxLoggedBodyLength {
		return string(body[:maxLoggedBodyLength]) + "..."
	}
	return string(body)
}
