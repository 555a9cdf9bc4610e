package downstreams

import (
	"context"
	"net/http"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-http-utils/headers"

	"github.com/eurofurence/reg-paycomet-client/internal/logging"
)

const (
	ApiTokenHeader             = "PAYCOMET-API-TOKEN"
	ContentTypeApplicationJson = "application/json"
)

func ApiTokenRequestManipulator(apiToken string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Set(ApiTokenHeader, apiToken)
		r.Header.Set(headers.Accept, ContentTypeApplicationJson)
		r.Header.Set(middleware.RequestIDHeader, logging.RequestIDFromContext(ctx))
	}
}

// ClientWith stacks request logging and a circuit breaker on top of a plain http client.
//
// The breaker also enforces the timeout for each request. It never retries.
func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string, timeout time.Duration) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(timeout, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := NewRequestLoggingWrapper(httpClient)

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		timeout,
	)

	return circuitBreakerClient, nil
}
