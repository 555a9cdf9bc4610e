package paycomet

import (
	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/repository/downstreams"
)

type authState int

const (
	authPending authState = iota
	authApplied
)

// checkAuth verifies the credentials and, the first time it succeeds, sets up the transport
// that sends the api token with every request. Afterwards it does nothing.
//
// A failed check leaves the client untouched.
func (i *Impl) checkAuth(operation string) error {
	if i.state == authApplied {
		return nil
	}

	switch {
	case i.credentials.Terminal == 0:
		return apierrors.NewAuthError(operation, "missing terminal")
	case i.credentials.Terminal < 0:
		return apierrors.NewAuthError(operation, "invalid terminal")
	case i.credentials.ApiToken == "":
		return apierrors.NewAuthError(operation, "missing API token")
	}

	client, err := downstreams.ClientWith(
		downstreams.ApiTokenRequestManipulator(i.credentials.ApiToken),
		circuitBreakerName,
		i.timeout,
	)
	if err != nil {
		return apierrors.NewTransportError(operation, "failed to set up http client", err)
	}

	i.client = client
	i.state = authApplied
	return nil
}
