package interaction

import (
	"context"
	"errors"

	"github.com/eurofurence/reg-paycomet-client/internal/entities"
	"github.com/eurofurence/reg-paycomet-client/internal/logging"
	"github.com/eurofurence/reg-paycomet-client/internal/repository/downstreams/paycomet"
)

var _ Interactor = (*serviceInteractor)(nil)

type Interactor interface {
	ListMethods(ctx context.Context) (interface{}, error)
	Exchange(ctx context.Context, amount entities.Money, toCurrency string) (entities.Money, error)
	Heartbeat(ctx context.Context) (paycomet.PingInfo, error)

	// CreateForm prepares a payment form from command line options and submits it.
	// It returns the challenge url for the payer.
	CreateForm(ctx context.Context, operationType entities.OperationType, opts map[string]string) (string, error)

	PaymentInfo(ctx context.Context, order string) (paycomet.PaymentInfo, error)

	// RefundPayment looks up the payment for order and refunds it, optionally with a different amount.
	RefundPayment(ctx context.Context, order string, override *entities.Money) (Refund, error)
}

// Refund holds both gateway answers involved in a refund.
type Refund struct {
	Payment paycomet.Document `json:"payment"`
	Refund  paycomet.Document `json:"refund"`
}

type serviceInteractor struct {
	logger logging.Logger
	client paycomet.Paycomet
}

func NewServiceInteractor(client paycomet.Paycomet, logger logging.Logger) (Interactor, error) {
	if client == nil {
		return nil, errors.New("paycomet client must not be nil")
	}

	if logger == nil {
		return nil, errors.New("no logger provided")
	}

	return &serviceInteractor{
		logger: logger,
		client: client,
	}, nil
}
