package interaction

import (
	"context"

	"github.com/eurofurence/reg-paycomet-client/internal/entities"
	"github.com/eurofurence/reg-paycomet-client/internal/form"
	"github.com/eurofurence/reg-paycomet-client/internal/logging"
	"github.com/eurofurence/reg-paycomet-client/internal/repository/downstreams/paycomet"
)

func (s *serviceInteractor) ListMethods(ctx context.Context) (interface{}, error) {
	return s.client.Methods(ctx)
}

func (s *serviceInteractor) Exchange(ctx context.Context, amount entities.Money, toCurrency string) (entities.Money, error) {
	return s.client.Exchange(ctx, amount, toCurrency)
}

func (s *serviceInteractor) Heartbeat(ctx context.Context) (paycomet.PingInfo, error) {
	return s.client.Heartbeat(ctx)
}

func (s *serviceInteractor) CreateForm(ctx context.Context, operationType entities.OperationType, opts map[string]string) (string, error) {
	logger := logging.LoggerFromContext(ctx)

	f, err := form.Prepare(operationType, opts)
	if err != nil {
		logger.Warn("rejecting form options. [error]: %v", err)
		return "", err
	}

	challengeUrl, err := s.client.SubmitForm(ctx, f)
	if err != nil {
		return "", err
	}

	logger.Info("created %s form for order '%s'", operationType.String(), f.Payment.Order)
	return challengeUrl, nil
}

func (s *serviceInteractor) PaymentInfo(ctx context.Context, order string) (paycomet.PaymentInfo, error) {
	return s.client.PaymentInfo(ctx, order)
}

func (s *serviceInteractor) RefundPayment(ctx context.Context, order string, override *entities.Money) (Refund, error) {
	logger := logging.LoggerFromContext(ctx)

	info, err := s.client.PaymentInfo(ctx, order)
	if err != nil {
		return Refund{}, err
	}

	if info.State != entities.PaymentCorrect {
		logger.Warn("refunding order '%s' which is in state %s", order, info.State.String())
	}

	refund, err := s.client.PaymentRefund(ctx, order, info.Info, override)
	if err != nil {
		return Refund{}, err
	}

	logger.Info("refunded order '%s'", order)
	return Refund{
		Payment: info.Info,
		Refund:  refund,
	}, nil
}
