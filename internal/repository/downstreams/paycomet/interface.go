package paycomet

import (
	"context"

	"github.com/eurofurence/reg-paycomet-client/internal/entities"
)

// Paycomet talks to the PAYCOMET REST API.
//
// Every call checks the credentials first and then issues exactly one request. Nothing is
// retried. An instance is not safe for concurrent use.
type Paycomet interface {
	// Methods lists the payment methods available to the terminal, as returned by the gateway.
	Methods(ctx context.Context) (interface{}, error)

	// Exchange converts an amount into another currency using the gateway's rates.
	Exchange(ctx context.Context, from entities.Money, toCurrency string) (entities.Money, error)

	// Heartbeat checks connectivity to the gateway and its payment processor.
	Heartbeat(ctx context.Context) (PingInfo, error)

	// SubmitForm creates a payment form and returns the challenge url the payer must visit.
	SubmitForm(ctx context.Context, form *entities.PaymentForm) (string, error)

	// PaymentInfo fetches the state of the payment for an order.
	//
	// Error codes configured as "unfinished" are not errors, they yield state unfinished
	// with empty info and history.
	PaymentInfo(ctx context.Context, order string) (PaymentInfo, error)

	// PaymentRefund refunds a payment previously fetched with PaymentInfo. When override is
	// given and not zero, it replaces the original amount.
	PaymentRefund(ctx context.Context, order string, priorInfo Document, override *entities.Money) (Document, error)

	// Close drops the underlying transport. The next call sets it up again.
	Close()
}

// Document is a decoded json object. Numbers are kept as json.Number.
type Document = map[string]interface{}

type PingInfo struct {
	Time          string `json:"time"`
	ProcessorTime string `json:"processorTime"`
	// ProcessorStatus is only set when the gateway reports it
	ProcessorStatus *bool `json:"processorStatus,omitempty"`
}

type PaymentInfo struct {
	State entities.PaymentState
	// Info is the payment object without its history
	Info    Document
	History []interface{}
}

// UnfinishedPolicy decides which gateway error codes mean "the payer has not finished yet".
type UnfinishedPolicy struct {
	Threshold int64
	Codes     []int64
}

func (p UnfinishedPolicy) Matches(errorCode int64) bool {
	if p.Threshold > 0 && errorCode >= p.Threshold {
		return true
	}
	for _, code := range p.Codes {
		if code == errorCode {
			return true
		}
	}
	return false
}
