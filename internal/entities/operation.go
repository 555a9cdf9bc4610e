package entities

import "fmt"

type OperationType int

const (
	OperationInvalid            OperationType = 0
	OperationAuthorization      OperationType = 1
	OperationPreauthorization   OperationType = 3
	OperationSubscription       OperationType = 9
	OperationTokenization       OperationType = 107
	OperationAuthorizationByRef OperationType = 114
	OperationAuthorizationDCC   OperationType = 116
)

func (o OperationType) IsValid() bool {
	switch o {
	case OperationAuthorization, OperationPreauthorization, OperationSubscription,
		OperationTokenization, OperationAuthorizationByRef, OperationAuthorizationDCC:
		return true
	}

	return false
}

// RequiresPayment is true for every valid operation that charges an amount for an order.
func (o OperationType) RequiresPayment() bool {
	return o.IsValid() && o != OperationTokenization
}

func (o OperationType) String() string {
	switch o {
	case OperationAuthorization:
		return "authorization"
	case OperationPreauthorization:
		return "preauthorization"
	case OperationSubscription:
		return "subscription"
	case OperationTokenization:
		return "tokenization"
	case OperationAuthorizationByRef:
		return "authorization_by_reference"
	case OperationAuthorizationDCC:
		return "authorization_dcc"
	}

	return fmt.Sprintf("invalid(%d)", int(o))
}

// PaymentMethod is a PAYCOMET payment method code. Only card is named here, the
// gateway knows many more and they are passed through as plain codes.
type PaymentMethod int

const (
	MethodInvalid PaymentMethod = 0
	MethodCard    PaymentMethod = 1
)

// MaxMethods is the number of method slots a form can send.
const MaxMethods = 10

type PaymentState int

const (
	PaymentFailed     PaymentState = 0
	PaymentCorrect    PaymentState = 1
	PaymentUnfinished PaymentState = 2
)

// PaymentStateFromWire maps the integer the gateway sends in payment.state.
func PaymentStateFromWire(value int64) (PaymentState, bool) {
	switch PaymentState(value) {
	case PaymentFailed:
		return PaymentFailed, true
	case PaymentCorrect:
		return PaymentCorrect, true
	case PaymentUnfinished:
		return PaymentUnfinished, true
	}

	return PaymentFailed, false
}

func (p PaymentState) String() string {
	switch p {
	case PaymentFailed:
		return "failed"
	case PaymentCorrect:
		return "correct"
	case PaymentUnfinished:
		return "unfinished"
	}

	return fmt.Sprintf("invalid(%d)", int(p))
}
