package entities

import "time"

// PaymentForm describes a payment form before it is sent to the gateway.
//
// Zero values mean "unset". In particular the subscription dates and periodicity
// are only defaulted when the form is serialized.
type PaymentForm struct {
	OperationType      OperationType
	Language           string
	ProductDescription string
	Payment            FormPayment
	Subscription       FormSubscription
}

type FormPayment struct {
	MerchantDescription string
	Methods             []PaymentMethod
	ExcludedMethods     []PaymentMethod
	Order               string
	Amount              Money
	IdUser              int
	TokenUser           string
	Secure              int
	// Scoring is a risk score from 0 to 100, kept as text
	Scoring         string
	UserInteraction int
	UrlOk           string
	UrlKo           string
}

type FormSubscription struct {
	StartDate   time.Time
	EndDate     time.Time
	Periodicity int
}
