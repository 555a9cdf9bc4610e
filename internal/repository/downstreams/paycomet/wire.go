package paycomet

import (
	"strconv"
	"strings"
	"time"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
)

const (
	wireDateLayout             = "20060102"
	defaultPeriodicityDays     = 30
	defaultSubscriptionYears   = 5
	operationSerializeForm     = "form"
	operationSerializeRefund   = "refund"
	operationSerializeExchange = "exchange"
)

type TerminalRequestDto struct {
	Terminal int64 `json:"terminal"`
}

type ExchangeRequestDto struct {
	Terminal         int64  `json:"terminal"`
	Amount           string `json:"amount"`
	OriginalCurrency string `json:"originalCurrency"`
	FinalCurrency    string `json:"finalCurrency"`
}

type FormRequestDto struct {
	OperationType      int                  `json:"operationType"`
	Language           string               `json:"language,omitempty"`
	Terminal           int64                `json:"terminal"`
	ProductDescription string               `json:"productDescription,omitempty"`
	Payment            *FormPaymentDto      `json:"payment,omitempty"`
	Subscription       *FormSubscriptionDto `json:"subscription,omitempty"`
}

// FormPaymentDto uses omitempty only for fields that are left out when empty.
// secure and userInteraction are always sent, 0 is a meaningful value for them.
type FormPaymentDto struct {
	Terminal            int64  `json:"terminal"`
	Methods             []int  `json:"methods,omitempty"`
	ExcludedMethods     []int  `json:"excludedMethods,omitempty"`
	Order               string `json:"order,omitempty"`
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	IdUser              int    `json:"idUser,omitempty"`
	TokenUser           string `json:"tokenUser,omitempty"`
	Secure              int    `json:"secure"`
	Scoring             string `json:"scoring,omitempty"`
	ProductDescription  string `json:"productDescription,omitempty"`
	MerchantDescription string `json:"merchantDescription,omitempty"`
	UserInteraction     int    `json:"userInteraction"`
	UrlOk               string `json:"urlOk,omitempty"`
	UrlKo               string `json:"urlKo,omitempty"`
}

type FormSubscriptionDto struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Periodicity string `json:"periodicity"`
}

type RefundRequestDto struct {
	Payment RefundPaymentDto `json:"payment"`
}

// RefundPaymentDto copies values from a payment info document as they were received.
type RefundPaymentDto struct {
	Terminal   interface{} `json:"terminal"`
	Amount     interface{} `json:"amount"`
	Currency   interface{} `json:"currency"`
	AuthCode   interface{} `json:"authCode"`
	OriginalIp interface{} `json:"originalIp"`
}

// NewFormRequest turns a prepared form into the request body for /v1/form.
//
// now is used for subscription defaults only.
func NewFormRequest(terminal int64, f *entities.PaymentForm, now time.Time) (FormRequestDto, error) {
	if err := validateForm(f); err != nil {
		return FormRequestDto{}, err
	}

	dto := FormRequestDto{
		OperationType: int(f.OperationType),
		Language:      f.Language,
		Terminal:      terminal,
	}

	if f.OperationType == entities.OperationTokenization {
		dto.ProductDescription = f.ProductDescription
	} else {
		payment := newFormPayment(terminal, f)
		dto.Payment = &payment
	}

	if f.OperationType == entities.OperationSubscription {
		subscription := newFormSubscription(f.Subscription, now)
		dto.Subscription = &subscription
	}

	return dto, nil
}

func validateForm(f *entities.PaymentForm) error {
	if f == nil || !f.OperationType.IsValid() {
		return apierrors.NewValidationError(operationSerializeForm, apierrors.ReasonMissingField,
			"missing operationType", nil)
	}
	if !f.OperationType.RequiresPayment() {
		return nil
	}
	if f.Payment.Amount.IsZero() || f.Payment.Amount.Currency == "" {
		return apierrors.NewValidationError(operationSerializeForm, apierrors.ReasonMissingField,
			"missing amount, use amount=100.00EUR", nil)
	}
	if f.Payment.Order == "" {
		return apierrors.NewValidationError(operationSerializeForm, apierrors.ReasonMissingField,
			"missing order, use order=REF", nil)
	}
	return nil
}

func newFormPayment(terminal int64, f *entities.PaymentForm) FormPaymentDto {
	p := f.Payment
	dto := FormPaymentDto{
		Terminal:            terminal,
		Methods:             methodCodes(p.Methods),
		ExcludedMethods:     methodCodes(p.ExcludedMethods),
		Order:               p.Order,
		Amount:              strconv.FormatInt(p.Amount.Cents, 10),
		Currency:            p.Amount.ISOCurrency(),
		TokenUser:           p.TokenUser,
		Secure:              p.Secure,
		Scoring:             p.Scoring,
		ProductDescription:  f.ProductDescription,
		MerchantDescription: p.MerchantDescription,
		UserInteraction:     p.UserInteraction,
		UrlOk:               p.UrlOk,
		UrlKo:               p.UrlKo,
	}
	if p.IdUser > 0 {
		dto.IdUser = p.IdUser
	}
	return dto
}

// methodCodes stops at the first unset slot and never returns more than MaxMethods codes.
// It returns nil when the first slot is unset, so the field is left out.
func methodCodes(methods []entities.PaymentMethod) []int {
	var codes []int
	for i, method := range methods {
		if i >= entities.MaxMethods || method == entities.MethodInvalid {
			break
		}
		codes = append(codes, int(method))
	}
	return codes
}

func newFormSubscription(s entities.FormSubscription, now time.Time) FormSubscriptionDto {
	start := s.StartDate
	if start.IsZero() {
		start = now
	}

	end := s.EndDate
	if end.IsZero() {
		end = start.AddDate(defaultSubscriptionYears, 0, 0)
	}

	periodicity := s.Periodicity
	if periodicity == 0 {
		periodicity = defaultPeriodicityDays
	}

	return FormSubscriptionDto{
		StartDate:   start.Local().Format(wireDateLayout),
		EndDate:     end.Local().Format(wireDateLayout),
		Periodicity: strconv.Itoa(periodicity),
	}
}

func NewExchangeRequest(terminal int64, from entities.Money, toCurrency string) (ExchangeRequestDto, error) {
	if !entities.IsCurrencyCode(from.Currency) || !entities.IsCurrencyCode(toCurrency) {
		return ExchangeRequestDto{}, apierrors.NewValidationError(operationSerializeExchange, apierrors.ReasonMissingField,
			"currencies must be three letter codes", nil)
	}

	return ExchangeRequestDto{
		Terminal:         terminal,
		Amount:           strconv.FormatInt(from.Cents, 10),
		OriginalCurrency: from.ISOCurrency(),
		FinalCurrency:    entities.Money{Currency: toCurrency}.ISOCurrency(),
	}, nil
}

// NewRefundRequest derives a refund from a payment info document.
func NewRefundRequest(priorInfo Document, override *entities.Money) (RefundRequestDto, error) {
	payment := RefundPaymentDto{
		Terminal:   priorInfo["terminal"],
		Amount:     priorInfo["amount"],
		Currency:   priorInfo["currency"],
		AuthCode:   priorInfo["authCode"],
		OriginalIp: priorInfo["originalIp"],
	}

	if override != nil && !override.IsZero() {
		payment.Amount = strconv.FormatInt(override.Cents, 10)
		payment.Currency = override.ISOCurrency()
	}

	missing := make([]string, 0)
	for _, field := range []struct {
		name  string
		value interface{}
	}{
		{"terminal", payment.Terminal},
		{"amount", payment.Amount},
		{"currency", payment.Currency},
		{"authCode", payment.AuthCode},
		{"originalIp", payment.OriginalIp},
	} {
		if field.value == nil {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return RefundRequestDto{}, apierrors.NewValidationError(operationSerializeRefund, apierrors.ReasonMissingField,
			"payment info lacks "+strings.Join(missing, ", "), nil)
	}

	return RefundRequestDto{Payment: payment}, nil
}
