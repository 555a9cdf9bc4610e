package paycomet

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
	"github.com/eurofurence/reg-paycomet-client/internal/form"
	"github.com/eurofurence/reg-paycomet-client/internal/options"
)

const testTerminal = int64(12345)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

func prepare(t *testing.T, operationType entities.OperationType, args ...string) *entities.PaymentForm {
	f, err := form.Prepare(operationType, options.ToMap(args))
	require.NoError(t, err)
	return f
}

// toWire marshals the request and reads it back as a generic document, so tests see exactly
// what goes over the wire.
func toWire(t *testing.T, request interface{}) Document {
	b, err := json.Marshal(request)
	require.NoError(t, err)

	doc := Document{}
	require.NoError(t, json.Unmarshal(b, &doc))
	return doc
}

func TestNewFormRequestAuthorization(t *testing.T) {
	f := prepare(t, entities.OperationAuthorization, "order=ABC123", "amount=150.00EUR")

	request, err := NewFormRequest(testTerminal, f, fixedNow)
	require.NoError(t, err)

	expected := Document{
		"operationType": float64(1),
		"terminal":      float64(testTerminal),
		"payment": map[string]interface{}{
			"terminal":        float64(testTerminal),
			"methods":         []interface{}{float64(1)},
			"order":           "ABC123",
			"amount":          "15000",
			"currency":        "EUR",
			"secure":          float64(0),
			"userInteraction": float64(0),
		},
	}
	require.Equal(t, expected, toWire(t, request))
}

func TestNewFormRequestOptionalFields(t *testing.T) {
	f := prepare(t, entities.OperationPreauthorization,
		"order=ABC123", "amount=10eur", "language=es", "description=Membership",
		"merchantDescription=EF", "tokenUser=tok", "scoring=5", "idUser=9",
		"urlOk=https://ok", "urlKo=https://ko", "secure=1", "userInteraction=1",
		"excludedMethods=10",
	)

	doc := toWire(t, mustFormRequest(t, f))

	require.Equal(t, "es", doc["language"])
	require.NotContains(t, doc, "productDescription")
	require.NotContains(t, doc, "subscription")

	payment := doc["payment"].(map[string]interface{})
	require.Equal(t, "1000", payment["amount"])
	require.Equal(t, "EUR", payment["currency"])
	require.Equal(t, "Membership", payment["productDescription"])
	require.Equal(t, "EF", payment["merchantDescription"])
	require.Equal(t, "tok", payment["tokenUser"])
	require.Equal(t, "5", payment["scoring"])
	require.Equal(t, float64(9), payment["idUser"])
	require.Equal(t, "https://ok", payment["urlOk"])
	require.Equal(t, "https://ko", payment["urlKo"])
	require.Equal(t, float64(1), payment["secure"])
	require.Equal(t, float64(1), payment["userInteraction"])
	require.Equal(t, []interface{}{float64(10)}, payment["excludedMethods"])

	// currency is upper cased on the wire only
	require.Equal(t, "eur", f.Payment.Amount.Currency)
}

func TestNewFormRequestOmitsNonPositiveIdUser(t *testing.T) {
	f := prepare(t, entities.OperationAuthorization, "order=ABC123", "amount=1EUR", "idUser=-3")

	payment := toWire(t, mustFormRequest(t, f))["payment"].(map[string]interface{})
	require.NotContains(t, payment, "idUser")
}

func TestNewFormRequestMethods(t *testing.T) {
	tests := []struct {
		name     string
		methods  []entities.PaymentMethod
		expected []int
	}{
		{name: "unset first slot omits the field", methods: []entities.PaymentMethod{0, 1}, expected: nil},
		{name: "empty list omits the field", methods: nil, expected: nil},
		{name: "stops at the first unset slot", methods: []entities.PaymentMethod{1, 10, 0, 11}, expected: []int{1, 10}},
		{name: "truncated to ten entries", methods: []entities.PaymentMethod{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := prepare(t, entities.OperationAuthorization, "order=ABC123", "amount=1EUR")
			f.Payment.Methods = tt.methods

			request := mustFormRequest(t, f)
			require.Equal(t, tt.expected, request.Payment.Methods)
		})
	}
}

func TestNewFormRequestTokenization(t *testing.T) {
	f := prepare(t, entities.OperationTokenization, "description=Save my card", "language=en")

	doc := toWire(t, mustFormRequest(t, f))

	expected := Document{
		"operationType":      float64(107),
		"language":           "en",
		"terminal":           float64(testTerminal),
		"productDescription": "Save my card",
	}
	require.Equal(t, expected, doc)
}

func TestNewFormRequestSubscriptionDefaults(t *testing.T) {
	f := prepare(t, entities.OperationSubscription, "order=SUB1", "amount=5EUR")

	doc := toWire(t, mustFormRequest(t, f))

	require.Equal(t, map[string]interface{}{
		"startDate":   "20240315",
		"endDate":     "20290315",
		"periodicity": "30",
	}, doc["subscription"])
	require.Contains(t, doc, "payment")

	// defaults are not written back into the form
	require.True(t, f.Subscription.StartDate.IsZero())
	require.Equal(t, 0, f.Subscription.Periodicity)
}

func TestNewFormRequestSubscriptionExplicit(t *testing.T) {
	f := prepare(t, entities.OperationSubscription, "order=SUB1", "amount=5EUR",
		"date_start=2024/06/01", "periodicity=7")

	request := mustFormRequest(t, f)
	require.Equal(t, &FormSubscriptionDto{
		StartDate:   "20240601",
		EndDate:     "20290601",
		Periodicity: "7",
	}, request.Subscription)

	f = prepare(t, entities.OperationSubscription, "order=SUB1", "amount=5EUR",
		"date_start=2024/06/01", "date_end=2024/12/31")

	request = mustFormRequest(t, f)
	require.Equal(t, "20241231", request.Subscription.EndDate)
	require.Equal(t, "30", request.Subscription.Periodicity)
}

func TestNewFormRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    *entities.PaymentForm
		message string
	}{
		{name: "nil form", form: nil, message: "missing operationType"},
		{name: "invalid operation type", form: prepare(t, entities.OperationInvalid, "order=A", "amount=1EUR"), message: "missing operationType"},
		{name: "missing amount", form: prepare(t, entities.OperationAuthorization, "order=A"), message: "missing amount"},
		{name: "zero amount", form: prepare(t, entities.OperationAuthorization, "order=A", "amount=0EUR"), message: "missing amount"},
		{name: "missing order", form: prepare(t, entities.OperationSubscription, "amount=1EUR"), message: "missing order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormRequest(testTerminal, tt.form, fixedNow)
			require.Error(t, err)
			require.True(t, apierrors.IsValidationError(err))
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNewExchangeRequest(t *testing.T) {
	request, err := NewExchangeRequest(testTerminal, entities.Money{Cents: 10000, Currency: "eur"}, "usd")
	require.NoError(t, err)
	require.Equal(t, ExchangeRequestDto{
		Terminal:         testTerminal,
		Amount:           "10000",
		OriginalCurrency: "EUR",
		FinalCurrency:    "USD",
	}, request)

	_, err = NewExchangeRequest(testTerminal, entities.Money{Cents: 10000, Currency: "eur"}, "dollars")
	require.True(t, apierrors.IsValidationError(err))
}

func TestNewRefundRequest(t *testing.T) {
	info := Document{
		"terminal":   json.Number("12345"),
		"amount":     "15000",
		"currency":   "EUR",
		"authCode":   "AUTH1",
		"originalIp": "10.0.0.1",
		"state":      json.Number("1"),
	}

	request, err := NewRefundRequest(info, nil)
	require.NoError(t, err)
	require.Equal(t, Document{
		"payment": map[string]interface{}{
			"terminal":   float64(12345),
			"amount":     "15000",
			"currency":   "EUR",
			"authCode":   "AUTH1",
			"originalIp": "10.0.0.1",
		},
	}, toWire(t, request))

	request, err = NewRefundRequest(info, &entities.Money{Cents: 500, Currency: "usd"})
	require.NoError(t, err)
	require.Equal(t, "500", request.Payment.Amount)
	require.Equal(t, "USD", request.Payment.Currency)

	request, err = NewRefundRequest(info, &entities.Money{Cents: 0, Currency: "usd"})
	require.NoError(t, err)
	require.Equal(t, "15000", request.Payment.Amount)
}

func TestNewRefundRequestMissingFields(t *testing.T) {
	complete := func() Document {
		return Document{
			"terminal":   json.Number("12345"),
			"amount":     "15000",
			"currency":   "EUR",
			"authCode":   "AUTH1",
			"originalIp": "10.0.0.1",
		}
	}

	for _, field := range []string{"terminal", "amount", "currency", "authCode", "originalIp"} {
		t.Run(field, func(t *testing.T) {
			info := complete()
			delete(info, field)

			_, err := NewRefundRequest(info, nil)
			require.Error(t, err)
			require.True(t, apierrors.IsValidationError(err))
			require.Contains(t, err.Error(), field)
		})
	}

	t.Run("override fills amount and currency", func(t *testing.T) {
		info := complete()
		delete(info, "amount")
		delete(info, "currency")

		_, err := NewRefundRequest(info, &entities.Money{Cents: 100, Currency: "EUR"})
		require.NoError(t, err)
	})

	t.Run("empty info", func(t *testing.T) {
		_, err := NewRefundRequest(Document{}, nil)
		require.True(t, apierrors.IsValidationError(err))
	})
}

func mustFormRequest(t *testing.T, f *entities.PaymentForm) FormRequestDto {
	request, err := NewFormRequest(testTerminal, f, fixedNow)
	require.NoError(t, err)
	return request
}
