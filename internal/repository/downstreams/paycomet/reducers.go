package paycomet

import (
	"encoding/json"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
)

// The reducers below check presence and type of every field they use. Anything unexpected
// becomes an invalid response error that carries the raw body.

func reduceExchange(doc interface{}, raw []byte, toCurrency string) (entities.Money, error) {
	obj, ok := doc.(Document)
	if !ok {
		return entities.Money{}, apierrors.NewInvalidResponse(operationExchange, "response is not an object", raw)
	}

	cents, ok := numberField(obj, "amount")
	if !ok {
		return entities.Money{}, apierrors.NewInvalidResponse(operationExchange, "response lacks a numeric amount", raw)
	}

	return entities.Money{
		Cents:    cents,
		Currency: entities.Money{Currency: toCurrency}.ISOCurrency(),
	}, nil
}

func reduceHeartbeat(doc interface{}, raw []byte) (PingInfo, error) {
	obj, ok := doc.(Document)
	if !ok {
		return PingInfo{}, apierrors.NewInvalidResponse(operationHeartbeat, "response is not an object", raw)
	}

	pingTime, ok1 := obj["time"].(string)
	processorTime, ok2 := obj["processorTime"].(string)
	if !ok1 || !ok2 {
		return PingInfo{}, apierrors.NewInvalidResponse(operationHeartbeat, "response lacks time or processorTime", raw)
	}

	result := PingInfo{
		Time:          pingTime,
		ProcessorTime: processorTime,
	}

	switch status := obj["processorStatus"].(type) {
	case bool:
		result.ProcessorStatus = &status
	case json.Number:
		up := status.String() != "0"
		result.ProcessorStatus = &up
	}

	return result, nil
}

func reduceChallengeUrl(doc interface{}, raw []byte) (string, error) {
	obj, ok := doc.(Document)
	if !ok {
		return "", apierrors.NewInvalidResponse(operationForm, "response is not an object", raw)
	}

	url, ok := obj["challengeUrl"].(string)
	if !ok || url == "" {
		return "", apierrors.NewInvalidResponse(operationForm, "response lacks challengeUrl", raw)
	}

	return url, nil
}

func reducePaymentInfo(doc interface{}, raw []byte, policy UnfinishedPolicy) (PaymentInfo, error) {
	obj, ok := doc.(Document)
	if !ok {
		return PaymentInfo{}, apierrors.NewInvalidResponse(operationPaymentInfo, "response is not an object", raw)
	}

	if errorCode, ok := integerField(obj, "errorCode"); ok && policy.Matches(errorCode) {
		return PaymentInfo{
			State:   entities.PaymentUnfinished,
			Info:    Document{},
			History: make([]interface{}, 0),
		}, nil
	}

	payment, ok := obj["payment"].(Document)
	if !ok {
		return PaymentInfo{}, apierrors.NewInvalidResponse(operationPaymentInfo, "response lacks payment object", raw)
	}

	wireState, ok := integerField(payment, "state")
	if !ok {
		return PaymentInfo{}, apierrors.NewInvalidResponse(operationPaymentInfo, "payment lacks integer state", raw)
	}

	history, ok := payment["history"].([]interface{})
	if !ok {
		return PaymentInfo{}, apierrors.NewInvalidResponse(operationPaymentInfo, "payment lacks history array", raw)
	}

	state, ok := entities.PaymentStateFromWire(wireState)
	if !ok {
		return PaymentInfo{}, apierrors.NewInvalidResponse(operationPaymentInfo, "payment has unknown state", raw)
	}

	info := make(Document, len(payment))
	for k, v := range payment {
		if k != "history" {
			info[k] = v
		}
	}

	return PaymentInfo{
		State:   state,
		Info:    info,
		History: history,
	}, nil
}

func reduceRefund(doc interface{}, raw []byte) (Document, error) {
	obj, ok := doc.(Document)
	if !ok {
		return nil, apierrors.NewInvalidResponse(operationPaymentRefund, "response is not an object", raw)
	}
	return obj, nil
}

// integerField only accepts json integers, 2.0 or "2" do not count.
func integerField(obj Document, key string) (int64, bool) {
	number, ok := obj[key].(json.Number)
	if !ok {
		return 0, false
	}
	value, err := number.Int64()
	if err != nil {
		return 0, false
	}
	return value, true
}

// numberField accepts any json number, fractions are cut off.
func numberField(obj Document, key string) (int64, bool) {
	if value, ok := integerField(obj, key); ok {
		return value, true
	}
	number, ok := obj[key].(json.Number)
	if !ok {
		return 0, false
	}
	value, err := number.Float64()
	if err != nil {
		return 0, false
	}
	return int64(value), true
}
