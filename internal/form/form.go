// Package form builds payment forms out of loosely typed command line options.
package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
)

const (
	operation  = "form"
	DateLayout = "2006/01/02"
)

type fieldSetter func(f *entities.PaymentForm, key string, value string) error

// setters is keyed by the lower cased option name. Aliases point at the same field.
var setters = map[string]fieldSetter{
	"amount": setAmount,

	"language":            stringField(func(f *entities.PaymentForm) *string { return &f.Language }),
	"description":         stringField(func(f *entities.PaymentForm) *string { return &f.ProductDescription }),
	"productdescription":  stringField(func(f *entities.PaymentForm) *string { return &f.ProductDescription }),
	"merchantdescription": stringField(func(f *entities.PaymentForm) *string { return &f.Payment.MerchantDescription }),
	"order":               stringField(func(f *entities.PaymentForm) *string { return &f.Payment.Order }),
	"tokenuser":           stringField(func(f *entities.PaymentForm) *string { return &f.Payment.TokenUser }),
	"scoring":             setScoring,
	"url_success":         stringField(func(f *entities.PaymentForm) *string { return &f.Payment.UrlOk }),
	"urlok":               stringField(func(f *entities.PaymentForm) *string { return &f.Payment.UrlOk }),
	"url_cancel":          stringField(func(f *entities.PaymentForm) *string { return &f.Payment.UrlKo }),
	"urlko":               stringField(func(f *entities.PaymentForm) *string { return &f.Payment.UrlKo }),

	"iduser":          intField(func(f *entities.PaymentForm) *int { return &f.Payment.IdUser }),
	"secure":          intField(func(f *entities.PaymentForm) *int { return &f.Payment.Secure }),
	"userinteraction": intField(func(f *entities.PaymentForm) *int { return &f.Payment.UserInteraction }),
	"periodicity":     intField(func(f *entities.PaymentForm) *int { return &f.Subscription.Periodicity }),

	"date_start": dateField(func(f *entities.PaymentForm) *time.Time { return &f.Subscription.StartDate }),
	"date_end":   dateField(func(f *entities.PaymentForm) *time.Time { return &f.Subscription.EndDate }),

	"methods":         methodsField(func(f *entities.PaymentForm) *[]entities.PaymentMethod { return &f.Payment.Methods }),
	"excludedmethods": methodsField(func(f *entities.PaymentForm) *[]entities.PaymentMethod { return &f.Payment.ExcludedMethods }),
}

// Prepare fills a new form of the given operation type from the options.
//
// Unknown options are ignored. Mandatory fields are not checked here, that happens when the
// form is turned into a request, so a tokenization form can be prepared without an amount.
func Prepare(operationType entities.OperationType, opts map[string]string) (*entities.PaymentForm, error) {
	f := &entities.PaymentForm{
		OperationType: operationType,
		Payment: entities.FormPayment{
			Methods: []entities.PaymentMethod{entities.MethodCard},
		},
	}

	// sorted so the reported error does not depend on map order
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		set, ok := setters[strings.ToLower(key)]
		if !ok {
			continue
		}
		if err := set(f, key, opts[key]); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setAmount(f *entities.PaymentForm, key string, value string) error {
	amount, err := entities.ParseMoney(value)
	if err != nil {
		return apierrors.NewValidationError(operation, apierrors.ReasonInvalidAmount,
			fmt.Sprintf("%s: invalid amount '%s', expected something like 100.00EUR", key, value), err)
	}
	f.Payment.Amount = amount
	return nil
}

func setScoring(f *entities.PaymentForm, key string, value string) error {
	score, err := strconv.Atoi(value)
	if err != nil || score < 0 || score > 100 {
		return apierrors.NewValidationError(operation, apierrors.ReasonInvalidNumber,
			fmt.Sprintf("%s: risk score must be an integer from 0 to 100, got '%s'", key, value), err)
	}
	f.Payment.Scoring = value
	return nil
}

func stringField(field func(f *entities.PaymentForm) *string) fieldSetter {
	return func(f *entities.PaymentForm, _ string, value string) error {
		*field(f) = value
		return nil
	}
}

func intField(field func(f *entities.PaymentForm) *int) fieldSetter {
	return func(f *entities.PaymentForm, key string, value string) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return apierrors.NewValidationError(operation, apierrors.ReasonInvalidNumber,
				fmt.Sprintf("%s: invalid number '%s'", key, value), err)
		}
		*field(f) = parsed
		return nil
	}
}

func dateField(field func(f *entities.PaymentForm) *time.Time) fieldSetter {
	return func(f *entities.PaymentForm, key string, value string) error {
		parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
		if err != nil {
			return apierrors.NewValidationError(operation, apierrors.ReasonInvalidDate,
				fmt.Sprintf("%s: invalid date '%s', expected YYYY/MM/DD", key, value), err)
		}
		*field(f) = parsed
		return nil
	}
}

func methodsField(field func(f *entities.PaymentForm) *[]entities.PaymentMethod) fieldSetter {
	return func(f *entities.PaymentForm, key string, value string) error {
		methods := make([]entities.PaymentMethod, 0)
		for _, code := range strings.Split(value, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			parsed, err := strconv.Atoi(code)
			if err != nil || parsed <= 0 {
				return apierrors.NewValidationError(operation, apierrors.ReasonInvalidNumber,
					fmt.Sprintf("%s: invalid payment method code '%s'", key, code), err)
			}
			methods = append(methods, entities.PaymentMethod(parsed))
		}
		*field(f) = methods
		return nil
	}
}
