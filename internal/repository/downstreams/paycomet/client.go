package paycomet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/go-http-utils/headers"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
	"github.com/eurofurence/reg-paycomet-client/internal/config"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
	"github.com/eurofurence/reg-paycomet-client/internal/logging"
)

const (
	operationMethods       = "methods"
	operationExchange      = "exchange"
	operationHeartbeat     = "heartbeat"
	operationForm          = "form"
	operationPaymentInfo   = "payment-info"
	operationPaymentRefund = "payment-refund"

	circuitBreakerName = "paycomet-breaker"
)

type Impl struct {
	baseUrl     string
	credentials entities.Credentials
	timeout     time.Duration
	unfinished  UnfinishedPolicy
	now         func() time.Time

	state  authState
	client aurestclientapi.Client
}

var _ Paycomet = (*Impl)(nil)

func New(conf config.PaycometConfig) (Paycomet, error) {
	if conf.BaseUrl == "" {
		return nil, errors.New("paycomet.base_url not configured. This client cannot function without the PAYCOMET api url")
	}

	if !strings.HasPrefix(conf.BaseUrl, "https://") {
		aulogging.Logger.NoCtx().Warn().Printf("paycomet.base_url %s does not use https. Only useful for testing!", conf.BaseUrl)
	}

	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutSeconds) * time.Second
	}

	codes := make([]int64, 0, len(conf.UnfinishedErrorCodes))
	for _, code := range conf.UnfinishedErrorCodes {
		codes = append(codes, int64(code))
	}

	return &Impl{
		baseUrl:     conf.BaseUrl,
		credentials: entities.NewCredentials(conf.ApiToken, conf.Terminal),
		timeout:     timeout,
		unfinished: UnfinishedPolicy{
			Threshold: int64(conf.UnfinishedErrorThreshold),
			Codes:     codes,
		},
		now:   time.Now,
		state: authPending,
	}, nil
}

func (i *Impl) Methods(ctx context.Context) (interface{}, error) {
	if err := i.checkAuth(operationMethods); err != nil {
		return nil, err
	}

	doc, _, err := i.post(ctx, operationMethods, "/v1/methods", TerminalRequestDto{Terminal: i.credentials.Terminal})
	return doc, err
}

func (i *Impl) Exchange(ctx context.Context, from entities.Money, toCurrency string) (entities.Money, error) {
	if err := i.checkAuth(operationExchange); err != nil {
		return entities.Money{}, err
	}

	request, err := NewExchangeRequest(i.credentials.Terminal, from, toCurrency)
	if err != nil {
		return entities.Money{}, err
	}

	doc, raw, err := i.post(ctx, operationExchange, "/v1/exchange", request)
	if err != nil {
		return entities.Money{}, err
	}
	return reduceExchange(doc, raw, toCurrency)
}

func (i *Impl) Heartbeat(ctx context.Context) (PingInfo, error) {
	if err := i.checkAuth(operationHeartbeat); err != nil {
		return PingInfo{}, err
	}

	doc, raw, err := i.post(ctx, operationHeartbeat, "/v1/heartbeat", TerminalRequestDto{Terminal: i.credentials.Terminal})
	if err != nil {
		return PingInfo{}, err
	}
	return reduceHeartbeat(doc, raw)
}

func (i *Impl) SubmitForm(ctx context.Context, form *entities.PaymentForm) (string, error) {
	if err := i.checkAuth(operationForm); err != nil {
		return "", err
	}

	request, err := NewFormRequest(i.credentials.Terminal, form, i.now())
	if err != nil {
		logging.LoggerFromContext(ctx).Error("not sending invalid form. [error]: %v", err)
		return "", err
	}

	doc, raw, err := i.post(ctx, operationForm, "/v1/form", request)
	if err != nil {
		return "", err
	}
	return reduceChallengeUrl(doc, raw)
}

func (i *Impl) PaymentInfo(ctx context.Context, order string) (PaymentInfo, error) {
	if err := i.checkAuth(operationPaymentInfo); err != nil {
		return PaymentInfo{}, err
	}

	path := fmt.Sprintf("/v1/payments/%s/info", url.PathEscape(order))
	doc, raw, err := i.post(ctx, operationPaymentInfo, path, TerminalRequestDto{Terminal: i.credentials.Terminal})
	if err != nil {
		return PaymentInfo{}, err
	}
	return reducePaymentInfo(doc, raw, i.unfinished)
}

func (i *Impl) PaymentRefund(ctx context.Context, order string, priorInfo Document, override *entities.Money) (Document, error) {
	// an incomplete payment info must never lead to a request, so build before anything else
	request, err := NewRefundRequest(priorInfo, override)
	if err != nil {
		return nil, err
	}

	if err := i.checkAuth(operationPaymentRefund); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v1/payments/%s/refund", url.PathEscape(order))
	doc, raw, err := i.post(ctx, operationPaymentRefund, path, request)
	if err != nil {
		return nil, err
	}
	return reduceRefund(doc, raw)
}

func (i *Impl) Close() {
	i.client = nil
	i.state = authPending
}

// post sends one request and decodes the response body. The raw body is returned for diagnostics.
func (i *Impl) post(ctx context.Context, operation string, path string, requestBody interface{}) (interface{}, []byte, error) {
	requestUrl := i.baseUrl + path

	// the restclient hands out the unparsed body only through a **[]byte
	bodyPtr := &[]byte{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyPtr,
	}
	err := i.client.Perform(ctx, http.MethodPost, requestUrl, requestBody, &response)
	raw := make([]byte, 0)
	if bodyPtr != nil {
		raw = *bodyPtr
	}
	// the breaker reports 5xx as an error, but PAYCOMET puts its error code into the body
	if err != nil && (response.Status < 300 || len(raw) == 0) {
		return nil, raw, apierrors.NewTransportError(operation, "request to "+requestUrl+" failed", err)
	}

	contentType := ""
	if response.Header != nil {
		contentType = response.Header.Get(headers.ContentType)
	}

	doc, err := parseJSON(operation, contentType, response.Status, raw)
	return doc, raw, err
}

// parseJSON decodes the body whatever the status, because PAYCOMET reports errors as json too.
func parseJSON(operation string, contentType string, status int, raw []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		if status >= 300 {
			return nil, apierrors.NewTransportError(operation,
				fmt.Sprintf("gateway responded with status %d and content type '%s'", status, contentType), err)
		}
		return nil, apierrors.NewInvalidResponse(operation, "response is not valid json", raw)
	}

	return doc, nil
}
