package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
)

func Validate(conf *Application, logFunc func(format string, v ...interface{})) error {
	errs := url.Values{}
	validatePaycometConfiguration(errs, conf.Paycomet)
	validateLoggingConfiguration(errs, conf.Logging)

	if len(errs) > 0 {
		logValidationErrorDetails(errs, logFunc)
		return errors.New("configuration values failed to validate, bailing out")
	}

	return nil
}

const baseUrlPattern = "^https?://.*[^/]$"

func validatePaycometConfiguration(errs url.Values, c PaycometConfig) {
	if violatesPattern(baseUrlPattern, c.BaseUrl) {
		errs.Add("paycomet.base_url", "base url must start with http:// or https:// and may not end in a /")
	}
	checkIntValueRange(errs, 1, 300, "paycomet.timeout_seconds", c.TimeoutSeconds)
	checkIntValueRange(errs, 100, 999, "paycomet.unfinished_error_threshold", c.UnfinishedErrorThreshold)
	for i, code := range c.UnfinishedErrorCodes {
		checkIntValueRange(errs, 1, 999, fmt.Sprintf("paycomet.unfinished_error_codes[%d]", i), code)
	}
}

var allowedSeverities = []string{"DEBUG", "INFO", "WARN", "ERROR"}

var allowedStyles = []LoggingStyle{Plain, Json}

func validateLoggingConfiguration(errs url.Values, c LoggingConfig) {
	if notInAllowedValues(allowedSeverities[:], c.Severity) {
		errs.Add("logging.severity", "must be one of DEBUG, INFO, WARN, ERROR")
	}
	if notInAllowedValues(allowedStyles[:], c.Style) {
		errs.Add("logging.style", "must be one of plain, json")
	}
}

func violatesPattern(pattern string, value string) bool {
	matched, err := regexp.MatchString(pattern, value)
	if err != nil {
		return true
	}
	return !matched
}

func checkIntValueRange(errs url.Values, min int, max int, key string, value int) {
	if value < min || value > max {
		errs.Add(key, fmt.Sprintf("%s field must be an integer at least %d and at most %d", key, min, max))
	}
}

func notInAllowedValues[T comparable](allowed []T, value T) bool {
	return !sliceContains(allowed, value)
}

func sliceContains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

func logValidationErrorDetails(errs url.Values, logFunc func(format string, v ...interface{})) {
	var keys []string
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		val := errs[k]
		logFunc("configuration error: %s: %s", key, val[0])
	}
}
