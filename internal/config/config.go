// Configuration is read from an optional yaml file, then overridden by environment variables
// (also taken from an optional .env file), then by explicit command line flags.
// Validate applies the rules that hold for this client.

package config

type (
	Application struct {
		Paycomet PaycometConfig `yaml:"paycomet"`
		Logging  LoggingConfig  `yaml:"logging"`
	}

	PaycometConfig struct {
		BaseUrl        string `yaml:"base_url" env:"PAYCOMET_URL" env-description:"PAYCOMET REST api base url"`
		ApiToken       string `yaml:"api_token" env:"PAYCOMET_API_TOKEN" env-description:"PAYCOMET api token of the terminal"`
		Terminal       string `yaml:"terminal" env:"PAYCOMET_TERMINAL" env-description:"PAYCOMET terminal number"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"PAYCOMET_TIMEOUT_SECONDS" env-description:"request timeout in seconds"`
		// error codes at or above this threshold turn a payment info lookup into "unfinished"
		UnfinishedErrorThreshold int `yaml:"unfinished_error_threshold" env:"PAYCOMET_UNFINISHED_ERROR_THRESHOLD" env-description:"payment info error codes from here on mean unfinished"`
		// additional error codes below the threshold that are treated the same way
		UnfinishedErrorCodes []int `yaml:"unfinished_error_codes"`
	}

	LoggingConfig struct {
		Severity string       `yaml:"severity" env:"LOG_SEVERITY" env-description:"DEBUG, INFO, WARN or ERROR"`
		Style    LoggingStyle `yaml:"style" env:"LOG_STYLE" env-description:"plain or json"`
	}
)

type LoggingStyle string

const (
	Plain LoggingStyle = "plain"
	Json  LoggingStyle = "json"
)

const (
	DefaultBaseUrl                  = "https://rest.paycomet.com"
	DefaultTimeoutSeconds           = 30
	DefaultUnfinishedErrorThreshold = 300
	DefaultSeverity                 = "INFO"
)

// DefaultUnfinishedErrorCodes holds the legacy error code that some PAYCOMET terminals
// return for operations the payer never finished.
var DefaultUnfinishedErrorCodes = []int{130}

// Overrides come from the command line and win over everything else when not empty.
type Overrides struct {
	ApiToken string
	Terminal string
}

func (a *Application) applyDefaults() {
	if a.Paycomet.BaseUrl == "" {
		a.Paycomet.BaseUrl = DefaultBaseUrl
	}
	if a.Paycomet.TimeoutSeconds == 0 {
		a.Paycomet.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if a.Paycomet.UnfinishedErrorThreshold == 0 {
		a.Paycomet.UnfinishedErrorThreshold = DefaultUnfinishedErrorThreshold
	}
	if a.Paycomet.UnfinishedErrorCodes == nil {
		a.Paycomet.UnfinishedErrorCodes = append([]int{}, DefaultUnfinishedErrorCodes...)
	}
	if a.Logging.Severity == "" {
		a.Logging.Severity = DefaultSeverity
	}
	if a.Logging.Style == "" {
		a.Logging.Style = Plain
	}
}

func (a *Application) applyOverrides(o Overrides) {
	if o.ApiToken != "" {
		a.Paycomet.ApiToken = o.ApiToken
	}
	if o.Terminal != "" {
		a.Paycomet.Terminal = o.Terminal
	}
}
