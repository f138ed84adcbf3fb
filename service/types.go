package service

// Config is the startup configuration: the set of backends to register when
// the service comes up.
type Config struct {
	Backends []Backend `json:"backends" yaml:"backends"`
}

// Backend is one configuration file element. URLSecret optionally names a
// scy secret resource whose fields expand into the URL before registration.
type Backend struct {
	Name               string `json:"name" yaml:"name"`
	URL                string `json:"url" yaml:"url"`
	URLSecret          string `json:"url_secret,omitempty" yaml:"url_secret,omitempty"`
	Description        string `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly           bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Timeout            int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RetryAttempts      int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty"`
	Default            bool   `json:"default,omitempty" yaml:"default,omitempty"`
	ValidateConnection *bool  `json:"validate_connection,omitempty" yaml:"validate_connection,omitempty"`
}

// validateConnection defaults to true when the field is absent.
func (b *Backend) validateConnection() bool {
	if b.ValidateConnection == nil {
		return true
	}
	return *b.ValidateConnection
}
