package omnifs

import (
	"fmt"
	"log"
	"net/url"
)

// Configuration defaults applied by Validate when the fields are left zero.
const (
	DefaultTimeout       = 30
	DefaultRetryAttempts = 3
)

// KnownSchemes lists the URL schemes this gateway is routinely configured
// with. The set is advisory: an unknown scheme logs a warning and proceeds,
// leaving scheme support entirely to the driver factory.
var KnownSchemes = map[string]bool{
	"fs":     true,
	"s3":     true,
	"webdav": true,
	"memory": true,
	"http":   true,
	"https":  true,
	"ftp":    true,
}

// allowedNameChars marks the ASCII characters permitted in a backend name.
var allowedNameChars = func() [128]bool {
	var allowed [128]bool
	for c := 'a'; c <= 'z'; c++ {
		allowed[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		allowed[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		allowed[c] = true
	}
	allowed['_'] = true
	allowed['-'] = true
	return allowed
}()

// ParseURL splits a backend URL into its scheme and a flat option map built
// from the query string. Repeated query keys keep the first value; the
// scheme is returned with its original casing.
func ParseURL(rawURL string) (string, map[string]string, error) {
	if rawURL == "" {
		return "", nil, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if parsed.Scheme == "" {
		return "", nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, rawURL)
	}
	// url.Parse lowercases the scheme; recover the original spelling.
	scheme := rawURL[:len(parsed.Scheme)]
	options := map[string]string{}
	for key, values := range parsed.Query() {
		if len(values) > 0 {
			options[key] = values[0]
		}
	}
	return scheme, options, nil
}

// Config describes a single named backend. Validate has to succeed before a
// Config enters a registry; Timeout and RetryAttempts are descriptive fields
// forwarded to the driver layer, never enforced by the registry itself.
type Config struct {
	Name          string `json:"name" yaml:"name"`
	URL           string `json:"url" yaml:"url"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly      bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Timeout       int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RetryAttempts int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty"`

	scheme  string
	options map[string]string
}

// Validate checks name and URL, applies defaults and captures the parsed
// scheme and query options. It is pure over its inputs apart from a warning
// logged for schemes outside KnownSchemes.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	for _, ch := range c.Name {
		if ch >= 128 || !allowedNameChars[ch] {
			return fmt.Errorf("%w: %q may only contain letters, digits, underscore and hyphen", ErrInvalidName, c.Name)
		}
	}
	scheme, options, err := ParseURL(c.URL)
	if err != nil {
		return err
	}
	if !KnownSchemes[scheme] {
		log.Printf("backend %q uses unrecognized scheme %q, supported schemes: fs, s3, webdav, memory, http, https, ftp", c.Name, scheme)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be positive, got %d", ErrInvalidConfig, c.Timeout)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts must be positive, got %d", ErrInvalidConfig, c.RetryAttempts)
	}
	c.scheme = scheme
	c.options = options
	return nil
}

// Scheme returns the URL scheme captured by Validate.
func (c *Config) Scheme() string {
	return c.scheme
}

// Options returns the query options captured by Validate.
func (c *Config) Options() map[string]string {
	return c.options
}
