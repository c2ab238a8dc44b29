package cli

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// Config holds the persistent flags. CWRULES_SERVER and CWRULES_OUTPUT
// override the built-in defaults; flags override both.
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr("CWRULES_SERVER", "http://localhost:8080"),
		Output:    envOr("CWRULES_OUTPUT", outputText),
	}
}

// Validate checks the output format and normalises the server URL
func (c *Config) Validate() error {
	if c.Output != outputText && c.Output != outputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, outputText, outputJSON)
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q (want http://host:port)", c.ServerURL)
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
