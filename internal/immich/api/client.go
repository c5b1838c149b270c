package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
)

// Client provides a raw HTTP client for accessing the immich API. All requests
// will get rewritten to the API endpoint with authorization, so only the path
// is required for requests.
//
// Example:
//
// ```
// client := NewClientFromEnv()
// resp, err := client.Get("/albums")
// ```
type Client struct {
	*http.Client
}

// Config holds connection settings for the immich API.
//
// It is organized to take advantage of TOML parsing, however this package does
// not handle parsing and has no expectation on how it will be initialized.
type Config struct {
	// URL is the base address of the immich server.
	URL string `toml:"url"`
	// APIKey should ideally not be written to disk un-encrypted,
	// however, for ease of "deployment" I'm going to allow it.
	APIKey string `toml:"api_key"`
}

// HydrateFromEnv fills any unset values in Config from their associated
// environment variables. Explicit config file values take precedence over the
// environment.
func (c *Config) HydrateFromEnv() {
	if c.URL == "" {
		c.URL = os.Getenv("IMMICH_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("IMMICH_API_KEY")
	}
}

// immichTransport is a custom http.Transport that rewrites the http.Request
// via transformF.
type immichTransport struct {
	transformF func(*http.Request)
}

func (i immichTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	i.transformF(req)
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if err := checkStatusCode(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// NewClientFromEnv initializes a Client using the IMMICH_URL and
// IMMICH_API_KEY environment variables.
func NewClientFromEnv() Client {
	conf := Config{}
	conf.HydrateFromEnv()
	return NewClient(conf)
}

// NewClient initializes a Client with the provided server URL and API key.
// Use [Client.IsConnected] to check if the Client was properly configured.
func NewClient(conf Config) Client {
	// Canonicalize the API endpoint.
	apiEndpointURI, _ := url.Parse(conf.URL)
	if apiEndpointURI.Path != "/api" {
		apiEndpointURI.Path = "/api"
	}

	// Build a custom http.Transport to set the API credentials and host.
	transport := immichTransport{
		transformF: func(r *http.Request) {
			// Add the API header credentials.
			r.Header.Add("X-API-Key", conf.APIKey)
			r.Header.Add("Accept", "application/json")
			// Prefix the API endpoint in the new URL.
			immichAPI := *apiEndpointURI
			immichAPI.Path = path.Join(immichAPI.Path, r.URL.Path)
			immichAPI.RawQuery = r.URL.RawQuery
			r.URL = &immichAPI
		},
	}
	return Client{&http.Client{Transport: transport}}
}

// IsConnected performs a sanity check API request to /users/me to verify the
// Client is configured correctly and the immich server is responsive.
func (c Client) IsConnected() error {
	resp, err := c.Get("/users/me")
	if err != nil && err.Error() == `Get "/users/me": unsupported protocol scheme ""` {
		return errors.New("misconfigured client: missing immich url")
	} else if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Check it's a JSON response.
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return err
	}
	return nil
}

// checkStatusCode is a helper function to check for a 2xx status code and
// return a descriptive error if not. Write endpoints such as stack creation
// respond with 201 rather than 200, so the whole success range is accepted.
func checkStatusCode(statusCode int) error {
	if statusCode == http.StatusUnauthorized {
		return errors.New("invalid immich api key")
	} else if statusCode < 200 || statusCode > 299 {
		return fmt.Errorf("unexpected status code %d", statusCode)
	}
	return nil
}
