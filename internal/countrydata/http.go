package countrydata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theopenlane/httpsling"
)

// defaultRequestTimeout is the default timeout for country data API requests
const defaultRequestTimeout = 5 * time.Second

// HTTPProvider fetches country data from the content API
type HTTPProvider struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// HTTPOption configures the HTTPProvider
type HTTPOption func(*HTTPProvider)

// WithHTTPClient sets a custom HTTP client for the provider
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithAPIToken sets the bearer token sent with each request
func WithAPIToken(token string) HTTPOption {
	return func(p *HTTPProvider) {
		p.apiToken = token
	}
}

// NewHTTPProvider creates a provider for the content API at baseURL
func NewHTTPProvider(baseURL string, opts ...HTTPOption) (*HTTPProvider, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	p := &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Country fetches {baseURL}/countries/{code}.json
func (p *HTTPProvider) Country(ctx context.Context, code string) (Country, error) {
	code = NormalizeCode(code)
	if code == "" {
		return Country{}, fmt.Errorf("%w: empty code", ErrCountryNotFound)
	}

	options := []httpsling.Option{
		httpsling.URL(fmt.Sprintf("%s/countries/%s.json", p.baseURL, url.PathEscape(code))),
		httpsling.Get(),
		httpsling.WithHTTPClient(p.httpClient),
	}

	if p.apiToken != "" {
		options = append(options, httpsling.BearerAuth(p.apiToken))
	}

	requester := httpsling.MustNew(options...)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return Country{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
	default:
		return Country{}, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var c Country
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return Country{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	if c.Code == "" {
		c.Code = code
	}

	if err := c.validate(); err != nil {
		return Country{}, err
	}

	return c, nil
}
