package scaleway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultAPIURL is the public Scaleway API endpoint.
	DefaultAPIURL = "https://api.scaleway.com"

	defaultUserAgent = "scwinv"
	defaultTimeout   = 30 * time.Second

	// perPage is the page size used for all paginated listings. The API
	// caps page sizes at 100.
	perPage = 50
)

// ClientConfig holds configuration for the Scaleway API client
type ClientConfig struct {
	AccessKey     string
	SecretKey     string
	APIURL        string
	AllowInsecure bool
	UserAgent     string
	Timeout       time.Duration
}

// Client is an authenticated Scaleway API client. Pagination of list
// endpoints is handled transparently.
type Client struct {
	baseURL    string
	secretKey  string
	userAgent  string
	httpClient *http.Client
}

// APIError is a non-2xx response from the Scaleway API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// NewClient creates a new Scaleway API client
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("scaleway: secret key is required")
	}

	baseURL := strings.TrimRight(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
		log.Debug().Str("api_url", baseURL).Msg("No protocol specified in API URL, defaulting to HTTPS")
	}
	if strings.HasPrefix(baseURL, "http://") && !cfg.AllowInsecure {
		return nil, fmt.Errorf("scaleway: refusing plain HTTP API URL without api_allow_insecure")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.AllowInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		log.Warn().Str("api_url", baseURL).Msg("TLS verification disabled for Scaleway API connection")
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.secretKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// listQuery builds the shared query parameters for paginated listings.
func listQuery(page int, tags []string) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if len(tags) > 0 {
		query.Set("tags", strings.Join(tags, ","))
	}
	return query
}
