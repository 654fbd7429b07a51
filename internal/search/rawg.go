package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.rawg.io/api"

// RAWGClient queries the RAWG games database over HTTP.
type RAWGClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

// NewRAWGClient creates a provider against baseURL (the public API when
// empty) authenticated with apiKey.
func NewRAWGClient(baseURL, apiKey string, log *logrus.Logger) *RAWGClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &RAWGClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type searchResponse struct {
	Results []Result `json:"results"`
}

func (c *RAWGClient) SearchGames(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", query)
	params.Set("page_size", "20")

	var payload searchResponse
	if err := c.get(ctx, "/games", params, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return []Result{}, nil
	}
	return payload.Results, nil
}

func (c *RAWGClient) GetGameDetails(ctx context.Context, id int) (Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)

	var result Result
	err := c.get(ctx, "/games/"+strconv.Itoa(id), params, &result)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *RAWGClient) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ProviderError{Op: "request", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &ProviderError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Op: "request", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ProviderError{Op: "decode", Err: err}
	}
	return nil
}
