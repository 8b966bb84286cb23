package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент OpenWeatherMap
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента погоды
func NewClient(baseURL, apiKey, units string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		units:   units,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCurrent текущая погода для пляжа по его названию
func (c *Client) GetCurrent(ctx context.Context, location string) (*Current, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("q", location+",MT")
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Weather: request failed location=%s: %v", location, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		message := string(body)
		var upstream ErrorResponse
		if json.Unmarshal(body, &upstream) == nil && upstream.Message != "" {
			message = upstream.Message
		}

		c.log.Error("Weather: upstream status=%d location=%s: %s", resp.StatusCode, location, message)
		return nil, fmt.Errorf("%w: %s", ErrUpstream, message)
	}

	var current Current
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Weather: fetched location=%s temp=%.1f", location, current.Main.Temp)
	return &current, nil
}
