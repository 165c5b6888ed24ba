package secret

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultRandomOrgURL is the random.org integer generator endpoint.
const DefaultRandomOrgURL = "https://www.random.org/integers/"

// RandomOrg fetches true random digits from random.org, one integer per line.
type RandomOrg struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// NewRandomOrg returns a client for baseURL (DefaultRandomOrgURL when empty).
func NewRandomOrg(baseURL string, timeout time.Duration) *RandomOrg {
	if baseURL == "" {
		baseURL = DefaultRandomOrgURL
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RandomOrg{URL: baseURL, Client: &http.Client{}, Timeout: timeout}
}

func (r *RandomOrg) Generate(length, colors int) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()
	return r.GenerateContext(ctx, length, colors)
}

// GenerateContext requests length integers in [1, colors] and joins them.
func (r *RandomOrg) GenerateContext(ctx context.Context, length, colors int) (string, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("random.org: parse url: %w", err)
	}
	q := u.Query()
	q.Set("num", strconv.Itoa(length))
	q.Set("min", "1")
	q.Set("max", strconv.Itoa(colors))
	q.Set("col", "1")
	q.Set("base", "10")
	q.Set("format", "plain")
	q.Set("rnd", "new")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("random.org: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("random.org: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("random.org: read body: %w", err)
	}
	code := strings.Join(strings.Fields(string(body)), "")
	if len(code) != length {
		return "", fmt.Errorf("random.org: got %d digits, expected %d", len(code), length)
	}
	return code, nil
}
