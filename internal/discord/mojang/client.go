package mojang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

const defaultProfileAPI = "https://api.mojang.com/users/profiles/minecraft/"

// ErrNotFound means Mojang has no Java profile for the name.
var ErrNotFound = errors.New("profile not found")

type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	http   *http.Client
	apiURL string
}

func New() *Client {
	return NewWithBaseURL(defaultProfileAPI)
}

// NewWithBaseURL points the client at another profile endpoint. base must end
// with a slash.
func NewWithBaseURL(base string) *Client {
	return &Client{
		http:   &http.Client{Timeout: 5 * time.Second},
		apiURL: base,
	}
}

// Lookup resolves a Java username to its profile.
func (c *Client) Lookup(ctx context.Context, username string) (Profile, error) {
	if username == "" {
		return Profile{}, errors.New("username required")
	}
	u := c.apiURL + url.PathEscape(username)

	logging.L().Debug("mojang: lookup", "username", username)

	var out Profile
	if err := c.getJSON(ctx, u, &out); err != nil {
		return Profile{}, err
	}
	if out.ID == "" {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, username)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	r, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer r.Body.Close()

	// Mojang answers unknown names with 204 or 404 depending on the endpoint.
	if r.StatusCode == http.StatusNoContent || r.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if r.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(r.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", u, r.Status, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(r.Body).Decode(out)
}
