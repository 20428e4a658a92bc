// Package client is the typed API consumer used by the dashboard and
// integration tooling. Reads go through an explicit request cache;
// mutations invalidate the slices of the cache they make stale.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
)

type Client struct {
	baseURL string
	http    *http.Client
	cache   *RequestCache
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
		cache: NewRequestCache(),
	}
}

// Cache exposes the request cache, mainly so callers can observe or
// clear it.
func (c *Client) Cache() *RequestCache {
	return c.cache
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	return raw, nil
}

// get routes reads through the cache, keyed by the full request path.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	raw, err := c.cache.Do("GET "+path, func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var session dto.SessionResponse
	err := c.post(ctx, "/api/auth/login", dto.LoginInput{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}

	// A fresh identity invalidates everything cached for the old one.
	c.cache.Clear()
	return session.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		return err
	}

	c.cache.Clear()
	// The very next identity check answers "no user" from the cache
	// instead of asking the server.
	c.cache.Set("GET /api/auth/user", []byte(`{"user":null}`))
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var session dto.SessionResponse
	if err := c.get(ctx, "/api/auth/user", &session); err != nil {
		return nil, err
	}
	return session.User, nil
}

func (c *Client) ListProperties(ctx context.Context, query url.Values) (*dto.PaginatedPropertyResponse, error) {
	path := "/api/properties"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page dto.PaginatedPropertyResponse
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProperty(ctx context.Context, idOrSlug string) (*model.Property, error) {
	var property model.Property
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(idOrSlug), &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) Search(ctx context.Context, query url.Values) (*dto.SearchResponse, error) {
	var result dto.SearchResponse
	if err := c.get(ctx, "/api/properties/search?"+query.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ToggleFavorite(ctx context.Context, propertyID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	var status dto.FavoriteStatusResponse
	err := c.post(ctx, "/api/favorites", dto.ToggleFavoriteRequest{PropertyID: propertyID}, &status)
	if err != nil {
		return nil, err
	}

	c.cache.Invalidate("GET /api/favorites")
	return &status, nil
}

func (c *Client) Favorites(ctx context.Context) ([]model.Favorite, error) {
	var wrapper struct {
		Data []model.Favorite `json:"data"`
	}
	if err := c.get(ctx, "/api/favorites", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Data, nil
}

func (c *Client) Convert(ctx context.Context, amount, from, to string) (*dto.ConvertResponse, error) {
	query := url.Values{}
	query.Set("amount", amount)
	query.Set("from", from)
	query.Set("to", to)

	var result dto.ConvertResponse
	if err := c.get(ctx, "/api/currency/convert?"+query.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProperty(ctx context.Context, input dto.CreatePropertyInput) (*model.Property, error) {
	var property model.Property
	if err := c.post(ctx, "/api/properties", input, &property); err != nil {
		return nil, err
	}

	c.cache.Invalidate("GET /api/properties")
	return &property, nil
}

func (c *Client) CreateInquiry(ctx context.Context, input dto.CreateInquiryInput) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := c.post(ctx, "/api/inquiries", input, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}
