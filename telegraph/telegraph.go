// Package telegraph is a small client for the telegra.ph publishing API.
package telegraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the Telegraph API endpoint.
	DefaultBaseURL = "https://api.telegra.ph"
	// DefaultPageBaseURL prefixes page paths to form public URLs.
	DefaultPageBaseURL = "https://telegra.ph"
)

// ErrNoAccessToken is returned when a page call is made before a token is set.
var ErrNoAccessToken = errors.New("telegraph access token not set")

// Client creates and edits Telegraph pages. It implements search.Publisher.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	pageBaseURL string
	accessToken string
	authorName  string
	authorURL   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = strings.TrimSuffix(u, "/") }
}

// WithPageBaseURL overrides the prefix of public page URLs.
func WithPageBaseURL(u string) Option {
	return func(cl *Client) { cl.pageBaseURL = strings.TrimSuffix(u, "/") }
}

// WithAuthor sets the author shown on published pages.
func WithAuthor(name, authorURL string) Option {
	return func(cl *Client) {
		cl.authorName = name
		cl.authorURL = authorURL
	}
}

// New creates a Client. accessToken may be empty if CreateAccount is called
// before any page is published.
func New(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		baseURL:     DefaultBaseURL,
		pageBaseURL: DefaultPageBaseURL,
		accessToken: accessToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccessToken returns the token the client publishes with.
func (c *Client) AccessToken() string {
	return c.accessToken
}

type account struct {
	AccessToken string `json:"access_token"`
}

type page struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type response struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

// CreateAccount registers a new Telegraph account and publishes with its token.
func (c *Client) CreateAccount(ctx context.Context, shortName string) (string, error) {
	form := url.Values{}
	form.Set("short_name", shortName)
	c.setAuthor(form)

	var acc account
	if err := c.call(ctx, "createAccount", form, &acc); err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	c.accessToken = acc.AccessToken
	return acc.AccessToken, nil
}

// CreatePage publishes htmlContent and returns the new page's path.
func (c *Client) CreatePage(ctx context.Context, title, htmlContent string) (string, error) {
	form, err := c.pageForm(title, htmlContent)
	if err != nil {
		return "", err
	}

	var p page
	if err := c.call(ctx, "createPage", form, &p); err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	return p.Path, nil
}

// EditPage replaces the content of the page at path.
func (c *Client) EditPage(ctx context.Context, path, title, htmlContent string) error {
	form, err := c.pageForm(title, htmlContent)
	if err != nil {
		return err
	}

	var p page
	if err := c.call(ctx, "editPage/"+url.PathEscape(path), form, &p); err != nil {
		return fmt.Errorf("failed to edit page %s: %w", path, err)
	}
	return nil
}

// PageURL returns the public URL of a page path.
func (c *Client) PageURL(path string) string {
	return c.pageBaseURL + "/" + path
}

func (c *Client) pageForm(title, htmlContent string) (url.Values, error) {
	if c.accessToken == "" {
		return nil, ErrNoAccessToken
	}
	nodes, err := ToNodes(htmlContent)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}

	form := url.Values{}
	form.Set("access_token", c.accessToken)
	form.Set("title", title)
	form.Set("content", string(content))
	c.setAuthor(form)
	return form, nil
}

func (c *Client) setAuthor(form url.Values) {
	if c.authorName != "" {
		form.Set("author_name", c.authorName)
	}
	if c.authorURL != "" {
		form.Set("author_url", c.authorURL)
	}
}

func (c *Client) call(ctx context.Context, method string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("failed to decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if !r.OK {
		return fmt.Errorf("telegraph %s: %s", method, r.Error)
	}
	return json.Unmarshal(r.Result, out)
}
