package reddit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAuthURL   = "https://www.reddit.com"
	DefaultAPIURL    = "https://oauth.reddit.com"
	DefaultUserAgent = "stockpulse/1.0"
)

type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func NewHTTPError(statusCode int, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Err:        err,
	}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Status
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	AuthURL      string
	APIURL       string
	Timeout      time.Duration
}

// Client is a read-only Reddit API client using the app-only OAuth2 grant.
type Client struct {
	Config *Config
	Client *http.Client
	Logger *zap.Logger

	token string
}

func NewClient(config *Config, logger *zap.Logger) *Client {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.AuthURL == "" {
		config.AuthURL = DefaultAuthURL
	}
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		Config: config,
		Client: &http.Client{Timeout: config.Timeout},
		Logger: logger,
	}
}

// Authenticate exchanges the client credentials for an access token. A failure
// here is a fatal setup error for the whole crawl.
func (c *Client) Authenticate() error {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequest("POST", c.Config.AuthURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.Config.ClientID, c.Config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.Config.UserAgent)

	res, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return NewHTTPError(res.StatusCode, fmt.Errorf("token endpoint returned %s", res.Status))
	}

	var token tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if token.Error != "" {
		return fmt.Errorf("token endpoint rejected credentials: %s", token.Error)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("token endpoint returned an empty access token")
	}

	c.token = token.AccessToken
	c.Logger.Info("authenticated with reddit", zap.Int("expires_in", token.ExpiresIn))
	return nil
}

// HotPosts returns up to limit posts from the subreddit's hot listing.
func (c *Client) HotPosts(subreddit string, limit int) ([]Post, error) {
	endpoint := c.Config.APIURL + "/r/" + url.PathEscape(subreddit) + "/hot?raw_json=1&limit=" + strconv.Itoa(limit)

	var page listing
	if err := c.getJSON(endpoint, &page); err != nil {
		return nil, fmt.Errorf("list r/%s: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(page.Data.Children))
	for _, ch := range page.Data.Children {
		body := ch.Data.Selftext
		if ch.Data.SelftextHTML != "" {
			body = flattenHTML(ch.Data.SelftextHTML)
		}
		posts = append(posts, Post{
			ID:    ch.Data.ID,
			Title: ch.Data.Title,
			Body:  body,
		})
	}
	return posts, nil
}

// TopComments returns the plain-text bodies of up to limit top-level comments
// on the given post. "more" stubs are skipped, not expanded.
func (c *Client) TopComments(postID string, limit int) ([]string, error) {
	endpoint := c.Config.APIURL + "/comments/" + url.PathEscape(postID) +
		"?raw_json=1&depth=1&sort=top&limit=" + strconv.Itoa(limit)

	// The comments endpoint returns two listings: the post, then its comments.
	var pages []listing
	if err := c.getJSON(endpoint, &pages); err != nil {
		return nil, fmt.Errorf("comments for %s: %w", postID, err)
	}
	if len(pages) < 2 {
		return nil, nil
	}

	var comments []string
	for _, ch := range pages[1].Data.Children {
		if ch.Kind == "more" {
			continue
		}
		body := ch.Data.Body
		if ch.Data.BodyHTML != "" {
			body = flattenHTML(ch.Data.BodyHTML)
		}
		if body == "" {
			continue
		}
		comments = append(comments, body)
		if len(comments) == limit {
			break
		}
	}
	return comments, nil
}

func (c *Client) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.Config.UserAgent)

	res, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return NewHTTPError(res.StatusCode, fmt.Errorf("GET %s returned %s", endpoint, res.Status))
	}

	return json.NewDecoder(res.Body).Decode(out)
}
