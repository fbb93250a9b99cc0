package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	VKOAuthURL = "https://oauth.vk.com"
	VKAPIURL   = "https://api.vk.com/method"

	apiVersion = "5.131"
)

// Client talks to the VK OAuth endpoint and user API. It is the single
// identity-provider adapter: code exchange and profile fetch live here
// and nowhere else.
type Client struct {
	httpClient   *http.Client
	oauthURL     string
	apiURL       string
	clientID     string
	clientSecret string
	redirectURL  string
}

// AccessToken is the result of an authorization code exchange
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email,omitempty"`
}

// Profile is the display information fetched for an authenticated user
type Profile struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ScreenName string `json:"screen_name"`
	PhotoURL   string `json:"photo_100"`
}

// DisplayName returns the profile's human-readable name
func (p *Profile) DisplayName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type usersGetResponse struct {
	Response []Profile `json:"response"`
	Error    *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

// NewClient creates a VK identity client
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		oauthURL:     VKOAuthURL,
		apiURL:       VKAPIURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
	}
}

// SetBaseURLs overrides the endpoint URLs (used by tests)
func (c *Client) SetBaseURLs(oauthURL, apiURL string) {
	c.oauthURL = oauthURL
	c.apiURL = apiURL
}

// AuthorizeURL builds the URL the frontend redirects users to
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("response_type", "code")
	params.Set("state", state)
	return fmt.Sprintf("%s/authorize?%s", c.oauthURL, params.Encode())
}

// ExchangeCode exchanges an authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*AccessToken, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("code", code)

	reqURL := fmt.Sprintf("%s/access_token?%s", c.oauthURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("VK OAuth error: %d - %s", resp.StatusCode, string(body))
	}

	var token AccessToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("VK OAuth returned an empty access token")
	}

	return &token, nil
}

// FetchProfile fetches the display profile for a user
func (c *Client) FetchProfile(ctx context.Context, accessToken string, userID int64) (*Profile, error) {
	params := url.Values{}
	params.Set("user_ids", fmt.Sprintf("%d", userID))
	params.Set("fields", "screen_name,photo_100")
	params.Set("access_token", accessToken)
	params.Set("v", apiVersion)

	reqURL := fmt.Sprintf("%s/users.get?%s", c.apiURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("VK API error: %d - %s", resp.StatusCode, string(body))
	}

	var result usersGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("VK API error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Response) == 0 {
		return nil, fmt.Errorf("VK API returned no profile for user %d", userID)
	}

	return &result.Response[0], nil
}
