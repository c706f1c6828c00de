package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubAPIBaseURL  = "https://api.github.com"
)

// Profile is the identity returned by a provider after login.
type Profile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Provider is one OAuth identity source.
type Provider struct {
	Name   string
	Config *oauth2.Config
	// fetch loads the profile using an authorized client.
	fetch func(ctx context.Context, client *http.Client) (Profile, error)
}

func (p *Provider) configured() bool {
	return p != nil && p.Config != nil &&
		p.Config.ClientID != "" && p.Config.ClientSecret != "" && p.Config.RedirectURL != ""
}

// GoogleProvider builds the Google OpenID profile provider.
func GoogleProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: ProviderGoogle,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		fetch: func(ctx context.Context, client *http.Client) (Profile, error) {
			return fetchGoogleProfile(ctx, client, googleUserInfoURL)
		},
	}
}

// GitHubProvider builds the GitHub profile provider.
func GitHubProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: ProviderGitHub,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		fetch: func(ctx context.Context, client *http.Client) (Profile, error) {
			return fetchGitHubProfile(ctx, client, githubAPIBaseURL)
		},
	}
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func fetchGoogleProfile(ctx context.Context, client *http.Client, endpoint string) (Profile, error) {
	var info googleUserInfo
	if err := getJSON(ctx, client, endpoint, &info); err != nil {
		return Profile{}, err
	}
	// Some responses use "id" instead of "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return Profile{Subject: info.Sub, Email: info.Email, Name: info.Name, Picture: info.Picture}, nil
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func fetchGitHubProfile(ctx context.Context, client *http.Client, baseURL string) (Profile, error) {
	base := strings.TrimRight(baseURL, "/")

	var user githubUser
	if err := getJSON(ctx, client, base+"/user", &user); err != nil {
		return Profile{}, err
	}
	if user.ID == 0 {
		return Profile{}, errors.New("github user id missing")
	}

	email := user.Email
	if email == "" {
		// Private emails are only listed by the emails endpoint.
		var emails []githubEmail
		if err := getJSON(ctx, client, base+"/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					email = e.Email
					break
				}
			}
		}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	return Profile{
		Subject: strconv.FormatInt(user.ID, 10),
		Email:   email,
		Name:    name,
		Picture: user.AvatarURL,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
