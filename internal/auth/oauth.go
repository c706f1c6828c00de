package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	sharedauth "resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/users"
)

// UserStore persists the identity of a signed-in user.
type UserStore interface {
	EnsureUser(ctx context.Context, user users.User) (users.User, error)
}

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(claims sharedauth.Claims) (string, error)
}

// Service handles OAuth sign-in for every configured provider.
type Service struct {
	providers  map[string]*Provider
	users      UserStore
	signer     TokenSigner
	uiRedirect string
	stateTTL   time.Duration
	stateStore *stateStore
}

// NewService builds a Service. Providers without credentials are kept so that
// their routes report auth_not_configured.
func NewService(store UserStore, signer TokenSigner, uiRedirect string, providers ...*Provider) *Service {
	byName := make(map[string]*Provider, len(providers))
	for _, p := range providers {
		if p != nil {
			byName[p.Name] = p
		}
	}
	return &Service{
		providers:  byName,
		users:      store,
		signer:     signer,
		uiRedirect: uiRedirect,
		stateTTL:   5 * time.Minute,
		stateStore: newStateStore(),
	}
}

// RegisterRoutes attaches the provider auth routes.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/:provider/start", s.start)
	rg.GET("/auth/:provider/callback", s.callback)
}

func (s *Service) provider(c *gin.Context) (*Provider, bool) {
	name := c.Param("provider")
	p, ok := s.providers[name]
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown auth provider", nil)
		return nil, false
	}
	if !p.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", name+" auth not configured", nil)
		return nil, false
	}
	return p, true
}

func (s *Service) start(c *gin.Context) {
	p, ok := s.provider(c)
	if !ok {
		return
	}

	state := uuid.NewString()
	s.stateStore.put(state, time.Now().Add(s.stateTTL))

	c.Redirect(http.StatusFound, p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (s *Service) callback(c *gin.Context) {
	p, ok := s.provider(c)
	if !ok {
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.stateStore.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		telemetry.Warn("auth.exchange_failed", map[string]any{"provider": p.Name, "error": err})
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	profile, err := p.fetch(ctx, p.Config.Client(ctx, token))
	if err != nil {
		telemetry.Warn("auth.profile_failed", map[string]any{"provider": p.Name, "error": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if profile.Subject == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	user, err := s.users.EnsureUser(ctx, users.User{
		ID:       p.Name + ":" + profile.Subject,
		Email:    profile.Email,
		Name:     profile.Name,
		Picture:  profile.Picture,
		Provider: p.Name,
	})
	if err != nil {
		telemetry.Error("auth.user_upsert_failed", map[string]any{"provider": p.Name, "error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
		return
	}

	jwt, err := s.signer.Sign(sharedauth.Claims{
		Sub:     user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}

	c.Redirect(http.StatusFound, redirectURL)
}

type stateStore struct {
	items map[string]time.Time
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

func (s *stateStore) put(state string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.items {
		if now.After(v) {
			delete(s.items, k)
		}
	}
	s.items[state] = exp
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return !time.Now().After(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
