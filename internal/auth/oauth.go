package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"drawtrack/internal/core"
	"drawtrack/internal/store"
)

// DemoEmail is the account used by the development login bypass.
const DemoEmail = "demo@example.com"

const stateTTL = 10 * time.Minute

// googleProfile is the subset of the userinfo response we consume.
type googleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Options configures the auth service. Empty ClientID/ClientSecret disable
// the OAuth flow and enable the development bypass instead.
type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
}

// Service resolves logins into identities and sessions.
type Service struct {
	store       store.EntityStore
	sessions    *SessionStore
	oauth       *oauth2.Config
	stateSecret []byte
	logger      *slog.Logger
}

func NewService(entityStore store.EntityStore, sessions *SessionStore, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:       entityStore,
		sessions:    sessions,
		stateSecret: []byte(opts.StateSecret),
		logger:      logger,
	}
	if opts.ClientID != "" && opts.ClientSecret != "" {
		s.oauth = &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return s
}

// OAuthConfigured reports whether the Google login flow is available. When
// false, the dev-login bypass is the only way in.
func (s *Service) OAuthConfigured() bool {
	return s.oauth != nil
}

// Sessions exposes the underlying session store to the HTTP layer.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// AuthURL builds the Google consent redirect with a signed state token.
func (s *Service) AuthURL() (string, error) {
	if s.oauth == nil {
		return "", errors.New("google oauth is not configured")
	}
	state, err := s.signState()
	if err != nil {
		return "", fmt.Errorf("sign oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// HandleCallback verifies the state, exchanges the code for a token, fetches
// the Google profile and resolves it to a local user, creating one on first
// login. Every OAuth identity is an admin.
func (s *Service) HandleCallback(ctx context.Context, state, code string) (core.Identity, error) {
	if s.oauth == nil {
		return core.Identity{}, errors.New("google oauth is not configured")
	}
	if err := s.verifyState(state); err != nil {
		return core.Identity{}, fmt.Errorf("verify oauth state: %w", err)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return core.Identity{}, fmt.Errorf("exchange oauth code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return core.Identity{}, fmt.Errorf("fetch google profile: %w", err)
	}
	if profile.Email == "" {
		return core.Identity{}, errors.New("google profile has no email")
	}

	user, err := s.ensureUser(ctx, profile)
	if err != nil {
		return core.Identity{}, err
	}

	s.logger.Info("OAuth login", "email", user.Email, "user_id", user.ID)
	return identityFor(user, profile.Name), nil
}

// DevLogin resolves the demo account, creating it if the seed did not run.
// Only available when OAuth is not configured.
func (s *Service) DevLogin(ctx context.Context) (core.Identity, error) {
	if s.oauth != nil {
		return core.Identity{}, errors.New("dev login is disabled when google oauth is configured")
	}
	user, err := s.ensureUser(ctx, googleProfile{Email: DemoEmail, Name: "Demo User"})
	if err != nil {
		return core.Identity{}, err
	}
	return identityFor(user, "Demo User"), nil
}

// SeedDemoUser creates the demo account at startup so dev-login never has to
// race a first request. Safe to call when the user already exists.
func (s *Service) SeedDemoUser(ctx context.Context) error {
	if s.oauth != nil {
		return nil
	}
	_, err := s.ensureUser(ctx, googleProfile{Email: DemoEmail, Name: "Demo User"})
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	s.logger.Info("Seeded demo user", "email", DemoEmail)
	return nil
}

func (s *Service) ensureUser(ctx context.Context, profile googleProfile) (core.User, error) {
	user, err := s.store.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.User{}, fmt.Errorf("look up user %q: %w", profile.Email, err)
	}

	// Login is OAuth-only; the stored password is a random placeholder.
	passwordHash, err := randomPasswordHash()
	if err != nil {
		return core.User{}, fmt.Errorf("generate placeholder password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, core.NewUser{
		Username:     profile.Email,
		Email:        profile.Email,
		PasswordHash: passwordHash,
		AvatarURL:    profile.Picture,
		IsAdmin:      true,
	})
	if err != nil {
		return core.User{}, fmt.Errorf("create user %q: %w", profile.Email, err)
	}

	s.logger.Info("Created user on first login", "email", created.Email, "user_id", created.ID)
	return created, nil
}

func (s *Service) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	client := s.oauth.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return googleProfile{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return profile, nil
}

func (s *Service) signState() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "oauth-state",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.stateSecret)
}

func (s *Service) verifyState(state string) error {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.stateSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid state token")
	}
	return nil
}

func identityFor(user core.User, displayName string) core.Identity {
	name := displayName
	if name == "" {
		name = user.Username
	}
	return core.Identity{
		ID:        user.ID,
		Email:     user.Email,
		Name:      name,
		AvatarURL: user.AvatarURL,
		IsAdmin:   user.IsAdmin,
	}
}

func randomPasswordHash() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
