package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"memerender/internal/events"
	"memerender/internal/generation"
	"memerender/internal/logging"
	"memerender/internal/models"
	"memerender/internal/repositories"
)

const currentUserKey = "auth.user_id"

var ErrNotSignedIn = errors.New("not signed in")

// AuthService is the session collaborator: it knows who is signed in and
// whether that is still being determined.
type AuthService interface {
	Startup(ctx context.Context)
	State() generation.AuthState
	SignIn(name, apiKey string) (*models.User, error)
	SignOut() error
	ServiceURL() string
	OnSignOut(fn func())
}

type authService struct {
	users      UserService
	prefs      repositories.PreferenceRepository
	keys       *KeyringService
	serviceURL string
	context    context.Context
	log        *log.Logger

	mu        sync.RWMutex
	user      *models.User
	loading   bool
	signedOut []func()
}

func NewAuthService(users UserService, prefs repositories.PreferenceRepository, keys *KeyringService, serviceURL string) AuthService {
	return &authService{
		users:      users,
		prefs:      prefs,
		keys:       keys,
		serviceURL: serviceURL,
		loading:    true,
		log:        logging.Named("auth"),
	}
}

// Startup restores the previous session: the remembered user is only
// signed in again when the router key is still in the keyring.
func (s *authService) Startup(ctx context.Context) {
	s.context = ctx
	user := s.restore(ctx)

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
	s.publish()
}

func (s *authService) restore(ctx context.Context) *models.User {
	raw, err := s.prefs.Get(ctx, currentUserKey)
	if err != nil {
		s.log.Warn("read remembered user", "err", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		s.log.Debug("ignoring malformed remembered user", "value", raw)
		return nil
	}
	if s.keys == nil || !s.keys.HasApiKey(KeyNameEcho) {
		s.log.Info("remembered user has no API key, staying signed out")
		return nil
	}
	user, err := s.users.Get(ctx, uint(id))
	if err != nil {
		s.log.Debug("remembered user not found", "id", id, "err", err)
		return nil
	}
	s.log.Info("session restored", "user", user.Name)
	return user
}

func (s *authService) State() generation.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return generation.AuthState{User: s.user, IsLoading: s.loading}
}

func (s *authService) SignIn(name, apiKey string) (*models.User, error) {
	ctx := s.ctx()
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	if s.keys == nil {
		return nil, errors.New("keyring unavailable")
	}
	user, err := s.users.FindOrRegister(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.keys.StoreApiKey(KeyNameEcho, []byte(apiKey)); err != nil {
		return nil, fmt.Errorf("store API key: %w", err)
	}
	if err := s.prefs.Set(ctx, currentUserKey, strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		s.log.Warn("remember user", "err", err)
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
	s.log.Info("signed in", "user", user.Name)
	s.publish()
	return user, nil
}

func (s *authService) SignOut() error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotSignedIn
	}
	s.user = nil
	hooks := append([]func(){}, s.signedOut...)
	s.mu.Unlock()

	ctx := s.ctx()
	var errs []error
	if s.keys != nil {
		if err := s.keys.DeleteApiKey(KeyNameEcho); err != nil {
			errs = append(errs, fmt.Errorf("delete API key: %w", err))
		}
	}
	if err := s.prefs.Set(ctx, currentUserKey, ""); err != nil {
		errs = append(errs, fmt.Errorf("forget user: %w", err))
	}
	for _, fn := range hooks {
		fn()
	}
	s.publish()
	return errors.Join(errs...)
}

func (s *authService) ServiceURL() string {
	return s.serviceURL
}

// OnSignOut registers fn to run after every sign-out.
func (s *authService) OnSignOut(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.signedOut = append(s.signedOut, fn)
	s.mu.Unlock()
}

func (s *authService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

func (s *authService) publish() {
	events.Emit(s.context, events.AuthState, s.State())
}
