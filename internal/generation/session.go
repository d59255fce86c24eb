// Package generation owns the single in-flight image request of a view
// session: prompt text, busy flag, last image and last error.
package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"memerender/internal/imagegen"
	"memerender/internal/logging"
	"memerender/internal/models"
	"memerender/internal/suggestions"
)

const (
	MsgNoImage = "No image was generated"
	MsgUnknown = "Unknown error"

	dataURLPrefix = "data:image/png;base64,"
)

// ErrNoImage is reported when the provider answers without an image.
var ErrNoImage = errors.New(MsgNoImage)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is the snapshot handed to the view.
type State struct {
	Prompt     string `json:"prompt"`
	Status     Status `json:"status"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Error      string `json:"error,omitempty"`
	Generation uint64 `json:"generation"`
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s.Status == StatusPending
}

// AuthState mirrors the session collaborator: a nil User means signed out.
type AuthState struct {
	User      *models.User `json:"user"`
	IsLoading bool         `json:"isLoading"`
}

type Authenticator interface {
	State() AuthState
}

// ModelResolver hands out the opaque model handle passed to the generator.
type ModelResolver interface {
	ImageModel(ctx context.Context) (imagegen.Model, error)
}

// Outcome describes a finished request that is still current.
type Outcome struct {
	Request imagegen.Request
	UserID  uint
	Status  Status
	Error   string
	Base64  string
}

// Observer receives every state change.
type Observer func(State)

// Recorder receives every current terminal outcome.
type Recorder func(ctx context.Context, o Outcome)

type Option func(*Session)

func WithObserver(fn Observer) Option {
	return func(s *Session) { s.observer = fn }
}

func WithRecorder(fn Recorder) Option {
	return func(s *Session) { s.recorder = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session coordinates at most one pending request. Results of a request
// that was superseded by Reset are dropped.
type Session struct {
	auth      Authenticator
	resolver  ModelResolver
	generator imagegen.Generator
	observer  Observer
	recorder  Recorder
	log       *log.Logger

	mu         sync.Mutex
	prompt     string
	status     Status
	image      string
	errMsg     string
	generation uint64
}

func NewSession(auth Authenticator, resolver ModelResolver, generator imagegen.Generator, opts ...Option) *Session {
	s := &Session{
		auth:      auth,
		resolver:  resolver,
		generator: generator,
		status:    StatusIdle,
		log:       logging.Named("generation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Message extracts the human-readable text of a generator failure.
func Message(err error) string {
	if err == nil {
		return MsgUnknown
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgUnknown
}

// DataURL renders a base64 PNG payload as a displayable URL.
func DataURL(payload string) string {
	return dataURLPrefix + payload
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := State{
		Prompt:     s.prompt,
		Status:     s.status,
		Error:      s.errMsg,
		Generation: s.generation,
	}
	if s.image != "" {
		st.ImageURL = DataURL(s.image)
	}
	return st
}

// ImageBytes decodes the last successful image, if any.
func (s *Session) ImageBytes() ([]byte, bool) {
	s.mu.Lock()
	payload := s.image
	s.mu.Unlock()
	if payload == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		s.log.Debug("stored image is not valid base64", "err", err)
		return nil, false
	}
	return data, true
}

// SetPrompt replaces the prompt text. Ignored while a request is pending.
func (s *Session) SetPrompt(prompt string) State {
	s.mu.Lock()
	if s.status == StatusPending {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st
	}
	s.prompt = prompt
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
	return st
}

// AppendSuggestion adds an example prompt on a new line.
func (s *Session) AppendSuggestion(example string) State {
	s.mu.Lock()
	if s.status == StatusPending || strings.TrimSpace(example) == "" {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st
	}
	s.prompt = suggestions.AppendToPrompt(s.prompt, example)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
	return st
}

// Reset clears prompt, image and error and abandons any pending request.
func (s *Session) Reset() State {
	s.mu.Lock()
	s.generation++
	s.prompt = ""
	s.image = ""
	s.errMsg = ""
	s.status = StatusIdle
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
	return st
}

// Submit runs one generation for prompt and blocks until it finishes. It
// is a no-op for a blank prompt, while another request is pending, or
// when nobody is signed in.
func (s *Session) Submit(ctx context.Context, prompt string) State {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return s.State()
	}
	var auth AuthState
	if s.auth != nil {
		auth = s.auth.State()
	}
	if auth.User == nil {
		s.log.Debug("submit ignored: not signed in")
		return s.State()
	}

	s.mu.Lock()
	if s.status == StatusPending {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st
	}
	s.generation++
	token := s.generation
	s.prompt = prompt
	s.image = ""
	s.errMsg = ""
	s.status = StatusPending
	pending := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(pending)

	req := imagegen.Request{
		Prompt:  trimmed,
		Size:    imagegen.DefaultSize,
		Quality: imagegen.DefaultQuality,
	}
	payload, err := s.run(ctx, &req)

	outcome := Outcome{Request: req, UserID: auth.User.ID}
	s.mu.Lock()
	if token != s.generation {
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.log.Debug("dropping result of superseded request", "generation", token)
		return st
	}
	if err != nil {
		s.status = StatusFailed
		s.errMsg = Message(err)
		outcome.Status, outcome.Error = StatusFailed, s.errMsg
	} else {
		s.status = StatusSucceeded
		s.image = payload
		outcome.Status, outcome.Base64 = StatusSucceeded, payload
	}
	done := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("image generation failed", "err", outcome.Error)
	} else {
		s.log.Info("image generated", "bytes", len(payload))
	}
	s.notify(done)
	if s.recorder != nil {
		s.recorder(ctx, outcome)
	}
	return done
}

func (s *Session) run(ctx context.Context, req *imagegen.Request) (string, error) {
	if s.resolver == nil || s.generator == nil {
		return "", errors.New("image generation is not configured")
	}
	model, err := s.resolver.ImageModel(ctx)
	if err != nil {
		return "", err
	}
	req.Model = model

	res, err := s.generator.Generate(ctx, *req)
	if err != nil {
		return "", err
	}
	if res == nil || res.Image == nil || res.Image.Base64 == "" {
		return "", ErrNoImage
	}
	return res.Image.Base64, nil
}

func (s *Session) notify(st State) {
	if s.observer != nil {
		s.observer(st)
	}
}
