package services

import (
	"context"

	"memerender/internal/events"
	"memerender/internal/generation"
	"memerender/internal/imagegen"
)

// GenerationService binds the view's generation session.
type GenerationService interface {
	Startup(ctx context.Context)
	Submit(prompt string) generation.State
	Reset() generation.State
	SetPrompt(prompt string) generation.State
	AppendSuggestion(example string) generation.State
	State() generation.State
}

type generationService struct {
	session *generation.Session
	context context.Context
}

// NewGenerationService wires a session to auth, the model resolver and the
// generator. recorder may be nil.
func NewGenerationService(auth AuthService, resolver generation.ModelResolver, generator imagegen.Generator, recorder *HistoryRecorder) GenerationService {
	s := &generationService{}
	opts := []generation.Option{
		generation.WithObserver(func(st generation.State) {
			events.Emit(s.context, events.GenerationState, st)
		}),
	}
	if recorder != nil {
		opts = append(opts, generation.WithRecorder(recorder.Record))
	}
	s.session = generation.NewSession(auth, resolver, generator, opts...)
	return s
}

func (s *generationService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *generationService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

func (s *generationService) Submit(prompt string) generation.State {
	return s.session.Submit(s.ctx(), prompt)
}

func (s *generationService) Reset() generation.State {
	return s.session.Reset()
}

func (s *generationService) SetPrompt(prompt string) generation.State {
	return s.session.SetPrompt(prompt)
}

func (s *generationService) AppendSuggestion(example string) generation.State {
	return s.session.AppendSuggestion(example)
}

func (s *generationService) State() generation.State {
	return s.session.State()
}

// SessionOf returns the session behind svc for non-bound collaborators.
func SessionOf(svc GenerationService) *generation.Session {
	if g, ok := svc.(*generationService); ok {
		return g.session
	}
	return nil
}
