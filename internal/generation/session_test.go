package generation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memerender/internal/imagegen"
	"memerender/internal/models"
)

type fakeAuth struct {
	state AuthState
}

func (f *fakeAuth) State() AuthState { return f.state }

func signedIn() *fakeAuth {
	return &fakeAuth{state: AuthState{User: &models.User{ID: 7, Name: "ada"}}}
}

type fakeModel struct{}

func (fakeModel) Provider() string { return "fake" }
func (fakeModel) Name() string     { return "fake-image" }

type fakeResolver struct {
	err error
}

func (r fakeResolver) ImageModel(context.Context) (imagegen.Model, error) {
	if r.err != nil {
		return nil, r.err
	}
	return fakeModel{}, nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls []imagegen.Request
	res   *imagegen.Result
	err   error
	gate  chan struct{}
	began chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, req imagegen.Request) (*imagegen.Result, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()
	if g.began != nil {
		g.began <- struct{}{}
	}
	if g.gate != nil {
		<-g.gate
	}
	return g.res, g.err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func imageResult(b64 string) *imagegen.Result {
	return &imagegen.Result{Image: &imagegen.Image{Base64: b64}}
}

func TestSubmit_SignedOutIsNoop(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	s := NewSession(&fakeAuth{}, fakeResolver{}, gen)

	st := s.Submit(context.Background(), "Create a sleek blue token logo")
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, 0, gen.callCount())
}

func TestSubmit_LoadingAuthIsNoop(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	s := NewSession(&fakeAuth{state: AuthState{IsLoading: true}}, fakeResolver{}, gen)

	st := s.Submit(context.Background(), "logo")
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, 0, gen.callCount())
}

func TestSubmit_BlankPromptIsNoop(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	for _, p := range []string{"", "   ", "\n\t"} {
		st := s.Submit(context.Background(), p)
		assert.Equal(t, StatusIdle, st.Status)
	}
	assert.Equal(t, 0, gen.callCount())
}

func TestSubmit_Success(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	var seen []State
	var outcomes []Outcome
	s := NewSession(signedIn(), fakeResolver{}, gen,
		WithObserver(func(st State) { seen = append(seen, st) }),
		WithRecorder(func(_ context.Context, o Outcome) { outcomes = append(outcomes, o) }),
	)

	st := s.Submit(context.Background(), "  Create a sleek blue token logo  ")
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Equal(t, "data:image/png;base64,AAAA", st.ImageURL)
	assert.Empty(t, st.Error)

	require.Equal(t, 1, gen.callCount())
	req := gen.calls[0]
	assert.Equal(t, "Create a sleek blue token logo", req.Prompt)
	assert.Equal(t, "1024x1024", req.Size)
	assert.Equal(t, "low", req.Quality)
	assert.Equal(t, fakeModel{}, req.Model)

	require.Len(t, seen, 2)
	assert.Equal(t, StatusPending, seen[0].Status)
	assert.Equal(t, StatusSucceeded, seen[1].Status)

	require.Len(t, outcomes, 1)
	assert.Equal(t, uint(7), outcomes[0].UserID)
	assert.Equal(t, "AAAA", outcomes[0].Base64)

	data, ok := s.ImageBytes()
	require.True(t, ok)
	assert.Equal(t, []byte{0, 0, 0}, data)
}

func TestSubmit_GeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	st := s.Submit(context.Background(), "logo")
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "quota exceeded", st.Error)
	assert.Empty(t, st.ImageURL)
}

func TestSubmit_NoImage(t *testing.T) {
	for name, res := range map[string]*imagegen.Result{
		"empty result": {},
		"nil result":   nil,
		"empty base64": imageResult(""),
	} {
		t.Run(name, func(t *testing.T) {
			s := NewSession(signedIn(), fakeResolver{}, &fakeGenerator{res: res})
			st := s.Submit(context.Background(), "logo")
			assert.Equal(t, StatusFailed, st.Status)
			assert.Equal(t, "No image was generated", st.Error)
		})
	}
}

func TestSubmit_ErrorWithoutMessage(t *testing.T) {
	s := NewSession(signedIn(), fakeResolver{}, &fakeGenerator{err: errors.New("")})
	st := s.Submit(context.Background(), "logo")
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "Unknown error", st.Error)
}

func TestSubmit_ResolverError(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	s := NewSession(signedIn(), fakeResolver{err: errors.New("no API key configured")}, gen)

	st := s.Submit(context.Background(), "logo")
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "no API key configured", st.Error)
	assert.Equal(t, 0, gen.callCount())
}

func TestSubmit_ClearsPreviousResult(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	s := NewSession(signedIn(), fakeResolver{}, gen)
	s.Submit(context.Background(), "first")

	gen.err = nil
	gen.res = imageResult("BBBB")
	var pending State
	s.observer = func(st State) {
		if st.Status == StatusPending {
			pending = st
		}
	}
	st := s.Submit(context.Background(), "second")
	assert.Empty(t, pending.Error)
	assert.Empty(t, pending.ImageURL)
	assert.Equal(t, StatusSucceeded, st.Status)
}

func TestSubmit_SecondSubmitWhilePendingIsNoop(t *testing.T) {
	gen := &fakeGenerator{
		res:   imageResult("AAAA"),
		gate:  make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	done := make(chan State, 1)
	go func() { done <- s.Submit(context.Background(), "first") }()
	<-gen.began

	st := s.Submit(context.Background(), "second")
	assert.Equal(t, StatusPending, st.Status)
	assert.Equal(t, "first", st.Prompt)

	close(gen.gate)
	final := <-done
	assert.Equal(t, StatusSucceeded, final.Status)
	assert.Equal(t, 1, gen.callCount())
}

func TestSubmit_ConcurrentCallersIssueOneRequest(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA"), gate: make(chan struct{})}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	var wg sync.WaitGroup
	var returned atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Submit(context.Background(), "logo")
			returned.Add(1)
		}()
	}
	// Seven callers bounce off the busy flag while one blocks in the generator.
	require.Eventually(t, func() bool {
		return returned.Load() == 7
	}, time.Second, 5*time.Millisecond)
	close(gen.gate)
	wg.Wait()

	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, StatusSucceeded, s.State().Status)
}

func TestReset_DropsStaleCompletion(t *testing.T) {
	gen := &fakeGenerator{
		res:   imageResult("AAAA"),
		gate:  make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	var recorded int
	s := NewSession(signedIn(), fakeResolver{}, gen,
		WithRecorder(func(context.Context, Outcome) { recorded++ }))

	done := make(chan State, 1)
	go func() { done <- s.Submit(context.Background(), "logo") }()
	<-gen.began

	reset := s.Reset()
	assert.Equal(t, StatusIdle, reset.Status)
	assert.Empty(t, reset.Prompt)

	close(gen.gate)
	final := <-done
	assert.Equal(t, StatusIdle, final.Status)
	assert.Empty(t, final.ImageURL)
	assert.Equal(t, 0, recorded)

	_, ok := s.ImageBytes()
	assert.False(t, ok)
}

func TestReset_AllowsNewSubmission(t *testing.T) {
	gen := &fakeGenerator{res: imageResult("AAAA")}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	s.Submit(context.Background(), "logo")
	st := s.Reset()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.ImageURL)

	st = s.Submit(context.Background(), "again")
	assert.Equal(t, StatusSucceeded, st.Status)
	assert.Equal(t, 2, gen.callCount())
}

func TestPromptEditing(t *testing.T) {
	s := NewSession(signedIn(), fakeResolver{}, &fakeGenerator{})

	st := s.SetPrompt("a dog")
	assert.Equal(t, "a dog", st.Prompt)

	st = s.AppendSuggestion("wearing sunglasses")
	assert.Equal(t, "a dog\nwearing sunglasses", st.Prompt)

	s.SetPrompt("")
	st = s.AppendSuggestion("a cat")
	assert.Equal(t, "a cat", st.Prompt)
}

func TestPromptEditing_IgnoredWhilePending(t *testing.T) {
	gen := &fakeGenerator{
		res:   imageResult("AAAA"),
		gate:  make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	s := NewSession(signedIn(), fakeResolver{}, gen)

	done := make(chan State, 1)
	go func() { done <- s.Submit(context.Background(), "logo") }()
	<-gen.began

	assert.Equal(t, "logo", s.SetPrompt("changed").Prompt)
	assert.Equal(t, "logo", s.AppendSuggestion("more").Prompt)

	close(gen.gate)
	<-done
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "quota exceeded", Message(errors.New("quota exceeded")))
	assert.Equal(t, "Unknown error", Message(errors.New("  ")))
	assert.Equal(t, "Unknown error", Message(nil))
	assert.Equal(t, "No image was generated", Message(ErrNoImage))
}
