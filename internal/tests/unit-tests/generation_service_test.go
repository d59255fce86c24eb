package unit_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memerender/internal/events"
	"memerender/internal/generation"
	"memerender/internal/imagegen"
	"memerender/internal/models"
	"memerender/internal/services"
	"memerender/internal/tests/mocks"
)

type stubResolver struct{}

func (stubResolver) ImageModel(context.Context) (imagegen.Model, error) { return namedModel{}, nil }

type stubGenerator struct {
	calls int
	res   *imagegen.Result
	err   error
}

func (g *stubGenerator) Generate(context.Context, imagegen.Request) (*imagegen.Result, error) {
	g.calls++
	return g.res, g.err
}

func captureEvents(t *testing.T) *[]string {
	t.Helper()
	var names []string
	events.SetCustomEmitter(func(_ context.Context, name string, _ any) {
		names = append(names, name)
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return &names
}

func TestGenerationService_SubmitEmitsAndRecords(t *testing.T) {
	emitted := captureEvents(t)
	var records []*models.GenerationRecord
	recorder := services.NewHistoryRecorder(&mocks.GenerationRecordRepositoryMock{
		CreateFunc: func(ctx context.Context, r *models.GenerationRecord) error {
			records = append(records, r)
			return nil
		},
	})
	gen := &stubGenerator{res: &imagegen.Result{Image: &imagegen.Image{Base64: "AAAA"}}}
	svc := services.NewGenerationService(&stubAuth{user: &models.User{ID: 1}}, stubResolver{}, gen, recorder)
	svc.Startup(context.Background())

	st := svc.Submit("Create a sleek blue token logo")
	assert.Equal(t, generation.StatusSucceeded, st.Status)
	assert.Equal(t, "data:image/png;base64,AAAA", st.ImageURL)
	assert.Equal(t, []string{events.GenerationState, events.GenerationState}, *emitted)
	require.Len(t, records, 1)
	assert.Equal(t, "Create a sleek blue token logo", records[0].Prompt)

	data, ok := services.SessionOf(svc).ImageBytes()
	require.True(t, ok)
	assert.Len(t, data, 3)
}

func TestGenerationService_SignedOut(t *testing.T) {
	gen := &stubGenerator{}
	svc := services.NewGenerationService(&stubAuth{}, stubResolver{}, gen, nil)

	st := svc.Submit("logo")
	assert.Equal(t, generation.StatusIdle, st.Status)
	assert.Equal(t, 0, gen.calls)
}

func TestGenerationService_FailureAndReset(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := services.NewGenerationService(&stubAuth{user: &models.User{ID: 1}}, stubResolver{}, gen, nil)

	svc.SetPrompt("logo")
	st := svc.AppendSuggestion("with a hat")
	assert.Equal(t, "logo\nwith a hat", st.Prompt)

	st = svc.Submit(st.Prompt)
	assert.Equal(t, generation.StatusFailed, st.Status)
	assert.Equal(t, "quota exceeded", st.Error)

	st = svc.Reset()
	assert.Equal(t, generation.StatusIdle, st.Status)
	assert.Empty(t, st.Prompt)
	assert.Empty(t, st.Error)
	assert.Equal(t, st, svc.State())
}
