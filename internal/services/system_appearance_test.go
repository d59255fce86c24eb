package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memerender/internal/events"
	"memerender/internal/tests/mocks"
)

type fakeRuntimeEvents struct {
	handlers map[int]func(...interface{})
	next     int
}

func (f *fakeRuntimeEvents) on(_ context.Context, name string, cb func(...interface{})) func() {
	if name != events.AppearanceSystem {
		return func() {}
	}
	if f.handlers == nil {
		f.handlers = make(map[int]func(...interface{}))
	}
	id := f.next
	f.next++
	f.handlers[id] = cb
	return func() { delete(f.handlers, id) }
}

func (f *fakeRuntimeEvents) emit(data ...interface{}) {
	for _, cb := range f.handlers {
		cb(data...)
	}
}

func TestSystemAppearance_OnChangeRequiresReport(t *testing.T) {
	a := NewSystemAppearance()
	_, err := a.OnChange(func(bool) {})
	assert.ErrorIs(t, err, ErrAppearanceNotReported)

	a.ReportPrefersDark(true)
	assert.True(t, a.PrefersDark())

	var got []bool
	cancel, err := a.OnChange(func(d bool) { got = append(got, d) })
	require.NoError(t, err)
	assert.Equal(t, 1, a.ListenerCount())

	a.ReportPrefersDark(true)
	a.ReportPrefersDark(false)
	assert.Equal(t, []bool{false}, got)

	cancel()
	cancel()
	assert.Equal(t, 0, a.ListenerCount())
	a.ReportPrefersDark(true)
	assert.Equal(t, []bool{false}, got)
}

func TestSystemAppearance_LegacyEvent(t *testing.T) {
	a := NewSystemAppearance()
	_, err := a.AddListener(func(bool) {})
	assert.ErrorIs(t, err, ErrNoRuntime)

	rt := &fakeRuntimeEvents{}
	a.eventsOn = rt.on
	a.Startup(context.Background())

	var got []bool
	cancel, err := a.AddListener(func(d bool) { got = append(got, d) })
	require.NoError(t, err)

	rt.emit(true)
	rt.emit("dark")
	rt.emit()
	assert.Equal(t, []bool{true}, got)
	assert.True(t, a.PrefersDark())

	cancel()
	rt.emit(false)
	assert.Equal(t, []bool{true}, got)
}

type darkRecorder struct {
	values []bool
}

func newThemeServiceForTest(prefs *mocks.PreferenceRepositoryMock, a *SystemAppearance) (*themeService, *darkRecorder) {
	rec := &darkRecorder{}
	svc := NewThemeService(prefs, a).(*themeService)
	svc.windowTheme = func(_ context.Context, dark bool) { rec.values = append(rec.values, dark) }
	svc.Startup(context.Background())
	return svc, rec
}

func TestThemeService_FollowsSystemThroughBinding(t *testing.T) {
	a := NewSystemAppearance()
	a.ReportPrefersDark(false)
	svc, rec := newThemeServiceForTest(&mocks.PreferenceRepositoryMock{}, a)

	svc.InitTheme()
	svc.InitTheme()
	assert.Equal(t, 1, a.ListenerCount())
	assert.Equal(t, "light", svc.Appearance())

	rec.values = nil
	a.ReportPrefersDark(true)
	assert.Equal(t, []bool{true}, rec.values)
	assert.Equal(t, "dark", svc.Appearance())

	require.NoError(t, svc.SetTheme("light"))
	rec.values = nil
	a.ReportPrefersDark(false)
	a.ReportPrefersDark(true)
	assert.Empty(t, rec.values)

	svc.Shutdown()
	assert.Equal(t, 0, a.ListenerCount())
}

func TestThemeService_FallsBackToRuntimeEvent(t *testing.T) {
	rt := &fakeRuntimeEvents{}
	a := NewSystemAppearance()
	a.eventsOn = rt.on
	a.Startup(context.Background())
	svc, rec := newThemeServiceForTest(&mocks.PreferenceRepositoryMock{}, a)

	svc.InitTheme()
	svc.InitTheme()
	assert.Len(t, rt.handlers, 1)

	rec.values = nil
	rt.emit(true)
	assert.Equal(t, []bool{true}, rec.values)
}

func TestThemeService_PersistsPreference(t *testing.T) {
	prefs := &mocks.PreferenceRepositoryMock{}
	svc, _ := newThemeServiceForTest(prefs, NewSystemAppearance())

	assert.Equal(t, "system", svc.GetTheme())
	require.NoError(t, svc.SetTheme("dark"))
	assert.Equal(t, "dark", svc.GetTheme())
	assert.Equal(t, "dark", svc.Appearance())

	assert.Error(t, svc.SetTheme("blue"))
	assert.Equal(t, "dark", svc.GetTheme())

	reloaded, _ := newThemeServiceForTest(prefs, NewSystemAppearance())
	assert.Equal(t, "dark", reloaded.GetTheme())
}

func TestThemeService_WriteFailureIsSwallowed(t *testing.T) {
	prefs := &mocks.PreferenceRepositoryMock{
		SetFunc: func(context.Context, string, string) error { return assert.AnError },
	}
	svc, rec := newThemeServiceForTest(prefs, NewSystemAppearance())

	require.NoError(t, svc.SetTheme("dark"))
	assert.Equal(t, []bool{true}, rec.values)
	assert.Equal(t, "system", svc.GetTheme())
}
