package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Loads Enabled Features Only", func(t *testing.T) {
		mgr := NewManager()
		on := &stubFeature{name: "gamedata", enabled: true}
		off := &stubFeature{name: "integrity", enabled: false}
		mgr.Register(on)
		mgr.Register(off)

		err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
	})

	t.Run("Propagates Load Error", func(t *testing.T) {
		mgr := NewManager()
		mgr.Register(&stubFeature{name: "broken", enabled: true, loadErr: errors.New("boom")})

		err := mgr.LoadAll(fiber.New())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestManager_Features(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "a"})
	mgr.Register(&stubFeature{name: "b"})
	assert.Equal(t, []string{"a", "b"}, mgr.Features())
}
