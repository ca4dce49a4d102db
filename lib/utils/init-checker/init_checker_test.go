package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type impl struct{}

func (*impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run(`all initialized`, func(t *testing.T) {
		var store provider = &impl{}
		require.NotPanics(t, func() {
			CheckInit("store", store, "value", impl{})
		})
	})

	t.Run(`lists every missing dependency`, func(t *testing.T) {
		var store provider
		var typedNil *impl
		var wrapped provider = typedNil
		require.PanicsWithValue(t, "не инициализированы зависимости: store, wrapped", func() {
			CheckInit("store", store, "ok", &impl{}, "wrapped", wrapped)
		})
	})

	t.Run(`malformed pairs`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("store") })
		require.Panics(t, func() { CheckInit(1, &impl{}) })
	})
}
