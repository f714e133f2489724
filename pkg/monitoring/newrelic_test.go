package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledWithoutLicense(t *testing.T) {
	app, err := New(Config{Enabled: true, AppName: "rides"})
	require.NoError(t, err)

	assert.False(t, app.IsEnabled())
	assert.Nil(t, app.App())
}

// TestDisabledApp_NoOps tests that recording on a disabled app never panics
func TestDisabledApp_NoOps(t *testing.T) {
	for _, app := range []*NewRelicApp{Disabled(), nil} {
		assert.NotPanics(t, func() {
			app.RecordRideCreated(1, "SWR2022")
			app.RecordValidationFailure("start")
			app.RecordListPageSize(10)
			app.Shutdown(time.Second)
		})
	}
}
