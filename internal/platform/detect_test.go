package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want OS
	}{
		{"darwin", MacOS},
		{"linux", Linux},
		{"windows", Windows},
		{"plan9", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, fromGOOS(tt.goos))
		})
	}
}

func TestDetect_MatchesRuntime(t *testing.T) {
	assert.Equal(t, fromGOOS(runtime.GOOS), Detect())
	assert.Equal(t, runtime.GOOS == "windows", Detect().IsWindows())
}

func TestIsWindows(t *testing.T) {
	assert.True(t, Windows.IsWindows())
	assert.False(t, Linux.IsWindows())
	assert.False(t, MacOS.IsWindows())
}
