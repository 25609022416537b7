package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	assert.Equal(t, "dev", Info{Version: "dev"}.String())
	assert.Equal(t, "v1.2.0 (0a1b2c3)", Info{Version: "v1.2.0", Commit: "0a1b2c3d4e5f"}.String())
}
