package browser

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefault(t *testing.T) {
	var opened []string
	o := &Opener{openURL: func(url string) error {
		opened = append(opened, url)
		return nil
	}}

	require.NoError(t, o.Open("https://example.com/unsub"))
	assert.Equal(t, []string{"https://example.com/unsub"}, opened)
}

func TestOpenDefaultError(t *testing.T) {
	boom := errors.New("no display")
	o := &Opener{openURL: func(string) error { return boom }}

	err := o.Open("https://example.com/unsub")
	assert.ErrorIs(t, err, boom)
}

func TestOpenCommand(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	var out bytes.Buffer
	o := &Opener{Command: []string{"echo", "--tab"}, Output: &out}

	require.NoError(t, o.Open("https://example.com/unsub"))
	assert.Equal(t, "--tab https://example.com/unsub\n", out.String())
}

func TestOpenCommandMissing(t *testing.T) {
	o := &Opener{Command: []string{"no-such-browser-binary-for-tests"}}
	assert.Error(t, o.Open("https://example.com/unsub"))
}
