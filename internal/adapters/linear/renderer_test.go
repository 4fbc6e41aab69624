package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return linear.NewRenderer(stdout, stderr), stdout, stderr
}

func TestRenderer_PipelineLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t)
	start := time.Unix(0, 0)

	r.OnPlanEmit([]string{"pages", "styles"})
	r.OnTaskStart("s1", "", "styles", start)
	r.OnTaskLog("s1", []byte("compiled main.scss\n"))
	r.OnTaskComplete("s1", start.Add(1500*time.Millisecond), nil)

	assert.Equal(t, "[styles] compiled main.scss\n", stdout.String())
	assert.Equal(t,
		"→ 2 pipeline(s): pages, styles\n"+
			"[styles] Starting...\n"+
			"[styles] ✓ Completed in 1.5s\n",
		stderr.String())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("s1", "", "scripts", time.Now())
	r.OnTaskLog("s1", []byte("bund"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("s1", []byte("led\nrest"))
	assert.Equal(t, "[scripts] bundled\n", stdout.String())

	r.OnTaskComplete("s1", time.Now(), nil)
	assert.Equal(t, "[scripts] bundled\n[scripts] rest\n", stdout.String())
}

func TestRenderer_Failure(t *testing.T) {
	r, _, stderr := newRenderer(t)
	start := time.Unix(0, 0)

	r.OnTaskStart("s1", "", "styles", start)
	r.OnTaskComplete("s1", start.Add(20*time.Millisecond), errors.New("main.scss:3:1: expected ;"))

	assert.Contains(t, stderr.String(), "[styles] ✗ Failed after 20ms: main.scss:3:1: expected ;")
}

func TestRenderer_StagesHiddenUnlessVerbose(t *testing.T) {
	r, _, stderr := newRenderer(t)
	start := time.Unix(0, 0)

	r.OnTaskStart("p", "", "styles", start)
	r.OnTaskStart("c", "p", "sass", start)
	r.OnTaskComplete("c", start.Add(time.Millisecond), nil)
	r.OnTaskComplete("p", start.Add(2*time.Millisecond), nil)

	assert.NotContains(t, stderr.String(), "sass")

	r.SetVerbose(true)
	stderr.Reset()
	r.OnTaskStart("p", "", "styles", start)
	r.OnTaskStart("c", "p", "sass", start)
	r.OnTaskComplete("c", start.Add(time.Millisecond), nil)

	assert.Contains(t, stderr.String(), "[styles › sass] ✓ Completed in 1ms")
}

func TestRenderer_FailedStageAlwaysShown(t *testing.T) {
	r, _, stderr := newRenderer(t)
	start := time.Unix(0, 0)

	r.OnTaskStart("p", "", "scripts", start)
	r.OnTaskStart("c", "p", "babel", start)
	r.OnTaskComplete("c", start, errors.New("boom"))

	assert.Contains(t, stderr.String(), "[scripts › babel] ✗ Failed after 0s: boom")
}

func TestRenderer_UnknownSpans(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnTaskLog("missing", []byte("data\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_StopFlushesBuffers(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("s1", "", "pages", time.Now())
	r.OnTaskLog("s1", []byte("no newline"))
	assert.NoError(t, r.Stop())

	assert.Equal(t, "[pages] no newline\n", stdout.String())
	assert.NoError(t, r.Wait())
}
