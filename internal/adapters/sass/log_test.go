package sass

import (
	"bytes"
	"testing"

	"github.com/bep/godartsass/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCompiler_OnLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	span := mocks.NewMockSpan(ctrl)

	var written bytes.Buffer
	span.EXPECT().Write(gomock.Any()).DoAndReturn(written.Write).Times(1)
	log.EXPECT().Warn("sass: outside a compilation").Times(1)

	c := NewCompiler(log, "")

	c.bind(span)
	c.onLog(godartsass.LogEvent{Message: "deprecated division\n"})
	c.bind(nil)
	c.onLog(godartsass.LogEvent{Message: "outside a compilation"})

	assert.Equal(t, "sass: deprecated division\n", written.String())
}
