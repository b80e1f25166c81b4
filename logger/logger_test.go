package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cyan = "\033[36m"

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("lab", cyan, &buf)
	require.NoError(t, err)

	t.Run("info", func(t *testing.T) {
		buf.Reset()
		l.Info("maze created")

		line := buf.String()
		assert.True(t, strings.HasPrefix(line, cyan))
		assert.Contains(t, line, "[LAB] [INFO] maze created")
		assert.True(t, strings.HasSuffix(line, colorReset+"\n"))
	})

	t.Run("warning", func(t *testing.T) {
		buf.Reset()
		l.Warning("slow step")
		assert.Contains(t, buf.String(), "[LAB] [WARNING] slow step")
	})

	t.Run("error uses the error color", func(t *testing.T) {
		buf.Reset()
		l.Error("save failed")
		assert.True(t, strings.HasPrefix(buf.String(), errorColor))
		assert.Contains(t, buf.String(), "[LAB] [ERROR] save failed")
	})
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New("lab", cyan, nil)
	assert.Error(t, err)

	_, err = New("", cyan, &bytes.Buffer{})
	assert.Error(t, err)
}
