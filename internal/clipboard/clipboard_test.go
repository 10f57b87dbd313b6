package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text     string
	readErr  error
	writeErr error
}

func (f *fakeBackend) ReadAll() (string, error) { return f.text, f.readErr }
func (f *fakeBackend) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func TestInternalRegister(t *testing.T) {
	m := NewWithBackend(nil)
	assert.False(t, m.System())

	require.NoError(t, m.Write("hello"))
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestSystemBackend(t *testing.T) {
	b := &fakeBackend{}
	m := NewWithBackend(b)
	require.NoError(t, m.Write("sys"))
	assert.Equal(t, "sys", b.text)

	b.text = "changed elsewhere"
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "changed elsewhere", got)
}

func TestFailingBackendFallsBack(t *testing.T) {
	b := &fakeBackend{readErr: errors.New("no display"), writeErr: errors.New("no display")}
	m := NewWithBackend(b)

	require.NoError(t, m.Write("kept"))
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}
