package globber

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAccessError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "permission", err: fs.ErrPermission, want: true},
		{name: "not exist", err: fs.ErrNotExist, want: true},
		{name: "path error", err: &fs.PathError{Op: "open", Path: "/x", Err: stderrors.New("io")}, want: true},
		{name: "wrapped permission", err: fmt.Errorf("listing: %w", fs.ErrPermission), want: true},
		{name: "syscall error", err: os.NewSyscallError("getdents", syscall.EIO), want: true},
		{name: "errno", err: syscall.EIO, want: true},
		{name: "anything else", err: stderrors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAccessError(tt.err))
		})
	}
}

func TestIgnoredErrors(t *testing.T) {
	s := NewIgnoredErrors()

	assert.True(t, s.Add(stderrors.New("first")))
	assert.False(t, s.Add(stderrors.New("first")))
	assert.True(t, s.Add(stderrors.New("second")))
	assert.False(t, s.Add(nil))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"first", "second"}, s.Messages())
	assert.Len(t, s.Errors(), 2)
}
