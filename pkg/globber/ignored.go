package globber

import (
	stderrors "errors"
	"io/fs"
	"os"
	"syscall"
)

// IsAccessError reports whether err is a filesystem access failure that a
// run may record and step over: permission denied, a path that vanished or
// is not a directory, or an I/O error.
func IsAccessError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, fs.ErrPermission) || stderrors.Is(err, fs.ErrNotExist) {
		return true
	}

	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return true
	}
	var linkErr *os.LinkError
	if stderrors.As(err, &linkErr) {
		return true
	}
	var sysErr *os.SyscallError
	if stderrors.As(err, &sysErr) {
		return true
	}
	var errno syscall.Errno
	return stderrors.As(err, &errno)
}

// IgnoredErrors records access failures, keeping one error per distinct
// message in first-seen order.
type IgnoredErrors struct {
	seen map[string]struct{}
	errs []error
}

// NewIgnoredErrors returns an empty set.
func NewIgnoredErrors() *IgnoredErrors {
	return &IgnoredErrors{seen: make(map[string]struct{})}
}

// Add records err unless an error with the same message is already known.
// It reports whether err was added.
func (s *IgnoredErrors) Add(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if _, ok := s.seen[msg]; ok {
		return false
	}
	s.seen[msg] = struct{}{}
	s.errs = append(s.errs, err)
	return true
}

// Len returns the number of distinct errors.
func (s *IgnoredErrors) Len() int {
	return len(s.errs)
}

// Errors returns the recorded errors.
func (s *IgnoredErrors) Errors() []error {
	return append([]error(nil), s.errs...)
}

// Messages returns the recorded error messages.
func (s *IgnoredErrors) Messages() []string {
	msgs := make([]string, len(s.errs))
	for i, err := range s.errs {
		msgs[i] = err.Error()
	}
	return msgs
}
