//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"stayhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	sentinel := errs.New("room not found")

	t.Run("sees marks", func(t *testing.T) {
		cause := errors.New("no rows in result set")
		marked := errs.Mark(cause, sentinel)

		assert.True(t, errs.Is(marked, sentinel))
		// The cause chain stays intact alongside the mark.
		assert.True(t, errs.Is(marked, cause))
	})

	t.Run("sees wrapped causes", func(t *testing.T) {
		wrapped := errs.Wrap(sentinel, "lookup failed")
		assert.True(t, errs.Is(wrapped, sentinel))
	})

	t.Run("no match NG", func(t *testing.T) {
		other := errs.New("access denied")
		assert.False(t, errs.Is(errs.Mark(errors.New("boom"), other), sentinel))
	})
}
