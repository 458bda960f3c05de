package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/jcorbin/tuneshell/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Recover(t *testing.T) {
	for _, tc := range []struct {
		name      string
		err       string
		wraps     string
		fun       func() error
		haveStack bool
		isExit    bool
	}{
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name:      "panic err",
			err:       "panic err paniced: bang",
			wraps:     "bang",
			haveStack: true,
			fun:       func() error { panic(errors.New("bang")) },
		},
		{
			name:      "hello panic",
			err:       "hello panic paniced: hello",
			haveStack: true,
			fun:       func() error { panic("hello") },
		},
		{
			name:   "exit",
			err:    "exit called runtime.Goexit",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := panicerr.Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
			if tc.wraps != "" {
				assert.EqualError(t, errors.Unwrap(err), tc.wraps, "expected panic(error) value")
			}
			assert.Equal(t, tc.haveStack, panicerr.IsPanic(err))
			assert.Equal(t, tc.haveStack, panicerr.PanicStack(err) != "")
			assert.Equal(t, tc.isExit, panicerr.IsExit(err))
		})
	}
}

func Test_Guard(t *testing.T) {
	t.Run("passes errors", func(t *testing.T) {
		assert.EqualError(t, panicerr.Guard("cb", func() error { return errors.New("nope") }), "nope")
		assert.NoError(t, panicerr.Guard("cb", func() error { return nil }))
	})

	t.Run("recovers panics", func(t *testing.T) {
		err := panicerr.Guard("speed", func() error {
			_ = ([]int)(nil)[1]
			return nil
		})
		require.Error(t, err)
		assert.True(t, panicerr.IsPanic(err))
		assert.EqualError(t, err, "speed paniced: runtime error: index out of range [1] with length 0")
		assert.True(t,
			strings.HasSuffix(fmt.Sprintf("%+v", err), panicerr.PanicStack(err)),
			"expected verbose format to end with a stack trace")
	})
}
