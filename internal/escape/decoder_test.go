package escape_test

import (
	"testing"

	"github.com/jcorbin/tuneshell/internal/escape"
	"github.com/stretchr/testify/assert"
)

type feedResult struct {
	abandoned string
	consumed  bool
}

func Test_Decoder(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		results []feedResult
		actions []escape.Action
	}{
		{
			name:  "up",
			input: "\x1b[A",
			results: []feedResult{
				{"", true}, {"", true}, {"", true},
			},
			actions: []escape.Action{escape.Up},
		},
		{
			name:    "all arrows",
			input:   "\x1b[A\x1b[B\x1b[C\x1b[D",
			actions: []escape.Action{escape.Up, escape.Down, escape.Right, escape.Left},
		},
		{
			name:  "unbound letter swallowed",
			input: "\x1b[Z",
			results: []feedResult{
				{"", true}, {"", true}, {"", true},
			},
		},
		{
			name:  "not a bracket",
			input: "\x1bx",
			results: []feedResult{
				{"", true}, {"\x1b", false},
			},
		},
		{
			name:  "not a letter",
			input: "\x1b[1",
			results: []feedResult{
				{"", true}, {"", true}, {"\x1b[", false},
			},
		},
		{
			name:  "restart",
			input: "\x1b[\x1b[B",
			results: []feedResult{
				{"", true}, {"", true}, {"\x1b[", true}, {"", true}, {"", true},
			},
			actions: []escape.Action{escape.Down},
		},
		{
			name:  "idle passthrough",
			input: "a",
			results: []feedResult{
				{"", false},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var (
				dec     escape.Decoder
				actions []escape.Action
			)
			for _, a := range []escape.Action{escape.Up, escape.Down, escape.Right, escape.Left} {
				a := a
				dec.Bind(a, func() { actions = append(actions, a) })
			}

			var results []feedResult
			for i := 0; i < len(tc.input); i++ {
				abandoned, consumed := dec.Feed(tc.input[i])
				results = append(results, feedResult{string(abandoned), consumed})
			}
			if tc.results != nil {
				assert.Equal(t, tc.results, results, "expected feed results")
			}
			assert.Equal(t, tc.actions, actions, "expected actions")
			assert.False(t, dec.Started(), "expected decoder to end idle")
		})
	}
}

func Test_Decoder_unbind(t *testing.T) {
	var dec escape.Decoder
	called := 0
	dec.Bind(escape.Left, func() { called++ })
	dec.Bind(escape.Left, nil)
	for _, b := range []byte("\x1b[D") {
		dec.Feed(b)
	}
	assert.Equal(t, 0, called)
	assert.Equal(t, "Left", escape.Left.String())
}
