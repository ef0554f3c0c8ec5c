// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kttest "github.com/kraklabs/kt2uml/internal/testing"
	"github.com/kraklabs/kt2uml/pkg/grammar"
	"github.com/kraklabs/kt2uml/pkg/syntree"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

type parserFunc func(ctx context.Context, src string) (*syntree.Node, error)

func (f parserFunc) Parse(ctx context.Context, src string) (*syntree.Node, error) {
	return f(ctx, src)
}

type panickingPrinter struct{}

func (panickingPrinter) Print(uml.Target) string      { panic("boom") }
func (panickingPrinter) PrintAll([]uml.Target) string { panic("boom") }

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	opts.Logger = kttest.Logger(t)
	return New(opts)
}

func TestPipeline_Transform(t *testing.T) {
	want := uml.Function{
		Name:            "f",
		AnnotationNames: []string{"Annotation"},
		Params:          []uml.TypeAndName{{Type: uml.Reference{TypeName: "Int"}, Name: "x"}},
		ReturnType:      uml.Reference{TypeName: "String"},
		Visibility:      uml.Protected,
	}
	sources := []string{
		"@Annotation protected fun f(x: Int): String {}",
		"@Annotation\nprotected fun f(x: Int): String {}\n",
	}

	p := newTestPipeline(t, Options{})
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			targets, err := p.Transform(context.Background(), src)
			require.NoError(t, err)
			require.Len(t, targets, 1)
			assert.Equal(t, want, targets[0])
		})
	}
}

func TestPipeline_TransformInvalidDocument(t *testing.T) {
	p := newTestPipeline(t, Options{})

	targets, err := p.Transform(context.Background(), "UNKNOWN")
	assert.Nil(t, targets)
	require.ErrorIs(t, err, ErrNoResult)

	var se *grammar.SyntaxError
	assert.True(t, errors.As(err, &se), "cause is kept: %v", err)
}

func TestPipeline_Render(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		state State
		text  string
	}{
		{
			name:  "annotated protected on one line",
			src:   "@Annotation protected fun f(x: Int): String {}",
			state: Generated,
			text:  "interface f <<@Annotation top-level function>> {\n  # invoke: (x: Int) -> String\n}",
		},
		{
			name:  "annotated protected",
			src:   "@Annotation\nprotected fun f(x: Int): String {}\n",
			state: Generated,
			text:  "interface f <<@Annotation top-level function>> {\n  # invoke: (x: Int) -> String\n}",
		},
		{
			name:  "higher order",
			src:   "fun f(x: ((String) -> Int) -> Unit) {}\n",
			state: Generated,
			text:  "interface f <<top-level function>> {\n  + invoke: (x: ((String) -> Int) -> Unit) -> Unit\n}",
		},
		{
			name:  "no functions",
			src:   "class A\nval x = 1\n",
			state: Generated,
			text:  "",
		},
		{
			name:  "empty document",
			src:   "",
			state: Generated,
			text:  "",
		},
		{
			name:  "not a compilation unit",
			src:   "UNKNOWN",
			state: Invalid,
		},
	}

	p := newTestPipeline(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Render(context.Background(), tt.src)
			assert.Equal(t, tt.state, res.State)
			assert.Equal(t, tt.text, res.Text)
			if tt.state == Invalid {
				assert.ErrorIs(t, res.Err, ErrNoResult)
				assert.Nil(t, res.Targets)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestPipeline_RenderKeepsGoodFunctions(t *testing.T) {
	p := newTestPipeline(t, Options{})

	res := p.Render(context.Background(), "fun a() {}\nclass B\nfun c(): Int = 1\n")
	require.Equal(t, Generated, res.State)
	assert.Len(t, res.Targets, 2)
	assert.Equal(t, 1, res.Report.Ignored)
	assert.Contains(t, res.Text, "interface a <<top-level function>>")
	assert.Contains(t, res.Text, "}\n\ninterface c <<top-level function>>")
}

func TestPipeline_RenderWrapped(t *testing.T) {
	p := newTestPipeline(t, Options{Wrap: true})

	res := p.Render(context.Background(), "fun a() {}\n")
	require.Equal(t, Generated, res.State)
	assert.Equal(t, "@startuml\ninterface a <<top-level function>> {\n  + invoke: () -> Unit\n}\n@enduml\n", res.Text)
}

func TestPipeline_PanicsBecomeNoResult(t *testing.T) {
	t.Run("parser", func(t *testing.T) {
		p := newTestPipeline(t, Options{})
		p.Parser = parserFunc(func(context.Context, string) (*syntree.Node, error) {
			panic("parser exploded")
		})

		res := p.Render(context.Background(), "fun f() {}")
		assert.Equal(t, Invalid, res.State)
		assert.ErrorIs(t, res.Err, ErrNoResult)
		assert.Contains(t, res.Err.Error(), "parser exploded")
	})

	t.Run("printer", func(t *testing.T) {
		p := newTestPipeline(t, Options{})
		p.Printer = panickingPrinter{}

		res := p.Render(context.Background(), "fun f() {}")
		assert.Equal(t, Invalid, res.State)
		assert.ErrorIs(t, res.Err, ErrNoResult)
		assert.Empty(t, res.Text)
	})
}

func TestPipeline_ParserError(t *testing.T) {
	p := newTestPipeline(t, Options{})
	cause := errors.New("disk on fire")
	p.Parser = parserFunc(func(context.Context, string) (*syntree.Node, error) {
		return nil, cause
	})

	_, err := p.Transform(context.Background(), "fun f() {}")
	assert.ErrorIs(t, err, ErrNoResult)
	assert.ErrorIs(t, err, cause)
}

func TestPipeline_Limits(t *testing.T) {
	p := newTestPipeline(t, Options{Limits: grammar.Limits{MaxSourceBytes: 4}})

	res := p.Render(context.Background(), "fun f() {}")
	assert.Equal(t, Invalid, res.State)

	var le *grammar.LimitError
	assert.True(t, errors.As(res.Err, &le))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p := newTestPipeline(t, Options{Metrics: m})

	p.Render(context.Background(), "fun a(x: Int) {}\nfun b() {}\nobject O\n")
	p.Render(context.Background(), "UNKNOWN")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalid))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.targets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ignored))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.skipped))

	assert.Panics(t, func() { NewMetrics(reg) }, "collectors register once per registry")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(Result{State: Generated}, 0)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "generating", Generating.String())
	assert.Equal(t, "generated", Generated.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "State(9)", State(9).String())
}
