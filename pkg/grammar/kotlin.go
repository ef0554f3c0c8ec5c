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

// Package grammar adapts the tree-sitter Kotlin grammar to syntree.
//
// The adapter's only contract is binary: a source text either becomes a
// *syntree.Node rooted at "source_file", or the call fails. Grammar
// correctness and error recovery belong to tree-sitter; the adapter only
// decides which of tree-sitter's error-tolerant results count as failures.
package grammar

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/kraklabs/kt2uml/pkg/syntree"
)

// Parser turns source text into a syntax tree. Parse is the only call in
// the pipeline that may block.
type Parser interface {
	Parse(ctx context.Context, src string) (*syntree.Node, error)
}

// Ensure implementations satisfy the interface
var _ Parser = (*KotlinParser)(nil)

// RootLabel is the label of the node returned by KotlinParser.Parse.
const RootLabel = "source_file"

// topLevelLabels are the node kinds a compilation unit may contain directly.
// Anything else (a bare expression, a loop) makes the document invalid:
// tree-sitter accepts Kotlin script syntax, a compilation unit does not.
var topLevelLabels = map[string]bool{
	"shebang_line":         true,
	"file_annotation":      true,
	"package_header":       true,
	"import_list":          true,
	"import_header":        true,
	"function_declaration": true,
	"class_declaration":    true,
	"object_declaration":   true,
	"property_declaration": true,
	"type_alias":           true,
}

var commentLabels = map[string]bool{
	"comment":           true,
	"line_comment":      true,
	"multiline_comment": true,
}

// Limits bounds the work done for one document. Zero disables a bound.
type Limits struct {
	// MaxSourceBytes rejects sources longer than this before parsing.
	MaxSourceBytes int

	// MaxDepth rejects syntax trees nested deeper than this. Type
	// resolution recurses once per level, so this also bounds it.
	MaxDepth int
}

// KotlinParser parses Kotlin compilation units with tree-sitter.
//
// A new tree-sitter parser is created for every call, so a single
// KotlinParser is safe for concurrent use.
type KotlinParser struct {
	limits Limits
	logger *slog.Logger
}

// NewKotlinParser creates a Kotlin adapter. A nil logger uses slog.Default().
func NewKotlinParser(limits Limits, logger *slog.Logger) *KotlinParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &KotlinParser{limits: limits, logger: logger}
}

// Parse parses src into a syntree rooted at RootLabel.
//
// It fails with *LimitError when src exceeds a configured bound and with
// *SyntaxError when tree-sitter reports an error or missing node, or when
// the document contains a top-level statement that is not a declaration.
func (p *KotlinParser) Parse(ctx context.Context, src string) (*syntree.Node, error) {
	if p.limits.MaxSourceBytes > 0 && len(src) > p.limits.MaxSourceBytes {
		return nil, &LimitError{Limit: "source bytes", Value: len(src), Max: p.limits.MaxSourceBytes}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(kotlin.GetLanguage())

	content := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		bad := firstError(rootNode)
		p.logger.Debug("grammar.kotlin.syntax_errors",
			"error_count", countErrors(rootNode),
			"first", pointPosition(bad.StartPoint()),
		)
		return nil, &SyntaxError{
			Pos:    pointPosition(bad.StartPoint()),
			Reason: describeError(bad),
		}
	}

	for i := 0; i < int(rootNode.NamedChildCount()); i++ {
		child := rootNode.NamedChild(i)
		if commentLabels[child.Type()] || topLevelLabels[child.Type()] {
			continue
		}
		return nil, &SyntaxError{
			Pos:    pointPosition(child.StartPoint()),
			Reason: fmt.Sprintf("expected a declaration, found %s", child.Type()),
		}
	}

	c := converter{src: src, maxDepth: p.limits.MaxDepth}
	root, err := c.convert(rootNode, 1)
	if err != nil {
		return nil, err
	}
	return root, nil
}

type converter struct {
	src      string
	maxDepth int
}

func (c *converter) convert(n *sitter.Node, depth int) (*syntree.Node, error) {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nil, &LimitError{Limit: "tree depth", Value: depth, Max: c.maxDepth}
	}

	out := &syntree.Node{
		Label: n.Type(),
		Text:  c.src[n.StartByte():n.EndByte()],
		Named: n.IsNamed(),
		Start: pointPosition(n.StartPoint()),
	}

	count := int(n.ChildCount())
	if count == 0 {
		return out, nil
	}
	out.Children = make([]*syntree.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || commentLabels[child.Type()] {
			continue
		}
		converted, err := c.convert(child, depth+1)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, converted)
	}
	return out, nil
}

// firstError returns the first error or missing node in source order. It
// falls back to n itself when HasError is set but no such node is found.
func firstError(n *sitter.Node) *sitter.Node {
	if isErrorNode(n) {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		return firstError(child)
	}
	return n
}

// countErrors counts error and missing nodes in the tree.
func countErrors(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if isErrorNode(n) {
		count++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		count += countErrors(n.Child(i))
	}
	return count
}

func isErrorNode(n *sitter.Node) bool {
	return n.Type() == "ERROR" || n.IsMissing()
}

func describeError(n *sitter.Node) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %s", n.Type())
	}
	return "unexpected input"
}

func pointPosition(p sitter.Point) syntree.Position {
	return syntree.Position{Line: int(p.Row), Column: int(p.Column)}
}
