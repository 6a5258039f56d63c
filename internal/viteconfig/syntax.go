package viteconfig

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// CheckSyntax parses src as TypeScript and reports the first syntax error.
// It is a sanity check on generated output; nothing is extracted from the
// tree.
func CheckSyntax(ctx context.Context, src []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("parsing typescript: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	if n := firstError(root); n != nil {
		p := n.StartPoint()
		if n.IsMissing() {
			return fmt.Errorf("syntax error at %d:%d: missing %s", p.Row+1, p.Column+1, n.Type())
		}
		return fmt.Errorf("syntax error at %d:%d near %q", p.Row+1, p.Column+1, snippet(n.Content(src)))
	}
	return fmt.Errorf("syntax error")
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

func snippet(s string) string {
	const max = 40
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
