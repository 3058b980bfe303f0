package objectlists

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrSyntax is returned when the rendered module does not parse as TypeScript.
var ErrSyntax = errors.New("generated module is not valid TypeScript")

var typeScriptLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())

func newTypeScriptParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(typeScriptLanguage); err != nil {
		parser.Close()
		return nil, err
	}
	return parser, nil
}

func withTypeScriptTree(src []byte, fn func(root *sitter.Node) error) error {
	parser, err := newTypeScriptParser()
	if err != nil {
		return fmt.Errorf("typescript parser: %w", err)
	}
	defer parser.Close()

	tree := parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("%w: parser returned no tree", ErrSyntax)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("%w: empty tree", ErrSyntax)
	}
	return fn(root)
}

// CheckSyntax parses src and reports the first ERROR or MISSING node.
func CheckSyntax(src []byte) error {
	return withTypeScriptTree(src, func(root *sitter.Node) error {
		if !root.HasError() {
			return nil
		}
		bad := root
		walkTreePreOrder(root, func(n *sitter.Node) bool {
			if n.IsError() || n.IsMissing() {
				bad = n
				return false
			}
			return true
		})
		pos := bad.StartPosition()
		return fmt.Errorf("%w: unexpected %s at line %d, column %d", ErrSyntax, bad.Kind(), pos.Row+1, pos.Column+1)
	})
}

// DeclaredConstants lists the names of the exported const declarations in src.
func DeclaredConstants(src []byte) ([]string, error) {
	var names []string
	err := withTypeScriptTree(src, func(root *sitter.Node) error {
		for i := uint(0); i < root.NamedChildCount(); i++ {
			stmt := root.NamedChild(i)
			if stmt == nil || stmt.Kind() != "export_statement" {
				continue
			}
			decl := stmt.ChildByFieldName("declaration")
			if decl == nil || decl.Kind() != "lexical_declaration" {
				continue
			}
			for j := uint(0); j < decl.NamedChildCount(); j++ {
				child := decl.NamedChild(j)
				if child == nil || child.Kind() != "variable_declarator" {
					continue
				}
				if name := child.ChildByFieldName("name"); name != nil {
					names = append(names, strings.TrimSpace(name.Utf8Text(src)))
				}
			}
		}
		return nil
	})
	return names, err
}

// verifyModule checks that content parses and declares every table.
func verifyModule(content string, tables []*Table) error {
	src := []byte(content)
	if err := CheckSyntax(src); err != nil {
		return err
	}
	declared, err := DeclaredConstants(src)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		seen[name] = struct{}{}
	}
	for _, t := range tables {
		if _, ok := seen[t.Name]; !ok {
			return fmt.Errorf("%w: table %s is not declared", ErrSyntax, t.Name)
		}
	}
	return nil
}

// walkTreePreOrder visits nodes depth first until visit returns false.
func walkTreePreOrder(root *sitter.Node, visit func(*sitter.Node) bool) {
	if root == nil || visit == nil {
		return
	}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			return
		}

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			child := node.Child(uint(i))
			if child != nil {
				stack = append(stack, child)
			}
		}
	}
}
