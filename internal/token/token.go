// Package token defines the position information attached to every AST node.
package token

import "fmt"

// Position is a line/column pair, 1-based, as produced by the external
// tokenizer/parser. The analyzer never constructs positions itself; it only
// ever reads them off an ast.Node and threads them into diagnostics.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Zero reports whether the position was never set by the node builder.
func (p Position) Zero() bool {
	return p.Line == 0 && p.Column == 0
}
