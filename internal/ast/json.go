package ast

import (
	"encoding/json"
	"fmt"

	"github.com/jingwhale/blockpy/internal/token"
)

// wire is the on-the-wire shape for any Node: a discriminator (mirroring
// the input convention's `_astname`) plus a position and a bag of
// raw-encoded children, decoded on demand by fromWire. This lets the CLI
// and gRPC hosts exchange ASTs as plain JSON without depending on
// whatever concrete parser produced them.
type wire struct {
	Type    string            `json:"_astname"`
	Line    int               `json:"lineno"`
	Column  int               `json:"col_offset"`
	Id      string            `json:"id,omitempty"`
	Ctx     string            `json:"ctx,omitempty"`
	Op      string            `json:"op,omitempty"`
	Name    string            `json:"name,omitempty"`
	Attr    string            `json:"attr,omitempty"`
	Params  []string          `json:"params,omitempty"`
	NumVal  float64           `json:"num,omitempty"`
	StrVal  string            `json:"str,omitempty"`
	BoolVal bool              `json:"bool,omitempty"`
	Left    json.RawMessage   `json:"left,omitempty"`
	Right   json.RawMessage   `json:"right,omitempty"`
	Operand json.RawMessage   `json:"operand,omitempty"`
	Func    json.RawMessage   `json:"func,omitempty"`
	Value   json.RawMessage   `json:"value,omitempty"`
	Test    json.RawMessage   `json:"test,omitempty"`
	Iter    json.RawMessage   `json:"iter,omitempty"`
	Target  json.RawMessage   `json:"target,omitempty"`
	Elt     json.RawMessage   `json:"elt,omitempty"`
	Index   json.RawMessage   `json:"slice,omitempty"`
	Context json.RawMessage   `json:"context_expr,omitempty"`
	Item    json.RawMessage   `json:"optional_vars,omitempty"`
	Args    []json.RawMessage `json:"args,omitempty"`
	Targets []json.RawMessage `json:"targets,omitempty"`
	Body    []json.RawMessage `json:"body,omitempty"`
	Orelse  []json.RawMessage `json:"orelse,omitempty"`
	Elts    []json.RawMessage `json:"elts,omitempty"`
	Keys    []json.RawMessage `json:"keys,omitempty"`
	Values  []json.RawMessage `json:"values,omitempty"`
}

func pos(w wire) token.Position { return token.Position{Line: w.Line, Column: w.Column} }

func decodeNode(raw json.RawMessage) (Node, error) {
	if raw == nil {
		return nil, nil
	}
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("ast: decode node: %w", err)
	}
	return fromWire(w)
}

func decodeMany(raws []json.RawMessage) ([]Node, error) {
	out := make([]Node, 0, len(raws))
	for _, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func fromWire(w wire) (Node, error) {
	p := pos(w)
	switch w.Type {
	case "Module":
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		return &Module{base{p}, body}, nil
	case "Assign":
		targets, err := decodeMany(w.Targets)
		if err != nil {
			return nil, err
		}
		value, err := decodeNode(w.Value)
		if err != nil {
			return nil, err
		}
		return &Assign{base{p}, targets, value}, nil
	case "BinOp":
		left, err := decodeNode(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(w.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{base{p}, w.Op, left, right}, nil
	case "UnaryOp":
		operand, err := decodeNode(w.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{base{p}, w.Op, operand}, nil
	case "Call":
		fn, err := decodeNode(w.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeMany(w.Args)
		if err != nil {
			return nil, err
		}
		return &Call{base{p}, fn, args}, nil
	case "If":
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeMany(w.Orelse)
		if err != nil {
			return nil, err
		}
		return &If{base{p}, test, body, orelse}, nil
	case "While":
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeMany(w.Orelse)
		if err != nil {
			return nil, err
		}
		return &While{base{p}, test, body, orelse}, nil
	case "For":
		target, err := decodeNode(w.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeNode(w.Iter)
		if err != nil {
			return nil, err
		}
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeMany(w.Orelse)
		if err != nil {
			return nil, err
		}
		return &For{base{p}, target, iter, body, orelse}, nil
	case "ListComp":
		elt, err := decodeNode(w.Elt)
		if err != nil {
			return nil, err
		}
		target, err := decodeNode(w.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeNode(w.Iter)
		if err != nil {
			return nil, err
		}
		return &ListComp{base{p}, elt, target, iter}, nil
	case "FunctionDef":
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		return &FunctionDef{base{p}, w.Name, w.Params, body}, nil
	case "Return":
		value, err := decodeNode(w.Value)
		if err != nil {
			return nil, err
		}
		return &Return{base{p}, value}, nil
	case "Attribute":
		value, err := decodeNode(w.Value)
		if err != nil {
			return nil, err
		}
		return &Attribute{base{p}, value, w.Attr}, nil
	case "Subscript":
		value, err := decodeNode(w.Value)
		if err != nil {
			return nil, err
		}
		index, err := decodeNode(w.Index)
		if err != nil {
			return nil, err
		}
		return &Subscript{base{p}, value, index}, nil
	case "Name":
		ctx := Load
		switch w.Ctx {
		case "Store":
			ctx = Store
		case "Del":
			ctx = Del
		}
		return &Name{base{p}, w.Id, ctx}, nil
	case "Num":
		return &Num{base{p}, w.NumVal}, nil
	case "Str":
		return &Str{base{p}, w.StrVal}, nil
	case "Bool":
		return &Bool{base{p}, w.BoolVal}, nil
	case "NoneLiteral":
		return &NoneLiteral{base{p}}, nil
	case "List":
		elts, err := decodeMany(w.Elts)
		if err != nil {
			return nil, err
		}
		return &List{base{p}, elts}, nil
	case "Tuple":
		elts, err := decodeMany(w.Elts)
		if err != nil {
			return nil, err
		}
		return &Tuple{base{p}, elts}, nil
	case "Dict":
		keys, err := decodeMany(w.Keys)
		if err != nil {
			return nil, err
		}
		values, err := decodeMany(w.Values)
		if err != nil {
			return nil, err
		}
		if len(keys) != len(values) {
			return nil, fmt.Errorf("ast: Dict has %d keys but %d values", len(keys), len(values))
		}
		entries := make([]DictEntry, len(keys))
		for i := range keys {
			entries[i] = DictEntry{Key: keys[i], Value: values[i]}
		}
		return &Dict{base{p}, entries}, nil
	case "Set":
		elts, err := decodeMany(w.Elts)
		if err != nil {
			return nil, err
		}
		return &SetLit{base{p}, elts}, nil
	case "With":
		ctxExpr, err := decodeNode(w.Context)
		if err != nil {
			return nil, err
		}
		item, err := decodeNode(w.Item)
		if err != nil {
			return nil, err
		}
		body, err := decodeMany(w.Body)
		if err != nil {
			return nil, err
		}
		return &With{base{p}, ctxExpr, item, body}, nil
	case "Pass":
		return &Pass{base{p}}, nil
	default:
		return nil, fmt.Errorf("ast: unrecognized _astname %q", w.Type)
	}
}

// DecodeModule parses a JSON-encoded Module, the shape the CLI and gRPC
// hosts both accept in place of a live tokenizer/parser.
func DecodeModule(data []byte) (*Module, error) {
	n, err := decodeNode(json.RawMessage(data))
	if err != nil {
		return nil, err
	}
	mod, ok := n.(*Module)
	if !ok {
		return nil, fmt.Errorf("ast: top-level node is not a Module")
	}
	return mod, nil
}
