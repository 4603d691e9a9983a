package expr

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

var comparisons = map[string]bool{
	"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true,
}

func parse(formula, variable string) (Node, error) {
	tree, err := parser.Parse(formula)
	if err != nil {
		return nil, &SyntaxError{Formula: formula, Msg: err.Error()}
	}
	c := converter{formula: formula, variable: variable}
	return c.convert(tree.Node)
}

type converter struct {
	formula  string
	variable string
}

func (c converter) fail(format string, args ...any) error {
	return &SyntaxError{Formula: c.formula, Msg: fmt.Sprintf(format, args...)}
}

func (c converter) convert(n ast.Node) (Node, error) {
	switch n := n.(type) {
	case *ast.IntegerNode:
		return Num{float64(n.Value)}, nil
	case *ast.FloatNode:
		return Num{n.Value}, nil
	case *ast.IdentifierNode:
		return c.identifier(n.Value)
	case *ast.UnaryNode:
		return c.unary(n)
	case *ast.BinaryNode:
		return c.binary(n)
	case *ast.CallNode:
		ident, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, c.fail("unsupported call target")
		}
		return c.call(ident.Value, n.Arguments)
	case *ast.BuiltinNode:
		return c.call(n.Name, n.Arguments)
	}
	return nil, c.fail("unsupported syntax %T", n)
}

func (c converter) identifier(name string) (Node, error) {
	if name == c.variable {
		return Var{Name: name}, nil
	}
	if v, ok := constants[name]; ok {
		return Num{v}, nil
	}
	return nil, c.fail("unknown identifier %q (variable is %q)", name, c.variable)
}

func (c converter) unary(n *ast.UnaryNode) (Node, error) {
	x, err := c.convert(n.Node)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		return neg(x), nil
	case "+":
		return x, nil
	}
	return nil, c.fail("unsupported unary operator %q", n.Operator)
}

func (c converter) binary(n *ast.BinaryNode) (Node, error) {
	l, err := c.convert(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := c.convert(n.Right)
	if err != nil {
		return nil, err
	}
	switch op := n.Operator; {
	case op == "+" || op == "-" || op == "*" || op == "/":
		return Binary{Op: op[0], L: l, R: r}, nil
	case op == "^" || op == "**":
		return pow(l, r), nil
	case comparisons[op]:
		return Compare{Op: op, L: l, R: r}, nil
	}
	return nil, c.fail("unsupported operator %q", n.Operator)
}

func (c converter) call(name string, args []ast.Node) (Node, error) {
	if name == "pow" {
		if len(args) != 2 {
			return nil, c.fail("pow expects 2 arguments, got %d", len(args))
		}
		base, err := c.convert(args[0])
		if err != nil {
			return nil, err
		}
		exp, err := c.convert(args[1])
		if err != nil {
			return nil, err
		}
		return pow(base, exp), nil
	}

	if _, ok := builtins[name]; !ok {
		return nil, c.fail("unknown function %q", name)
	}
	if len(args) != 1 {
		return nil, c.fail("%s expects 1 argument, got %d", name, len(args))
	}
	arg, err := c.convert(args[0])
	if err != nil {
		return nil, err
	}
	return Call{Fn: name, Arg: arg}, nil
}
