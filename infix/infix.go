// Package infix parses and evaluates arithmetic expressions over
// exact decimals. It exists as a worked example of the comb API: the
// grammar is ordinary combinator composition, and the AST is whatever
// the Map functions build.
package infix

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tef/comb"
)

type Op rune

const (
	Mul Op = '*'
	Div Op = '/'
	Add Op = '+'
	Sub Op = '-'
)

// Expr is the parsed tree. Binary operators are left-nested, so
// "1-2-3" is (1-2)-3.
type Expr interface {
	Eval() (decimal.Decimal, error)
}

type Num struct {
	Value decimal.Decimal
}

type BinOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (n Num) Eval() (decimal.Decimal, error) {
	return n.Value, nil
}

func (b BinOp) Eval() (decimal.Decimal, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return decimal.Zero, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return decimal.Zero, err
	}
	switch b.Op {
	case Mul:
		return l.Mul(r), nil
	case Div:
		if r.IsZero() {
			return decimal.Zero, ErrDivideByZero
		}
		return l.Div(r), nil
	case Add:
		return l.Add(r), nil
	case Sub:
		return l.Sub(r), nil
	}
	return decimal.Zero, ErrBadExpr
}

var (
	ErrBadExpr      = errors.New("infix: bad expression")
	ErrDivideByZero = errors.New("infix: divide by zero")
)

var ws = comb.Regex(`[ \t]*`)

func lexeme[O any](p comb.Parser[O]) comb.Parser[O] {
	return comb.IgnoreLeft(ws, p)
}

func op(c rune) comb.Parser[Op] {
	return comb.Map(lexeme(comb.Char(c)), func(r rune) Op { return Op(r) })
}

// chain parses p (op p)* and folds the tail into left-nested BinOps.
func chain(p comb.Parser[Expr], ops comb.Parser[Op]) comb.Parser[Expr] {
	tail := comb.Repeat(comb.Concat(ops, p), 0)
	return comb.Map(comb.Concat(p, tail), func(v comb.Pair[Expr, []comb.Pair[Op, Expr]]) Expr {
		e := v.A
		for _, t := range v.B {
			e = BinOp{Op: t.A, Left: e, Right: t.B}
		}
		return e
	})
}

var expr comb.Parser[Expr]

var number = comb.Map(
	lexeme(comb.Regex(`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?`)),
	func(s string) Expr {
		// the regex only admits strings decimal accepts
		return Num{Value: decimal.RequireFromString(s)}
	},
)

var group = comb.IgnoreRight(
	comb.IgnoreLeft(lexeme(comb.Char('(')), comb.Ref(&expr)),
	lexeme(comb.Char(')')),
)

var factor = comb.Or(number, group)

var term = chain(factor, comb.Or(op('*'), op('/')))

func init() {
	expr = chain(term, comb.Or(op('+'), op('-')))
}

var statement = comb.IgnoreRight(comb.Ref(&expr), comb.IgnoreLeft(ws, comb.End()))

// Parse parses a whole expression, trailing whitespace included.
func Parse(s string) (Expr, error) {
	_, e, ok := statement(comb.NewGen(s))
	if !ok {
		return nil, ErrBadExpr
	}
	return e, nil
}

// Eval parses and evaluates in one step.
func Eval(s string) (decimal.Decimal, error) {
	e, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	return e.Eval()
}
