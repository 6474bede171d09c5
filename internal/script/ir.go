// Package script compiles a config.TestConfig into a k6 JavaScript test.
//
// Emission goes through a small statement/expression tree (this file)
// rendered by a single printer (printer.go). All quoting and escaping rules
// live in the printer, so emitters never build JavaScript text by hand.
package script

import "strconv"

// Expr is a JavaScript expression node.
type Expr interface {
	exprNode()
}

// Stmt is a JavaScript statement node.
type Stmt interface {
	stmtNode()
}

// Str is a single-quoted string literal.
type Str string

// Raw is JavaScript source passed through untouched, such as a check condition.
type Raw string

// Ident is a bare identifier reference.
type Ident string

// TemplatePart is one piece of a template literal: literal text, or an
// interpolated expression when Expr is set.
type TemplatePart struct {
	Text string
	Expr Expr
}

// Template is a backtick template literal.
type Template struct {
	Parts []TemplatePart
}

// Member is a property access X.Name. Name is written verbatim, so it may
// carry a dotted or indexed path.
type Member struct {
	X    Expr
	Name string
}

// Call is a function call.
type Call struct {
	Fn   Expr
	Args []Expr
}

// Prop is an object property. Keys that are not identifiers, or that set
// Quoted, are written as string literals.
type Prop struct {
	Key    string
	Value  Expr
	Quoted bool
}

// Object is an object literal. Inline objects print on one line; the rest
// print one property per line with trailing commas.
type Object struct {
	Props  []Prop
	Inline bool
}

// Array is an array literal.
type Array struct {
	Elems  []Expr
	Inline bool
}

// Arrow is an expression-bodied arrow function.
type Arrow struct {
	Params []string
	Body   Expr
}

// FuncExpr is an anonymous function expression.
type FuncExpr struct {
	Body []Stmt
}

// Binary is X Op Y. Operands are printed as is; callers nest them in an
// order that needs no parentheses.
type Binary struct {
	Op string
	X  Expr
	Y  Expr
}

func (Str) exprNode()      {}
func (Raw) exprNode()      {}
func (Ident) exprNode()    {}
func (Template) exprNode() {}
func (Member) exprNode()   {}
func (Call) exprNode()     {}
func (*Object) exprNode()  {}
func (Array) exprNode()    {}
func (Arrow) exprNode()    {}
func (FuncExpr) exprNode() {}
func (Binary) exprNode()   {}

// Int is an integer literal.
func Int(n int) Expr {
	return Raw(strconv.Itoa(n))
}

// Float is a number literal in its shortest exact form (1, 0.5, 2.25).
func Float(f float64) Expr {
	return Raw(formatNumber(f))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Comment is a // line comment.
type Comment string

// BlockComment is a /* */ block, or a /** */ block when Doc is set.
type BlockComment struct {
	Lines []string
	Doc   bool
}

// Blank is an empty line.
type Blank struct{}

// Import is an ES module import. Default and Names may both be set.
type Import struct {
	Default string
	Names   []string
	From    string
}

// Decl declares a variable. Kind is "const" or "let".
type Decl struct {
	Kind   string
	Name   string
	Value  Expr
	Export bool
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	X Expr
}

// Assign is Target = Value.
type Assign struct {
	Target Expr
	Value  Expr
}

// If is a conditional without an else branch.
type If struct {
	Cond Expr
	Then []Stmt
}

// Func is a named function declaration.
type Func struct {
	Name    string
	Body    []Stmt
	Export  bool
	Default bool
}

// Case is one switch branch.
type Case struct {
	Value Expr
	Body  []Stmt
}

// Switch dispatches on Tag. Each case body is followed by a break.
type Switch struct {
	Tag   Expr
	Cases []Case
}

func (Comment) stmtNode()      {}
func (BlockComment) stmtNode() {}
func (Blank) stmtNode()        {}
func (Import) stmtNode()       {}
func (Decl) stmtNode()         {}
func (ExprStmt) stmtNode()     {}
func (Assign) stmtNode()       {}
func (If) stmtNode()           {}
func (Func) stmtNode()         {}
func (Switch) stmtNode()       {}

// Const declares a constant.
func Const(name string, value Expr) Decl {
	return Decl{Kind: "const", Name: name, Value: value}
}

// CallStmt calls fn(args...) as a statement.
func CallStmt(fn Expr, args ...Expr) ExprStmt {
	return ExprStmt{X: Call{Fn: fn, Args: args}}
}
