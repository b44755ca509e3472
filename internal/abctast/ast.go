// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abctast defines the (structural-only) AST for ABCT programs:
// let/fn bindings and over/match/topdown-style pipe chains composed from
// identifiers, numbers, strings, and fenced ABC literals. It exists to
// validate an ABCT program's shape; executing it is out of scope, the same
// way the ABC interpreter is out of scope for internal/abcast.
package abctast

import "github.com/abctools/abcc/internal/abcttok"

// Node is the common interface over every ABCT AST node.
type Node interface {
	abctNode()
}

// Program is the root: a sequence of top-level statements.
type Program struct {
	Stmts []Stmt
}

// Stmt is one top-level form.
type Stmt interface {
	Node
	stmt()
}

// LetStmt binds Name to Value for the remainder of the program.
type LetStmt struct {
	Name  abcttok.Token
	Value Expr
}

func (*LetStmt) abctNode() {}
func (*LetStmt) stmt()     {}

// FnStmt declares a named transformation taking Params, whose body is a
// pipe expression.
type FnStmt struct {
	Name   abcttok.Token
	Params []abcttok.Token
	Body   Expr
}

func (*FnStmt) abctNode() {}
func (*FnStmt) stmt()     {}

// LoadStmt pulls in another ABCT source file by path, e.g. `load "lib.abct"`.
type LoadStmt struct {
	Path abcttok.Token // STRING
}

func (*LoadStmt) abctNode() {}
func (*LoadStmt) stmt()     {}

// ExprStmt is a bare pipeline evaluated for its effect.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) abctNode() {}
func (*ExprStmt) stmt()     {}

// Expr is any value-producing ABCT expression.
type Expr interface {
	Node
	expr()
}

// Pipeline is a left-to-right chain "a | b | c"; a stage may also be
// joined with "|=". Stages[0] is the source.
type Pipeline struct {
	Stages []Expr
}

func (*Pipeline) abctNode() {}
func (*Pipeline) expr()     {}

// Call is fn-name(args...) application, including the built-in traversal
// strategies (topdown, bottomup, oncetd, alltd) applied to a rule.
type Call struct {
	Name abcttok.Token
	Args []Expr
}

func (*Call) abctNode() {}
func (*Call) expr()     {}

// Ident references a let/fn-bound name or a bare identifier.
type Ident struct {
	Token abcttok.Token
}

func (*Ident) abctNode() {}
func (*Ident) expr()     {}

// NumberLit is an integer, decimal, or fraction literal.
type NumberLit struct {
	Token abcttok.Token
}

func (*NumberLit) abctNode() {}
func (*NumberLit) expr()     {}

// StringLit is a double-quoted string literal.
type StringLit struct {
	Token abcttok.Token
}

func (*StringLit) abctNode() {}
func (*StringLit) expr()     {}

// AbcLit wraps a fenced or single-line ABC literal. Content is the raw
// (un-sanitized) source text recovered from the scanner's content token(s).
type AbcLit struct {
	Open    abcttok.Token
	Content *abcttok.Token // nil for an empty fence/literal
	Close   abcttok.Token
}

func (*AbcLit) abctNode() {}
func (*AbcLit) expr()     {}

// MatchArm is one "pattern then value" branch of a MatchExpr.
type MatchArm struct {
	Pattern Expr
	Value   Expr
}

// MatchExpr is `match <subject> { pattern then value ... else value }`.
type MatchExpr struct {
	Subject Expr
	Arms    []MatchArm
	Else    Expr // nil if no else-arm
}

func (*MatchExpr) abctNode() {}
func (*MatchExpr) expr()     {}

// BinaryExpr covers `and`/`or` boolean composition and comparison
// operators (< > <= >= == !=) used inside match guards.
type BinaryExpr struct {
	Left  Expr
	Op    abcttok.Token
	Right Expr
}

func (*BinaryExpr) abctNode() {}
func (*BinaryExpr) expr()     {}

// UnaryExpr covers `not expr`.
type UnaryExpr struct {
	Op      abcttok.Token
	Operand Expr
}

func (*UnaryExpr) abctNode() {}
func (*UnaryExpr) expr()     {}

// ErrorExpr is a syntactically unplaceable run of tokens, mirroring
// internal/abcast.ErrorExpr's recovery role.
type ErrorExpr struct {
	Tokens   []abcttok.Token
	Expected string
	Message  string
}

func (*ErrorExpr) abctNode() {}
func (*ErrorExpr) expr()     {}
