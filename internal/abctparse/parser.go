// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package abctparse implements a structural, recursive-descent parser for
// ABCT programs, following the cursor shape of internal/abcparse.Parser
// (peek/advance/check/match, an errorExpr recovery helper, and
// resynchronization to the next statement boundary) adapted to ABCT's
// token set and grammar. It validates the shape of let/fn/match/pipe
// programs; it never executes them.
package abctparse

import (
	"fmt"

	"github.com/abctools/abcc/internal/abctast"
	"github.com/abctools/abcc/internal/abcttok"
	"github.com/abctools/abcc/internal/source"
)

type Parser struct {
	ctx    *source.Context
	tokens []abcttok.Token
	pos    int
}

func New(ctx *source.Context, tokens []abcttok.Token) *Parser {
	return &Parser{ctx: ctx, tokens: tokens}
}

// Parse runs the parser to completion and returns the program. It never
// panics; unparseable statements become ExprStmt{ErrorExpr}.
func Parse(ctx *source.Context, tokens []abcttok.Token) *abctast.Program {
	p := New(ctx, tokens)
	return p.parseProgram()
}

// ---- cursor -----------------------------------------------------------------

func (p *Parser) peek() abcttok.Token {
	if p.pos >= len(p.tokens) {
		return abcttok.Token{Type: abcttok.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == abcttok.EOF }

func (p *Parser) advance() abcttok.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k abcttok.Type) bool { return p.peek().Type == k }

func (p *Parser) checkAny(ks ...abcttok.Type) bool {
	for _, k := range ks {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) match(ks ...abcttok.Type) (abcttok.Token, bool) {
	if p.checkAny(ks...) {
		return p.advance(), true
	}
	return abcttok.Token{}, false
}

// skipTrivia consumes whitespace, EOL, and comment tokens, which carry no
// grammatical meaning in ABCT beyond separating statements.
func (p *Parser) skipTrivia() {
	for p.checkAny(abcttok.WHITESPACE, abcttok.EOL, abcttok.COMMENT) {
		p.advance()
	}
}

func (p *Parser) want(k abcttok.Type) (abcttok.Token, bool) {
	p.skipTrivia()
	if p.check(k) {
		return p.advance(), true
	}
	p.errorExpected(k)
	return abcttok.Token{}, false
}

func (p *Parser) errorExpected(k abcttok.Type) {
	found := p.peek()
	p.reportf("expected %s, found %s", k, found.Type)
}

func (p *Parser) reportf(format string, args ...any) {
	if p.ctx == nil {
		return
	}
	t := p.peek()
	p.ctx.Report(source.KindParser, fmt.Sprintf(format, args...), source.Position{
		Line: t.Line, Column: t.Column, Offset: t.Offset,
	}, nil)
}

var syncBoundary = []abcttok.Type{abcttok.EOL, abcttok.EOF}

func (p *Parser) errorExpr(expected, message string) *abctast.ErrorExpr {
	start := p.pos
	if !p.isAtEnd() && !p.checkAny(syncBoundary...) {
		p.advance()
	}
	for !p.isAtEnd() && !p.checkAny(syncBoundary...) {
		p.advance()
	}
	e := &abctast.ErrorExpr{
		Tokens:   append([]abcttok.Token(nil), p.tokens[start:p.pos]...),
		Expected: expected,
		Message:  message,
	}
	p.reportf("%s", message)
	return e
}

// ---- program / statements ---------------------------------------------------

func (p *Parser) parseProgram() *abctast.Program {
	prog := &abctast.Program{}
	for {
		p.skipTrivia()
		if p.isAtEnd() {
			break
		}
		prog.Stmts = append(prog.Stmts, p.parseStmt())
	}
	return prog
}

func (p *Parser) parseStmt() abctast.Stmt {
	switch {
	case p.check(abcttok.LET):
		return p.parseLet()
	case p.check(abcttok.FN):
		return p.parseFn()
	case p.check(abcttok.LOAD):
		return p.parseLoad()
	default:
		return &abctast.ExprStmt{Expr: p.parsePipeline()}
	}
}

func (p *Parser) parseLet() abctast.Stmt {
	p.advance() // "let"
	name, _ := p.want(abcttok.IDENTIFIER)
	p.skipTrivia()
	if _, ok := p.match(abcttok.EQ); !ok {
		return &abctast.ExprStmt{Expr: p.errorExpr("=", "expected '=' in let binding")}
	}
	return &abctast.LetStmt{Name: name, Value: p.parsePipeline()}
}

func (p *Parser) parseFn() abctast.Stmt {
	p.advance() // "fn"
	name, _ := p.want(abcttok.IDENTIFIER)
	p.skipTrivia()
	var params []abcttok.Token
	if _, ok := p.match(abcttok.LPAREN); ok {
		for {
			p.skipTrivia()
			if p.check(abcttok.RPAREN) || p.isAtEnd() {
				break
			}
			if t, ok := p.match(abcttok.IDENTIFIER); ok {
				params = append(params, t)
			} else {
				p.advance()
			}
			p.skipTrivia()
			if _, ok := p.match(abcttok.COMMA); !ok {
				break
			}
		}
		p.skipTrivia()
		p.match(abcttok.RPAREN)
	}
	p.skipTrivia()
	p.match(abcttok.EQ)
	return &abctast.FnStmt{Name: name, Params: params, Body: p.parsePipeline()}
}

func (p *Parser) parseLoad() abctast.Stmt {
	p.advance() // "load"
	p.skipTrivia()
	path, ok := p.want(abcttok.STRING)
	if !ok {
		return &abctast.ExprStmt{Expr: p.errorExpr("STRING", "expected a path string after load")}
	}
	return &abctast.LoadStmt{Path: path}
}

// ---- expressions -------------------------------------------------------------

// parsePipeline parses a '|'-chained sequence of stages, left-associative.
func (p *Parser) parsePipeline() abctast.Expr {
	first := p.parseOr()
	stages := []abctast.Expr{first}
	for {
		p.skipTrivia()
		if _, ok := p.match(abcttok.PIPE, abcttok.PIPE_EQ); !ok {
			break
		}
		p.skipTrivia()
		stages = append(stages, p.parseOr())
	}
	if len(stages) == 1 {
		return stages[0]
	}
	return &abctast.Pipeline{Stages: stages}
}

func (p *Parser) parseOr() abctast.Expr {
	left := p.parseAnd()
	for {
		p.skipTrivia()
		if _, ok := p.match(abcttok.OR); !ok {
			break
		}
		op := p.tokens[p.pos-1]
		p.skipTrivia()
		left = &abctast.BinaryExpr{Left: left, Op: op, Right: p.parseAnd()}
	}
	return left
}

func (p *Parser) parseAnd() abctast.Expr {
	left := p.parseNot()
	for {
		p.skipTrivia()
		if _, ok := p.match(abcttok.AND); !ok {
			break
		}
		op := p.tokens[p.pos-1]
		p.skipTrivia()
		left = &abctast.BinaryExpr{Left: left, Op: op, Right: p.parseNot()}
	}
	return left
}

func (p *Parser) parseNot() abctast.Expr {
	p.skipTrivia()
	if t, ok := p.match(abcttok.NOT); ok {
		p.skipTrivia()
		return &abctast.UnaryExpr{Op: t, Operand: p.parseNot()}
	}
	return p.parseComparison()
}

var comparisonOps = []abcttok.Type{abcttok.LT, abcttok.GT, abcttok.LE, abcttok.GE, abcttok.EQEQ, abcttok.NEQ}

func (p *Parser) parseComparison() abctast.Expr {
	left := p.parsePrimary()
	p.skipTrivia()
	if op, ok := p.match(comparisonOps...); ok {
		p.skipTrivia()
		return &abctast.BinaryExpr{Left: left, Op: op, Right: p.parsePrimary()}
	}
	return left
}

func (p *Parser) parsePrimary() abctast.Expr {
	p.skipTrivia()
	switch {
	case p.check(abcttok.MATCH):
		return p.parseMatch()
	case p.checkAny(abcttok.TOPDOWN, abcttok.BOTTOMUP, abcttok.ONCETD, abcttok.ALLTD, abcttok.OVER):
		return p.parseCall()
	case p.check(abcttok.IDENTIFIER):
		return p.parseIdentOrCall()
	case p.check(abcttok.NUMBER):
		return &abctast.NumberLit{Token: p.advance()}
	case p.check(abcttok.STRING):
		return &abctast.StringLit{Token: p.advance()}
	case p.checkAny(abcttok.ABC_FENCE_OPEN, abcttok.ABC_LITERAL_OPEN):
		return p.parseAbcLit()
	case p.check(abcttok.LPAREN):
		p.advance()
		inner := p.parsePipeline()
		p.skipTrivia()
		p.match(abcttok.RPAREN)
		return inner
	default:
		return p.errorExpr("expression", fmt.Sprintf("unexpected token %s in expression", p.peek().Type))
	}
}

func (p *Parser) parseIdentOrCall() abctast.Expr {
	name := p.advance()
	p.skipTrivia()
	if p.check(abcttok.LPAREN) {
		return p.finishCall(name)
	}
	return &abctast.Ident{Token: name}
}

// parseCall handles the built-in traversal-strategy keywords, which are
// always applied as strategy(rule) or strategy(rule1, rule2, ...).
func (p *Parser) parseCall() abctast.Expr {
	name := p.advance()
	p.skipTrivia()
	if !p.check(abcttok.LPAREN) {
		return &abctast.Ident{Token: name}
	}
	return p.finishCall(name)
}

func (p *Parser) finishCall(name abcttok.Token) abctast.Expr {
	p.advance() // "("
	var args []abctast.Expr
	for {
		p.skipTrivia()
		if p.check(abcttok.RPAREN) || p.isAtEnd() {
			break
		}
		args = append(args, p.parsePipeline())
		p.skipTrivia()
		if _, ok := p.match(abcttok.COMMA); !ok {
			break
		}
	}
	p.skipTrivia()
	p.match(abcttok.RPAREN)
	return &abctast.Call{Name: name, Args: args}
}

func (p *Parser) parseAbcLit() abctast.Expr {
	open := p.advance()
	lit := &abctast.AbcLit{Open: open}
	closeKind := abcttok.ABC_FENCE_CLOSE
	contentKind := abcttok.ABC_CONTENT
	if open.Type == abcttok.ABC_LITERAL_OPEN {
		closeKind = abcttok.ABC_LITERAL_CLOSE
		contentKind = abcttok.ABC_LITERAL_CONTENT
	}
	if p.check(contentKind) {
		t := p.advance()
		lit.Content = &t
	}
	if p.check(closeKind) {
		lit.Close = p.advance()
	} else {
		p.reportf("unterminated ABC literal")
	}
	return lit
}

func (p *Parser) parseMatch() abctast.Expr {
	p.advance() // "match"
	p.skipTrivia()
	subject := p.parsePrimary()
	p.skipTrivia()
	p.match(abcttok.LBRACE)
	m := &abctast.MatchExpr{Subject: subject}
	for {
		p.skipTrivia()
		if p.check(abcttok.RBRACE) || p.isAtEnd() {
			break
		}
		if _, ok := p.match(abcttok.ELSE); ok {
			p.skipTrivia()
			p.match(abcttok.THEN)
			p.skipTrivia()
			m.Else = p.parsePipeline()
			p.skipTrivia()
			continue
		}
		pattern := p.parsePipeline()
		p.skipTrivia()
		p.match(abcttok.THEN)
		p.skipTrivia()
		value := p.parsePipeline()
		m.Arms = append(m.Arms, abctast.MatchArm{Pattern: pattern, Value: value})
		p.skipTrivia()
	}
	p.skipTrivia()
	p.match(abcttok.RBRACE)
	return m
}
