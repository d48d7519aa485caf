// Package parser implements Raoul's recursive-descent parser, turning a
// token stream into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ricglz/raoul/internal/ast"
	"github.com/ricglz/raoul/internal/diagnostics"
	"github.com/ricglz/raoul/internal/token"
	"github.com/ricglz/raoul/internal/types"
)

// Parser walks a flat token slice with one-token and two-token lookahead.
type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.peek()
	return token.Token{}, errors.WithStack(&diagnostics.ParseError{
		Line: tok.Line, Col: tok.Col,
		Expected: kind.String(), Got: fmt.Sprintf("%s(%q)", tok.Kind, tok.Lexeme),
	})
}

func (p *Parser) errorf(tok token.Token, expected string) error {
	return errors.WithStack(&diagnostics.ParseError{
		Line: tok.Line, Col: tok.Col,
		Expected: expected, Got: fmt.Sprintf("%s(%q)", tok.Kind, tok.Lexeme),
	})
}

//  Program / function structure

// Parse runs the full grammar over tokens: global_assignment* function*
// main_function EOI.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := New(tokens)
	prog := &ast.Program{}

	for p.check(token.IDENTIFIER) && p.peekNext().Kind == token.ASSIGN {
		assign, err := p.parseGlobalAssignment()
		if err != nil {
			return nil, err
		}
		prog.Globals = append(prog.Globals, assign)
	}

	for p.check(token.FUNC) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if fn.Name == "main" {
			prog.Main = fn
		} else {
			prog.Functions = append(prog.Functions, fn)
		}
	}

	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}

	return prog, nil
}

func (p *Parser) parseGlobalAssignment() (*ast.Assignment, error) {
	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Assignment{
		Target: &ast.Identifier{Name: nameTok.Lexeme, Line: nameTok.Line},
		Value:  value,
		Line:   nameTok.Line,
	}, nil
}

func (p *Parser) parseTypeKeyword() (types.Atomic, error) {
	tok := p.peek()
	var atomic types.Atomic
	switch tok.Kind {
	case token.INT:
		atomic = types.Int
	case token.FLOAT:
		atomic = types.Float
	case token.BOOL:
		atomic = types.Bool
	case token.STRING:
		atomic = types.String
	case token.DATAFRAME:
		atomic = types.Dataframe
	case token.VOID:
		atomic = types.Void
	default:
		return types.Invalid, p.errorf(tok, "a type (int, float, bool, string, dataframe, or void)")
	}
	p.advance()
	return atomic, nil
}

// parseArraySuffix parses an optional "[" INT_LIT "]" ("[" INT_LIT "]")?
// shape suffix on a type, used in parameter declarations.
func (p *Parser) parseArraySuffix() ([]int, error) {
	if !p.check(token.LBRACKET) {
		return nil, nil
	}
	p.advance()
	d1Tok, err := p.expect(token.INT_LIT)
	if err != nil {
		return nil, err
	}
	dims := []int{parseIntLexeme(d1Tok.Lexeme)}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	if p.match(token.LBRACKET) {
		d2Tok, err := p.expect(token.INT_LIT)
		if err != nil {
			return nil, err
		}
		dims = append(dims, parseIntLexeme(d2Tok.Lexeme))
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
	}
	return dims, nil
}

func parseIntLexeme(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.check(token.RPAREN) {
		return params, nil
	}
	for {
		atomic, err := p.parseTypeKeyword()
		if err != nil {
			return nil, err
		}
		dims, err := p.parseArraySuffix()
		if err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Lexeme, Type: types.Type{Atomic: atomic, Dims: dims}})
		if !p.match(token.COMMA) {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	funcTok, err := p.expect(token.FUNC)
	if err != nil {
		return nil, err
	}
	var name string
	if p.check(token.MAIN) {
		name = "main"
		p.advance()
	} else {
		nameTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		name = nameTok.Lexeme
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	retAtomic, err := p.parseTypeKeyword()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Name: name, Params: params,
		ReturnType: types.Scalar(retAtomic),
		Body:       body.(*ast.Block),
		Line:       funcTok.Line,
	}, nil
}

//  Statements

func (p *Parser) parseBlock() (ast.Stmt, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Line: lbrace.Line}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.GLOBAL:
		return p.parseAssignment(true)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.PRINT:
		return p.parsePrint()
	case token.INPUT:
		return p.parseInput()
	case token.RETURN:
		return p.parseReturn()
	case token.PLOT:
		return p.parsePlot()
	case token.HISTOGRAM:
		return p.parseHistogram()
	case token.IDENTIFIER:
		return p.parseIdentifierStatement()
	default:
		return nil, p.errorf(p.peek(), "a statement")
	}
}

// parseIdentifierStatement disambiguates `name = ...;`, `name[i] = ...;`,
// and `name(args);` (a void call used as a statement).
func (p *Parser) parseIdentifierStatement() (ast.Stmt, error) {
	if p.peekNext().Kind == token.LPAREN {
		line := p.peek().Line
		call, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: call, Line: line}, nil
	}
	return p.parseAssignment(false)
}

func (p *Parser) parseAssignment(global bool) (ast.Stmt, error) {
	line := p.peek().Line
	if global {
		p.advance() // consume "global"
	}
	target, err := p.parseAssignee()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Assignment{Target: target, Global: global, Value: value, Line: line}, nil
}

func (p *Parser) parseAssignee() (ast.Expr, error) {
	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if !p.check(token.LBRACKET) {
		return &ast.Identifier{Name: nameTok.Lexeme, Line: nameTok.Line}, nil
	}
	indices, err := p.parseIndexChain()
	if err != nil {
		return nil, err
	}
	return &ast.ArrayElement{Name: nameTok.Lexeme, Indices: indices, Line: nameTok.Line}, nil
}

func (p *Parser) parseIndexChain() ([]ast.Expr, error) {
	var indices []ast.Expr
	for p.match(token.LBRACKET) {
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		indices = append(indices, idx)
		if len(indices) == 2 {
			break
		}
	}
	return indices, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok, _ := p.expect(token.IF)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond, Then: thenBlock.(*ast.Block), Line: ifTok.Line}
	if p.match(token.ELSE) {
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock.(*ast.Block)
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	whileTok, _ := p.expect(token.WHILE)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body.(*ast.Block), Line: whileTok.Line}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	forTok, _ := p.expect(token.FOR)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TO); err != nil {
		return nil, err
	}
	limit, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Var: nameTok.Lexeme, Start: start, Limit: limit, Body: body.(*ast.Block), Line: forTok.Line}, nil
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	printTok, _ := p.expect(token.PRINT)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Print{Args: args, Line: printTok.Line}, nil
}

func (p *Parser) parseInput() (ast.Stmt, error) {
	inputTok, _ := p.expect(token.INPUT)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	target, err := p.parseAssignee()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Input{Target: target, Line: inputTok.Line}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok, _ := p.expect(token.RETURN)
	if p.match(token.SEMICOLON) {
		return &ast.Return{Line: retTok.Line}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Line: retTok.Line}, nil
}

func (p *Parser) parsePlot() (ast.Stmt, error) {
	plotTok, _ := p.expect(token.PLOT)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	df, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	xCol, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	yCol, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Plot{DF: df, XCol: xCol, YCol: yCol, Line: plotTok.Line}, nil
}

func (p *Parser) parseHistogram() (ast.Stmt, error) {
	histTok, _ := p.expect(token.HISTOGRAM)
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	df, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	col, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	bins, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Histogram{DF: df, Col: col, Bins: bins, Line: histTok.Line}, nil
}

//  Expressions: precedence climbing, lowest to highest.
//  or; and; equality (non-assoc); relational (non-assoc); additive;
//  multiplicative; unary not; primary.

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		opTok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

// parseEquality is non-associative: at most one ==/!= at this level.
func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	if p.check(token.EQ) || p.check(token.NEQ) {
		opTok := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}, nil
	}
	return left, nil
}

// parseRelational is non-associative: at most one of > >= < <= at this level.
func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.peek().Kind {
	case token.GT, token.GTE, token.LT, token.LTE:
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}, nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) {
		opTok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: opTok.Kind, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(token.NOT) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: opTok.Kind, Operand: operand, Line: opTok.Line}, nil
	}
	if p.check(token.MINUS) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.Literal{Type: types.Int, IntVal: 0, Line: opTok.Line}
		return &ast.BinaryOp{Op: token.MINUS, Left: zero, Right: operand, Line: opTok.Line}, nil
	}
	return p.parsePrimary()
}

var dataframeValueOps = map[token.Kind]bool{
	token.GET_ROWS: true, token.GET_COLUMNS: true, token.AVERAGE: true,
	token.STD: true, token.MEDIAN: true, token.VARIANCE: true,
	token.MIN: true, token.MAX: true, token.RANGE: true, token.CORRELATION: true,
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT_LIT:
		p.advance()
		return &ast.Literal{Type: types.Int, IntVal: int64(parseIntLexeme(tok.Lexeme)), Line: tok.Line}, nil
	case token.FLOAT_LIT:
		p.advance()
		return &ast.Literal{Type: types.Float, FloatVal: parseFloatLexeme(tok.Lexeme), Line: tok.Line}, nil
	case token.STRING_LIT:
		p.advance()
		return &ast.Literal{Type: types.String, StrVal: tok.Lexeme, Line: tok.Line}, nil
	case token.TRUE:
		p.advance()
		return &ast.Literal{Type: types.Bool, BoolVal: true, Line: tok.Line}, nil
	case token.FALSE:
		p.advance()
		return &ast.Literal{Type: types.Bool, BoolVal: false, Line: tok.Line}, nil
	case token.LBRACE:
		return p.parseArrayLiteral()
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.READ_CSV:
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		path, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ReadCSV{Path: path, Line: tok.Line}, nil
	case token.IDENTIFIER:
		return p.parseIdentifierPrimary()
	default:
		if dataframeValueOps[tok.Kind] {
			return p.parseDataframeOp()
		}
		return nil, p.errorf(tok, "an expression")
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expr, error) {
	lbrace, _ := p.expect(token.LBRACE)
	lit := &ast.ArrayLiteral{Line: lbrace.Line}
	if !p.check(token.RBRACE) {
		for {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, elem)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseIdentifierPrimary() (ast.Expr, error) {
	nameTok, _ := p.expect(token.IDENTIFIER)
	switch {
	case p.check(token.LPAREN):
		p.advance()
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Call{Callee: nameTok.Lexeme, Args: args, Line: nameTok.Line}, nil
	case p.check(token.LBRACKET):
		indices, err := p.parseIndexChain()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayElement{Name: nameTok.Lexeme, Indices: indices, Line: nameTok.Line}, nil
	default:
		return &ast.Identifier{Name: nameTok.Lexeme, Line: nameTok.Line}, nil
	}
}

func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(token.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.COMMA) {
			break
		}
	}
	return args, nil
}

func (p *Parser) parseDataframeOp() (ast.Expr, error) {
	opTok := p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	df, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := &ast.DataframeOp{Op: opTok.Kind, DF: df, Line: opTok.Line}
	for p.match(token.COMMA) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, arg)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return node, nil
}

func parseFloatLexeme(s string) float64 {
	var whole, frac int64
	var fracDigits int
	i := 0
	for i < len(s) && s[i] != '.' {
		whole = whole*10 + int64(s[i]-'0')
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) {
			frac = frac*10 + int64(s[i]-'0')
			fracDigits++
			i++
		}
	}
	result := float64(whole)
	if fracDigits > 0 {
		div := 1.0
		for k := 0; k < fracDigits; k++ {
			div *= 10
		}
		result += float64(frac) / div
	}
	return result
}
