/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Filter expression grammar:
//
//	filters    = condition { operand condition }
//	condition  = "(" filters ")" | comparison
//	comparison = field operator [ value | "(" [ value { "," value } ] ")" ]
//	field      = ident [ "." ident ] [ "(" ident [ "." ident ] ")" ]
//
// Field with parentheses is a function call: `UPPER(name)`.

type filtersAST struct {
	First *conditionAST `parser:"@@"`
	Rest  []*joinedAST  `parser:"@@*"`
}

type joinedAST struct {
	Operand string        `parser:"@Operand"`
	Cond    *conditionAST `parser:"@@"`
}

type conditionAST struct {
	Group *filtersAST    `parser:"  '(' @@ ')'"`
	Cmp   *comparisonAST `parser:"| @@"`
}

type comparisonAST struct {
	Pos      lexer.Position
	Field    *fieldAST   `parser:"@@"`
	Operator string      `parser:"( @Operator | @CmpOp )"`
	List     []*valueAST `parser:"( ( '(' ( @@ ( ',' @@ )* )? ')' )"`
	Value    *valueAST   `parser:"| @@ )?"`
}

type fieldAST struct {
	Parts []string     `parser:"@Ident ( '.' @Ident )?"`
	Arg   *fieldRefAST `parser:"( '(' @@ ')' )?"`
}

type fieldRefAST struct {
	Parts []string `parser:"@Ident ( '.' @Ident )?"`
}

type valueAST struct {
	String  *string `parser:"  @String"`
	Number  *string `parser:"| @Number"`
	Keyword *string `parser:"| @Keyword"`
	Word    *string `parser:"| @Ident"`
}

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `("(\\"|[^"])*")|('(\\'|[^'])*')`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?`},
	{Name: "Operator", Pattern: `(?i)(IS\s+NOT\s+NULL|IS\s+NULL|IS\s+NOT|NOT\s+LIKE|NOT\s+IN|NOT\s+REGEXP|FIND_IN_SET|LIKE|REGEXP|IN|IS|MOD)\b`},
	{Name: "Operand", Pattern: `(?i)(AND|OR|XOR)\b|&&|\|\|`},
	{Name: "Keyword", Pattern: `(?i)(NULL|TRUE|FALSE)\b`},
	{Name: "CmpOp", Pattern: `!=|<>|<=|>=|=|<|>|%`},
	{Name: "Ident", Pattern: `[a-zA-Z_][\w\-]*`},
	{Name: "Punct", Pattern: `[(),.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var dslParser = participle.MustBuild[filtersAST](
	participle.Lexer(dslLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// Parses filter expression into list of filters.
//
// Example:
//
//	name LIKE 'A%' AND (age >= 18 OR UPPER(role) IN ('ADMIN', 'OWNER')) AND deleted IS NULL
func ParseFilters(s string) ([]*Filter, error) {
	ast, err := dslParser.ParseString("", s)
	if err != nil {
		return nil, ErrInvalidArgument("can not parse filter expression «%s»: %v", s, err)
	}
	return ast.build()
}

func (a *filtersAST) build() ([]*Filter, error) {
	first, err := a.First.build()
	if err != nil {
		return nil, err
	}
	res := []*Filter{first}
	for _, j := range a.Rest {
		f, err := j.Cond.build()
		if err != nil {
			return nil, err
		}
		op := j.Operand
		switch op {
		case "&&":
			op = "AND"
		case "||":
			op = "OR"
		}
		if err := f.SetOperand(op); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

func (c *conditionAST) build() (*Filter, error) {
	if c.Group != nil {
		nested, err := c.Group.build()
		if err != nil {
			return nil, err
		}
		f := NewFilter()
		f.SetFilters(nested)
		return f, nil
	}
	return c.Cmp.build()
}

func (c *comparisonAST) build() (*Filter, error) {
	f := NewFilter()

	ref := c.Field.Parts
	if c.Field.Arg != nil {
		if len(c.Field.Parts) > 1 {
			return nil, ErrInvalidArgument("%s: invalid function name «%s»", c.Pos, strings.Join(c.Field.Parts, "."))
		}
		if err := f.SetFunc(c.Field.Parts[0]); err != nil {
			return nil, err
		}
		ref = c.Field.Arg.Parts
	}
	if len(ref) == 2 {
		f.SetTableName(ref[0])
		ref = ref[1:]
	}
	if err := f.SetProperty(ref[0]); err != nil {
		return nil, err
	}

	op := c.Operator
	if op == "<>" {
		op = "!="
	}
	if err := f.SetOperator(op); err != nil {
		return nil, err
	}

	switch {
	case c.List != nil || f.Operator() == "IN" || f.Operator() == "NOT IN":
		vals := make([]any, 0, len(c.List))
		for _, v := range c.List {
			vals = append(vals, v.value())
		}
		if c.Value != nil {
			vals = append(vals, c.Value.value())
		}
		if err := f.SetVal(vals); err != nil {
			return nil, err
		}
	case c.Value != nil:
		if err := f.SetVal(c.Value.value()); err != nil {
			return nil, err
		}
	case f.Operator() != "IS NULL" && f.Operator() != "IS NOT NULL":
		return nil, ErrInvalidArgument("%s: operator %s requires a value", c.Pos, f.Operator())
	}
	return f, nil
}

// Numbers are kept as numeric strings, so literals keep their source form
func (v *valueAST) value() any {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		return *v.Number
	case v.Keyword != nil:
		switch strings.ToUpper(*v.Keyword) {
		case "TRUE":
			return true
		case "FALSE":
			return false
		}
		return nil
	}
	return *v.Word
}
