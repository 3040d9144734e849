package rangeparser

import "github.com/arnodel/grammar"

// TokeniseRangeString splits a selector token into "int" and "op" tokens.
// There is no whitespace token, so blanks anywhere in the input are an error.
var TokeniseRangeString = grammar.SimpleTokeniser([]grammar.TokenDef{
	{
		Name: "int",
		Ptn:  `[0-9]+`,
	},
	{
		Name: "op",
		Ptn:  `-`,
	},
})
