package grouping

import (
	"slices"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/sqltree/tokenizer"
)

func leaf(types ...tok.TokenType) pc.Parser[*Token] {
	return func(pctx *pc.ParseContext[*Token], tokens []pc.Token[*Token]) (int, []pc.Token[*Token], error) {
		if len(tokens) > 0 && !tokens[0].Val.IsGroup() && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func group(groups ...GroupType) pc.Parser[*Token] {
	return func(pctx *pc.ParseContext[*Token], tokens []pc.Token[*Token]) (int, []pc.Token[*Token], error) {
		if len(tokens) > 0 && slices.Contains(groups, tokens[0].Val.Group) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func word(words ...string) pc.Parser[*Token] {
	return func(pctx *pc.ParseContext[*Token], tokens []pc.Token[*Token]) (int, []pc.Token[*Token], error) {
		if len(tokens) > 0 && tokens[0].Val.Is(tok.IDENTIFIER, tok.RESERVED_IDENTIFIER) {
			for _, w := range words {
				if strings.EqualFold(tokens[0].Val.Value, w) {
					return 1, tokens[:1], nil
				}
			}
		}

		return 0, nil, pc.ErrNotMatch
	}
}

var (
	space       = pc.ZeroOrMore("comment or space", leaf(tok.WHITESPACE, tok.LINE_COMMENT, tok.BLOCK_COMMENT))
	comma       = leaf(tok.COMMA)
	dot         = leaf(tok.DOT)
	as          = leaf(tok.AS)
	name        = leaf(tok.IDENTIFIER, tok.QUOTED_IDENTIFIER)
	funcName    = leaf(tok.IDENTIFIER, tok.QUOTED_IDENTIFIER, tok.RESERVED_IDENTIFIER)
	wildcard    = leaf(tok.WILDCARD)
	literal     = leaf(tok.NUMBER, tok.STRING, tok.PLACEHOLDER, tok.NULL, tok.BOOLEAN)
	parenthesis = group(Parenthesis)
	ordering    = word("ASC", "DESC")

	comparisonOperator = leaf(tok.EQUAL, tok.NOT_EQUAL, tok.LESS_THAN, tok.GREATER_THAN, tok.LESS_EQUAL, tok.GREATER_EQUAL, tok.LIKE)
	arithmeticOperator = leaf(tok.PLUS, tok.MINUS, tok.MULTIPLY, tok.DIVIDE, tok.MODULO, tok.CONCAT)

	operand = pc.Or(name, literal, group(Parenthesis, Function, Identifier, Case, Operation))

	functionCall = pc.Trace("function", pc.Seq(funcName, parenthesis))

	qualifierTail = pc.Or(name, wildcard, group(Function))
	qualifiedName = pc.Trace("qualified name", pc.Seq(
		pc.Or(name, group(Function)),
		dot, qualifierTail,
		pc.ZeroOrMore("qualifier", pc.Seq(dot, qualifierTail)),
	))

	operation = pc.Trace("operation", pc.Seq(
		operand, space, arithmeticOperator, space, operand,
		pc.ZeroOrMore("operation", pc.Seq(space, arithmeticOperator, space, operand)),
	))

	comparison = pc.Trace("comparison", pc.Seq(operand, space, comparisonOperator, space, operand))

	aliasable = pc.Or(name, group(Identifier, Function, Parenthesis, Operation, Case))
	alias     = pc.Trace("alias", pc.Or(
		pc.Seq(aliasable, space, ordering),
		pc.Seq(aliasable, space, pc.Optional(pc.Seq(as, space)), name),
		pc.Seq(literal, space, as, space, name),
	))

	listItem       = pc.Or(operand, wildcard, group(Comparison))
	identifierList = pc.Trace("identifier list", pc.Seq(
		listItem, space, comma, space, listItem,
		pc.ZeroOrMore("identifier list", pc.Seq(space, comma, space, listItem)),
	))
)

// groupTokens runs the grouping rules on one nesting level. Parenthesis
// groups inside tokens are already complete.
func groupTokens(tokens []*Token) []*Token {
	tokens = groupCase(tokens)
	markWildcards(tokens)
	tokens = replace(tokens, functionCall, mergeInto(Function))
	tokens = replace(tokens, qualifiedName, mergeInto(Identifier))
	tokens = replace(tokens, operation, mergeInto(Operation))
	tokens = replace(tokens, comparison, mergeInto(Comparison))
	tokens = replace(tokens, alias, mergeInto(Identifier))
	tokens = replace(tokens, identifierList, mergeInto(IdentifierList))
	tokens = groupWhere(tokens)

	return tokens
}

// replace scans tokens left to right and substitutes every match of p
// with the token built from the matched slice.
func replace(tokens []*Token, p pc.Parser[*Token], build func([]*Token) *Token) []*Token {
	pctx := pc.NewParseContext[*Token]()
	pctx.OrMode = pc.OrModeTryFast

	src := toParserTokens(tokens)
	result := make([]*Token, 0, len(tokens))

	for i := 0; i < len(tokens); {
		consumed, _, err := p(pctx, src[i:])
		if err == nil && consumed > 0 {
			result = append(result, build(tokens[i:i+consumed]))
			i += consumed

			continue
		}

		result = append(result, tokens[i])
		i++
	}

	return result
}

// mergeInto builds a group of the given type. A leading group of the same
// type is flattened so "a.b AS x" becomes one Identifier.
func mergeInto(groupType GroupType) func([]*Token) *Token {
	return func(matched []*Token) *Token {
		if len(matched) > 1 && matched[0].Group == groupType && groupType != Operation {
			members := slices.Clone(matched[0].Tokens)
			return newGroup(groupType, append(members, matched[1:]...))
		}

		return newGroup(groupType, matched)
	}
}

func toParserTokens(tokens []*Token) []pc.Token[*Token] {
	results := make([]pc.Token[*Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[*Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

// groupCase folds CASE ... END into Case groups. The body is grouped
// recursively, so nested CASE expressions nest as well. A CASE without
// END is left as is.
func groupCase(tokens []*Token) []*Token {
	result := make([]*Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		if !tokens[i].Is(tok.CASE) {
			result = append(result, tokens[i])
			continue
		}

		end := matchingEnd(tokens, i)
		if end < 0 {
			result = append(result, tokens[i])
			continue
		}

		members := make([]*Token, 0, end-i+1)
		members = append(members, tokens[i])
		members = append(members, groupTokens(tokens[i+1:end])...)
		members = append(members, tokens[end])

		result = append(result, newGroup(Case, members))
		i = end
	}

	return result
}

func matchingEnd(tokens []*Token, start int) int {
	depth := 0

	for i := start; i < len(tokens); i++ {
		switch {
		case tokens[i].Is(tok.CASE):
			depth++
		case tokens[i].Is(tok.END):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// markWildcards turns "*" into WILDCARD when it cannot be a multiplication,
// i.e. when no operand precedes it.
func markWildcards(tokens []*Token) {
	var prev *Token

	for _, t := range tokens {
		if t.IsSpace() {
			continue
		}

		if t.Is(tok.MULTIPLY) {
			if prev == nil || prev.Is(tok.SELECT, tok.COMMA, tok.DOT, tok.DISTINCT, tok.ALL, tok.RETURNING) {
				t.Type = tok.WILDCARD
			}
		}

		prev = t
	}
}

var whereTerminators = []tok.TokenType{
	tok.ORDER, tok.GROUP, tok.LIMIT, tok.OFFSET, tok.HAVING,
	tok.UNION, tok.EXCEPT, tok.INTERSECT, tok.RETURNING, tok.SEMICOLON,
}

// groupWhere folds WHERE and everything up to the next clause keyword
// into a Where group.
func groupWhere(tokens []*Token) []*Token {
	start := slices.IndexFunc(tokens, func(t *Token) bool { return t.Is(tok.WHERE) })
	if start < 0 {
		return tokens
	}

	end := len(tokens)

	for i := start + 1; i < len(tokens); i++ {
		if tokens[i].Is(whereTerminators...) {
			end = i
			break
		}
	}

	result := make([]*Token, 0, len(tokens)-(end-start)+1)
	result = append(result, tokens[:start]...)
	result = append(result, newGroup(Where, tokens[start:end]))
	result = append(result, groupWhere(tokens[end:])...)

	return result
}
