package parser

import (
	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/token"
)

var primitiveTypeKeywords = []token.Kind{
	token.KwInt, token.KwInt1, token.KwInt2, token.KwInt4,
	token.KwNat, token.KwNat1, token.KwNat2, token.KwNat4,
	token.KwReal, token.KwReal4, token.KwReal8,
	token.KwBoolean, token.KwAddressint,
}

func isPrimitiveTypeKeyword(k token.Kind) bool {
	for _, pk := range primitiveTypeKeywords {
		if pk == k {
			return true
		}
	}
	return false
}

// parseType dispatches on the leading token to the appropriate type
// grammar production (spec section 4.3's Type grammar).
func (p *Parser) parseType() *cst.Node {
	p.typeDepth++
	defer func() { p.typeDepth-- }()
	if p.typeDepth > p.opts.maxTypeDepth() {
		p.errorf(diag.SynDepthExceeded, p.peek().Span, "type nesting exceeds limit")
		return &cst.Node{Kind: cst.ErrorNode}
	}

	switch {
	case p.at(token.KwString):
		kw := p.bumpRaw()
		return p.parseSizedTail(cst.SizedStringType, kw)
	case p.at(token.KwChar):
		kw := p.bumpRaw()
		return p.parseSizedTail(cst.SizedCharType, kw)
	case isPrimitiveTypeKeyword(p.peek().Kind):
		kw := p.bumpRaw()
		return &cst.Node{Kind: cst.PrimitiveType, Children: []cst.Element{&cst.Leaf{Tok: kw}}}
	case p.at(token.KwUnchecked), p.at(token.KwPointer):
		return p.parsePointerType()
	case p.at(token.Caret):
		caret := p.bumpRaw()
		target := p.parseType()
		return &cst.Node{Kind: cst.PointerType, Children: []cst.Element{&cst.Leaf{Tok: caret}, target}}
	case p.at(token.KwArray):
		return p.parseArrayType()
	case p.at(token.KwFlexible):
		flex := p.bumpRaw()
		arr := p.parseArrayType()
		return &cst.Node{Kind: cst.FlexibleArrayType, Children: append([]cst.Element{&cst.Leaf{Tok: flex}}, arr.Children...)}
	case p.at(token.KwSet):
		setKw := p.bumpRaw()
		ofKw, _ := p.expectRaw(token.KwOf)
		idx := p.parseRangeOrNameType()
		return &cst.Node{Kind: cst.SetType, Children: []cst.Element{&cst.Leaf{Tok: setKw}, &cst.Leaf{Tok: ofKw}, idx}}
	case p.at(token.KwEnum):
		return p.parseEnumType()
	case p.at(token.KwFunction):
		return p.parseFuncOrProcType(cst.FunctionType)
	case p.at(token.KwProcedure):
		return p.parseFuncOrProcType(cst.ProcedureType)
	case p.at(token.KwCollection):
		return p.parseCollectionType()
	case p.atAny(token.KwPriority, token.KwDeferred, token.KwTimeout, token.KwCondition):
		return p.parseConditionType()
	case p.at(token.KwRecord):
		return p.parseRecordOrUnion(cst.RecordType, token.KwRecord)
	case p.at(token.KwUnion):
		return p.parseRecordOrUnion(cst.UnionType, token.KwUnion)
	default:
		return p.parseRangeOrNameType()
	}
}

// parseSizedTail parses the optional "(n)" / "(*)" size suffix on string
// and char types.
func (p *Parser) parseSizedTail(kind cst.Kind, kw token.Token) *cst.Node {
	if !p.at(token.LParen) {
		return &cst.Node{Kind: cst.PrimitiveType, Children: []cst.Element{&cst.Leaf{Tok: kw}}}
	}
	lparen := p.bumpRaw()
	var size *cst.Node
	if star, ok := p.bumpIfRaw(token.Star); ok {
		size = &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{&cst.Leaf{Tok: star}}}
	} else {
		size = p.parseExpr(0)
	}
	rparen, _ := p.expectRaw(token.RParen)
	return &cst.Node{Kind: kind, Children: []cst.Element{&cst.Leaf{Tok: kw}, &cst.Leaf{Tok: lparen}, size, &cst.Leaf{Tok: rparen}}}
}

func (p *Parser) parsePointerType() *cst.Node {
	var children []cst.Element
	if uk, ok := p.bumpIfRaw(token.KwUnchecked); ok {
		children = append(children, &cst.Leaf{Tok: uk})
	}
	ptrKw, _ := p.expectRaw(token.KwPointer)
	children = append(children, &cst.Leaf{Tok: ptrKw})
	toKw, _ := p.expectRaw(token.KwTo)
	children = append(children, &cst.Leaf{Tok: toKw})
	children = append(children, p.parseType())
	return &cst.Node{Kind: cst.PointerType, Children: children}
}

// parseArrayType parses "array R1,...,Rk of T". The flexible-array
// variant reuses this and prefixes its own "flexible" keyword; rejecting
// an implicit (*) range on a flexible array is a validator concern (spec
// section 4.7), not a parsing one.
func (p *Parser) parseArrayType() *cst.Node {
	arrKw, _ := p.expectRaw(token.KwArray)
	ranges := &cst.Node{Kind: cst.ExprList}
	pop := p.pushRecovery(token.Comma, token.KwOf)
	for {
		ranges.Children = append(ranges.Children, p.parseRangeOrNameType())
		comma, ok := p.bumpIfRaw(token.Comma)
		if !ok {
			break
		}
		ranges.Children = append(ranges.Children, &cst.Leaf{Tok: comma})
	}
	pop()
	ofKw, _ := p.expectRaw(token.KwOf)
	elem := p.parseType()
	return &cst.Node{Kind: cst.ArrayType, Children: []cst.Element{&cst.Leaf{Tok: arrKw}, ranges, &cst.Leaf{Tok: ofKw}, elem}}
}

func (p *Parser) parseEnumType() *cst.Node {
	enumKw := p.bumpRaw()
	lparen, _ := p.expectRaw(token.LParen)
	fields := &cst.Node{Kind: cst.EnumFieldList}
	pop := p.pushRecovery(token.Comma, token.RParen)
	if !p.at(token.RParen) {
		for {
			ident, ok := p.expectRaw(token.Ident)
			if ok {
				fields.Children = append(fields.Children, &cst.Leaf{Tok: ident})
			}
			comma, ok2 := p.bumpIfRaw(token.Comma)
			if !ok2 {
				break
			}
			fields.Children = append(fields.Children, &cst.Leaf{Tok: comma})
		}
	}
	pop()
	rparen, _ := p.expectRaw(token.RParen)
	return &cst.Node{Kind: cst.EnumType, Children: []cst.Element{&cst.Leaf{Tok: enumKw}, &cst.Leaf{Tok: lparen}, fields, &cst.Leaf{Tok: rparen}}}
}

// parseFuncOrProcType parses a function/procedure type: the keyword, an
// optional parenthesized parameter list, and (functions only) a ':'
// result type.
func (p *Parser) parseFuncOrProcType(kind cst.Kind) *cst.Node {
	kw := p.bumpRaw()
	children := []cst.Element{&cst.Leaf{Tok: kw}}
	if p.at(token.LParen) {
		children = append(children, p.parseParamList())
	}
	if kind == cst.FunctionType {
		if colon, ok := p.bumpIfRaw(token.Colon); ok {
			children = append(children, &cst.Leaf{Tok: colon}, p.parseType())
		}
	}
	return &cst.Node{Kind: kind, Children: children}
}

// parseParamList parses "(name : type, ...)" used by function/procedure
// types and declarations.
func (p *Parser) parseParamList() *cst.Node {
	lparen, _ := p.expectRaw(token.LParen)
	list := &cst.Node{Kind: cst.ParamList, Children: []cst.Element{&cst.Leaf{Tok: lparen}}}
	pop := p.pushRecovery(token.Comma, token.RParen)
	if !p.at(token.RParen) {
		for {
			param := &cst.Node{Kind: cst.Param}
			if reg, ok := p.bumpIfRaw(token.KwRegister); ok {
				param.Children = append(param.Children, &cst.Leaf{Tok: reg})
			}
			names := p.parseNameList()
			param.Children = append(param.Children, names)
			if colon, ok := p.expectRaw(token.Colon); ok {
				param.Children = append(param.Children, &cst.Leaf{Tok: colon}, p.parseType())
			}
			list.Children = append(list.Children, param)
			comma, ok := p.bumpIfRaw(token.Comma)
			if !ok {
				break
			}
			list.Children = append(list.Children, &cst.Leaf{Tok: comma})
		}
	}
	pop()
	rparen, _ := p.expectRaw(token.RParen)
	list.Children = append(list.Children, &cst.Leaf{Tok: rparen})
	return list
}

// parseNameList parses a comma-separated identifier list, as used by
// var/const declarations and parameters.
func (p *Parser) parseNameList() *cst.Node {
	list := &cst.Node{Kind: cst.NameList}
	pop := p.pushRecovery(token.Comma)
	for {
		ident, ok := p.expectRaw(token.Ident)
		if ok {
			list.Children = append(list.Children, &cst.Leaf{Tok: ident})
		}
		comma, ok2 := p.bumpIfRaw(token.Comma)
		if !ok2 {
			break
		}
		list.Children = append(list.Children, &cst.Leaf{Tok: comma})
	}
	pop()
	return list
}

func (p *Parser) parseCollectionType() *cst.Node {
	collKw := p.bumpRaw()
	ofKw, _ := p.expectRaw(token.KwOf)
	var body cst.Element
	if fwd, ok := p.bumpIfRaw(token.KwForward); ok {
		body = &cst.Leaf{Tok: fwd}
	} else {
		body = p.parseType()
	}
	return &cst.Node{Kind: cst.CollectionType, Children: []cst.Element{&cst.Leaf{Tok: collKw}, &cst.Leaf{Tok: ofKw}, body}}
}

func (p *Parser) parseConditionType() *cst.Node {
	var children []cst.Element
	if mod, ok := p.bumpIfRaw(token.KwPriority); ok {
		children = append(children, &cst.Leaf{Tok: mod})
	} else if mod, ok := p.bumpIfRaw(token.KwDeferred); ok {
		children = append(children, &cst.Leaf{Tok: mod})
	} else if mod, ok := p.bumpIfRaw(token.KwTimeout); ok {
		children = append(children, &cst.Leaf{Tok: mod})
	}
	condKw, _ := p.expectRaw(token.KwCondition)
	children = append(children, &cst.Leaf{Tok: condKw})
	return &cst.Node{Kind: cst.ConditionType, Children: children}
}

// parseRecordOrUnion parses "record field-list end record" / the union
// equivalent with a "tag" selector; simplified to a flat field list since
// union variant selection is a validator concern (spec section 4.7), not
// a parsing one.
func (p *Parser) parseRecordOrUnion(kind cst.Kind, startKw token.Kind) *cst.Node {
	kw := p.bumpRaw()
	children := []cst.Element{&cst.Leaf{Tok: kw}}
	if startKw == token.KwUnion {
		tagKw, _ := p.expectRaw(token.KwTag)
		ident, _ := p.expectRaw(token.Ident)
		colon, _ := p.expectRaw(token.Colon)
		tagType := p.parseType()
		children = append(children, &cst.Leaf{Tok: tagKw}, &cst.Leaf{Tok: ident}, &cst.Leaf{Tok: colon}, tagType)
	}
	fields := &cst.Node{Kind: cst.FieldList}
	pop := p.pushRecovery(token.Semicolon, token.KwEnd)
	for !p.at(token.KwEnd) && !p.at(token.EOF) {
		names := p.parseNameList()
		colon, _ := p.expectRaw(token.Colon)
		fieldType := p.parseType()
		fields.Children = append(fields.Children, &cst.Node{Kind: cst.Param, Children: []cst.Element{names, &cst.Leaf{Tok: colon}, fieldType}})
		if semi, ok := p.bumpIfRaw(token.Semicolon); ok {
			fields.Children = append(fields.Children, &cst.Leaf{Tok: semi})
		} else {
			break
		}
	}
	pop()
	children = append(children, fields)
	endKw, _ := p.expectRaw(token.KwEnd)
	children = append(children, &cst.Leaf{Tok: endKw})
	if tailKw, ok := p.bumpIfRaw(startKw); ok {
		children = append(children, &cst.Leaf{Tok: tailKw})
	}
	return &cst.Node{Kind: kind, Children: children}
}

// parseRangeOrNameType parses either a range type "E1 .. (E2|*)" or a bare
// (possibly dotted) type name, reusing expression parsing for both the
// bound expressions and the dotted-name chain (spec section 4.3's "range
// types E1..(E2|*)" alongside "Primitive names" / type-name references).
func (p *Parser) parseRangeOrNameType() *cst.Node {
	left := p.parseExpr(0)
	if rangeTok, ok := p.bumpIfRaw(token.Range); ok {
		var end *cst.Node
		if star, ok2 := p.bumpIfRaw(token.Star); ok2 {
			end = &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{&cst.Leaf{Tok: star}}}
		} else {
			end = p.parseExpr(0)
		}
		return &cst.Node{Kind: cst.RangeType, Children: []cst.Element{left, &cst.Leaf{Tok: rangeTok}, end}}
	}
	return &cst.Node{Kind: cst.NameType, Children: []cst.Element{left}}
}
