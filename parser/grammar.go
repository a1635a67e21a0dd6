package parser

// Grammar structs for the participle parser.
// Every string tokenizes and parses, so malformed syntax never fails here;
// it is degraded later in convertProgram.

type programGrammar struct {
	Start bool           `parser:"@Caret?"`
	Items []*itemGrammar `parser:"@@*"`
	Open  *string        `parser:"@OpenClass?"`
}

// A quantifier with nothing to bind to is a Stray literal, which may itself
// be quantified. Dropped escapes bind nothing.
type itemGrammar struct {
	Atom       *atomGrammar `parser:"( @@"`
	Quant      *string      `parser:"  @Quant? )"`
	Dropped    *string      `parser:"| @BadEscape"`
	Stray      *string      `parser:"| ( @Quant"`
	StrayQuant *string      `parser:"    @Quant? )"`
}

type atomGrammar struct {
	Escape *string `parser:"  @Escape"`
	Class  *string `parser:"| @Class"`
	Dot    bool    `parser:"| @Dot"`
	Caret  bool    `parser:"| @Caret"`
	Char   *string `parser:"| @Char"`
}
