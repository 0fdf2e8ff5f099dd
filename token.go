// token.go — token model and the emoji keyword alphabet.
//
// Moji keywords are emoji glyphs. Most are a single code point, but a few are
// sequences of two code points: the compound keywords (📦⛔, ➕📜, ➖📜, ➕💾)
// and every glyph that carries the VS16 variation selector (🖨️, ✖️, ⚖️, ⬆️,
// ⬇️, ⚙️, ⏱️). The lexer therefore always tries a two-code-point keyword
// before a single one; both tables live here.
package moji

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Literals & identifiers
	IDENT  // variable / function / module name
	INT    // 10
	REAL   // 3.14
	STRING // "hello"

	// Punctuation (ASCII)
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	COMMA    // ","

	// Program & block structure
	PROGRAM_START // 🌱
	PROGRAM_END   // 🌳
	BLOCK_START   // 📦
	BLOCK_END     // 📦⛔

	// Declaration type keywords
	KW_INT    // 🔢
	KW_REAL   // 👽
	KW_STRING // 💬
	KW_LIST   // 📜

	// Input / output
	KW_READ  // 👀
	KW_PRINT // 🖨️

	// Arithmetic
	OP_PLUS  // ➕
	OP_MINUS // ➖
	OP_MUL   // ✖️
	OP_DIV   // ➗

	// Assignment & statement terminator
	ASSIGN        // 👉
	END_STATEMENT // 🔚

	// Conditionals & loops
	KW_IF      // 🤔
	KW_ELIF    // 🔀
	KW_ELSE    // 🤨
	KW_WHILE   // 🔁
	KW_FOREACH // 🔄

	// Functions
	KW_FUN    // 🧩
	KW_RETURN // 🔙

	// Comparison & logic
	CMP_EQ // ⚖️
	CMP_GT // ⬆️
	CMP_LT // ⬇️
	NOT    // 🚫

	// List mutation
	KW_APPEND // ➕📜
	KW_REMOVE // ➖📜

	// System commands
	KW_IMPORT  // ⚙️
	KW_SAVE    // 💾
	KW_FAPPEND // ➕💾
	KW_FREAD   // 📖
	KW_CAST    // 🎭
	KW_SLEEP   // ⏱️

	// Comment marker; the lexer consumes the rest of the line and never
	// emits this kind.
	COMMENT // 💭
)

// Token is a lexical token with optional literal value.
// Tokens are produced once by the lexer and read-only thereafter.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text of the token
	Literal interface{} // int64 for INT, float64 for REAL, string for STRING/IDENT
	Line    int         // 1-based
	Col     int         // 0-based, counted in code points
}

// vs16 is the emoji variation selector; glyphs like 🖨️ and ⚖️ are their base
// code point followed by this one.
const vs16 = "️"

// emojiKeywords maps keyword glyphs (one or two code points) to token kinds.
var emojiKeywords = map[string]TokenType{
	// Structure
	"🌱": PROGRAM_START,
	"🌳": PROGRAM_END,

	// Blocks
	"📦":  BLOCK_START,
	"📦⛔": BLOCK_END,

	// Variable types
	"🔢": KW_INT,
	"👽": KW_REAL,
	"💬": KW_STRING,
	"📜": KW_LIST,

	// I/O
	"👀":           KW_READ,
	"🖨" + vs16: KW_PRINT,

	// Arithmetic
	"➕":           OP_PLUS,
	"➖":           OP_MINUS,
	"✖" + vs16: OP_MUL,
	"➗":           OP_DIV,

	// Assignment & syntax
	"👉": ASSIGN,
	"💭": COMMENT,
	"🔚": END_STATEMENT,

	// Conditionals & loops
	"🤔": KW_IF,
	"🔀": KW_ELIF,
	"🤨": KW_ELSE,
	"🔁": KW_WHILE,
	"🔄": KW_FOREACH,

	// Functions
	"🧩": KW_FUN,
	"🔙": KW_RETURN,

	// Comparison & logic
	"⚖" + vs16: CMP_EQ,
	"⬆" + vs16: CMP_GT,
	"⬇" + vs16: CMP_LT,
	"🚫":           NOT,

	// Lists
	"➕📜": KW_APPEND,
	"➖📜": KW_REMOVE,

	// System
	"⚙" + vs16: KW_IMPORT,
	"💾":           KW_SAVE,
	"➕💾":          KW_FAPPEND,
	"📖":           KW_FREAD,
	"🎭":           KW_CAST,
	"⏱" + vs16: KW_SLEEP,
}

var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	IDENT:         "IDENTIFIER",
	INT:           "INT_LITERAL",
	REAL:          "REAL_LITERAL",
	STRING:        "STRING_LITERAL",
	LPAREN:        "'('",
	RPAREN:        "')'",
	LBRACKET:      "'['",
	RBRACKET:      "']'",
	COMMA:         "','",
	PROGRAM_START: "🌱",
	PROGRAM_END:   "🌳",
	BLOCK_START:   "📦",
	BLOCK_END:     "📦⛔",
	KW_INT:        "🔢",
	KW_REAL:       "👽",
	KW_STRING:     "💬",
	KW_LIST:       "📜",
	KW_READ:       "👀",
	KW_PRINT:      "🖨️",
	OP_PLUS:       "➕",
	OP_MINUS:      "➖",
	OP_MUL:        "✖️",
	OP_DIV:        "➗",
	ASSIGN:        "👉",
	END_STATEMENT: "🔚",
	KW_IF:         "🤔",
	KW_ELIF:       "🔀",
	KW_ELSE:       "🤨",
	KW_WHILE:      "🔁",
	KW_FOREACH:    "🔄",
	KW_FUN:        "🧩",
	KW_RETURN:     "🔙",
	CMP_EQ:        "⚖️",
	CMP_GT:        "⬆️",
	CMP_LT:        "⬇️",
	NOT:           "🚫",
	KW_APPEND:     "➕📜",
	KW_REMOVE:     "➖📜",
	KW_IMPORT:     "⚙️",
	KW_SAVE:       "💾",
	KW_FAPPEND:    "➕💾",
	KW_FREAD:      "📖",
	KW_CAST:       "🎭",
	KW_SLEEP:      "⏱️",
	COMMENT:       "💭",
}

// String names the token kind for diagnostics.
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNKNOWN"
}
