// ast.go — the closed set of AST node kinds.
//
// Nodes are pure data: the parser constructs them once and the interpreter
// only reads them. Every node keeps the token that introduced it so runtime
// errors can point at a source position. The Node/Stmt/Expr interfaces are
// sealed (unexported marker methods), so the set of kinds the evaluator must
// handle is closed within this package.
package moji

// Node is any element of the syntax tree.
type Node interface {
	Pos() (line, col int)
}

// Stmt is a statement node: it performs an action and produces no value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node: evaluating it produces a Value.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: the statements between 🌱 and 🌳.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 0
}

// Block is a 📦 ... 📦⛔ statement sequence.
type Block struct {
	Tok        Token // the 📦
	Statements []Stmt
}

// --- expressions ---

// NumberLiteral is an integer or real literal.
type NumberLiteral struct {
	Tok    Token
	IsReal bool
	Int    int64
	Real   float64
}

// StringLiteral is a quoted text literal.
type StringLiteral struct {
	Tok   Token
	Value string
}

// VariableRead reads the value bound to a name.
type VariableRead struct {
	Tok  Token
	Name string
}

// BinaryOp applies ➕ ➖ ✖️ ➗ ⚖️ ⬆️ ⬇️ to two operands.
type BinaryOp struct {
	Op    Token
	Left  Expr
	Right Expr
}

// UnaryOp applies 🚫 to one operand.
type UnaryOp struct {
	Op      Token
	Operand Expr
}

// FunctionCall invokes a function value: callee(arg, ...). A call is also a
// valid statement when the result is discarded.
type FunctionCall struct {
	Tok    Token // the '('
	Callee Expr
	Args   []Expr
}

// ListIndexRead reads one element: list[index].
type ListIndexRead struct {
	Tok   Token // the '['
	List  Expr
	Index Expr
}

// ListLiteral builds a fresh list: [e1, e2, ...].
type ListLiteral struct {
	Tok   Token
	Elems []Expr
}

// FileReadExpr reads a whole file as text: 📖 filename.
type FileReadExpr struct {
	Tok      Token
	Filename Expr
}

// TypeCast converts a value: 🎭 followed by a type keyword and an operand.
type TypeCast struct {
	Tok     Token
	Type    TokenType // KW_INT, KW_REAL or KW_STRING
	Operand Expr
}

// --- statements ---

// VariableDeclare introduces a new name: typekw name [👉 expr] 🔚.
// Value is nil when no initializer was given.
type VariableDeclare struct {
	TypeTok Token
	NameTok Token
	Name    string
	Value   Expr
}

// VariableAssign updates an existing name: name 👉 expr 🔚.
type VariableAssign struct {
	NameTok Token
	Name    string
	Value   Expr
}

// Print writes a value to the console: 🖨️ expr 🔚.
type Print struct {
	Tok   Token
	Value Expr
}

// Read takes one console line into an existing variable: 👀 name 🔚.
type Read struct {
	Tok     Token
	NameTok Token
	Name    string
}

// IfCase is one (condition, block) pair of an 🤔/🔀 chain.
type IfCase struct {
	Cond Expr
	Body *Block
}

// If is the 🤔 ... 🔀 ... 🤨 chain; first truthy case wins.
type If struct {
	Tok   Token
	Cases []IfCase
	Else  *Block // nil when there is no 🤨 block
}

// While re-evaluates Cond before every iteration: 🔁 expr block.
type While struct {
	Tok  Token
	Cond Expr
	Body *Block
}

// ForEach iterates a list in order, binding Var each round: 🔄 var expr block.
type ForEach struct {
	Tok    Token
	VarTok Token
	Var    string
	Iter   Expr
	Body   *Block
}

// FunctionDefine binds a function: 🧩 name param* block. Parameters are bare
// identifiers read greedily until the 📦.
type FunctionDefine struct {
	Tok     Token
	NameTok Token
	Name    string
	Params  []string
	Body    *Block
}

// Return transfers control out of the enclosing call: 🔙 [expr] 🔚.
// Value is nil for a bare return.
type Return struct {
	Tok   Token
	Value Expr
}

// ListAppend mutates a list variable in place: name ➕📜 expr 🔚.
type ListAppend struct {
	NameTok Token
	Name    string
	Value   Expr
}

// ListRemove pops the element at an integer index: name ➖📜 expr 🔚.
type ListRemove struct {
	NameTok Token
	Name    string
	Index   Expr
}

// Import loads "<Module>.moji" and merges its top-level bindings: ⚙️ name 🔚.
type Import struct {
	Tok     Token
	NameTok Token
	Module  string
}

// Save writes a value to a file, replacing its contents: 💾 data filename 🔚.
type Save struct {
	Tok      Token
	Data     Expr
	Filename Expr
}

// FileAppend appends a value to a file: ➕💾 data filename 🔚.
type FileAppend struct {
	Tok      Token
	Data     Expr
	Filename Expr
}

// Sleep blocks for a number of seconds: ⏱️ expr 🔚.
type Sleep struct {
	Tok      Token
	Duration Expr
}

// --- positions and sealing ---

func (n *Block) Pos() (int, int)           { return n.Tok.Line, n.Tok.Col }
func (n *NumberLiteral) Pos() (int, int)   { return n.Tok.Line, n.Tok.Col }
func (n *StringLiteral) Pos() (int, int)   { return n.Tok.Line, n.Tok.Col }
func (n *VariableRead) Pos() (int, int)    { return n.Tok.Line, n.Tok.Col }
func (n *BinaryOp) Pos() (int, int)        { return n.Op.Line, n.Op.Col }
func (n *UnaryOp) Pos() (int, int)         { return n.Op.Line, n.Op.Col }
func (n *FunctionCall) Pos() (int, int)    { return n.Tok.Line, n.Tok.Col }
func (n *ListIndexRead) Pos() (int, int)   { return n.Tok.Line, n.Tok.Col }
func (n *ListLiteral) Pos() (int, int)     { return n.Tok.Line, n.Tok.Col }
func (n *FileReadExpr) Pos() (int, int)    { return n.Tok.Line, n.Tok.Col }
func (n *TypeCast) Pos() (int, int)        { return n.Tok.Line, n.Tok.Col }
func (n *VariableDeclare) Pos() (int, int) { return n.TypeTok.Line, n.TypeTok.Col }
func (n *VariableAssign) Pos() (int, int)  { return n.NameTok.Line, n.NameTok.Col }
func (n *Print) Pos() (int, int)           { return n.Tok.Line, n.Tok.Col }
func (n *Read) Pos() (int, int)            { return n.Tok.Line, n.Tok.Col }
func (n *If) Pos() (int, int)              { return n.Tok.Line, n.Tok.Col }
func (n *While) Pos() (int, int)           { return n.Tok.Line, n.Tok.Col }
func (n *ForEach) Pos() (int, int)         { return n.Tok.Line, n.Tok.Col }
func (n *FunctionDefine) Pos() (int, int)  { return n.Tok.Line, n.Tok.Col }
func (n *Return) Pos() (int, int)          { return n.Tok.Line, n.Tok.Col }
func (n *ListAppend) Pos() (int, int)      { return n.NameTok.Line, n.NameTok.Col }
func (n *ListRemove) Pos() (int, int)      { return n.NameTok.Line, n.NameTok.Col }
func (n *Import) Pos() (int, int)          { return n.Tok.Line, n.Tok.Col }
func (n *Save) Pos() (int, int)            { return n.Tok.Line, n.Tok.Col }
func (n *FileAppend) Pos() (int, int)      { return n.Tok.Line, n.Tok.Col }
func (n *Sleep) Pos() (int, int)           { return n.Tok.Line, n.Tok.Col }

func (*NumberLiteral) exprNode() {}
func (*StringLiteral) exprNode() {}
func (*VariableRead) exprNode()  {}
func (*BinaryOp) exprNode()      {}
func (*UnaryOp) exprNode()       {}
func (*FunctionCall) exprNode()  {}
func (*ListIndexRead) exprNode() {}
func (*ListLiteral) exprNode()   {}
func (*FileReadExpr) exprNode()  {}
func (*TypeCast) exprNode()      {}

func (*Block) stmtNode()           {}
func (*VariableDeclare) stmtNode() {}
func (*VariableAssign) stmtNode()  {}
func (*Print) stmtNode()           {}
func (*Read) stmtNode()            {}
func (*If) stmtNode()              {}
func (*While) stmtNode()           {}
func (*ForEach) stmtNode()         {}
func (*FunctionDefine) stmtNode()  {}
func (*Return) stmtNode()          {}
func (*ListAppend) stmtNode()      {}
func (*ListRemove) stmtNode()      {}
func (*Import) stmtNode()          {}
func (*Save) stmtNode()            {}
func (*FileAppend) stmtNode()      {}
func (*Sleep) stmtNode()           {}
func (*FunctionCall) stmtNode()    {}
