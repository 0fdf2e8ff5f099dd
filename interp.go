// interp.go — the tree-walking evaluator.
//
// The Interpreter executes a Program AST directly. Statement execution
// returns an explicit control value so 🔙 propagates as data, not as an
// unwinding mechanism: block execution stops at the first statement that
// signals a return, and the nearest enclosing call turns the signal back
// into a plain value. A 🔙 that reaches the top of a program run is a
// RuntimeError.
//
// Scoping: the program runs in one global frame. A function call pushes a
// fresh frame parented to the function's *defining* environment, and a 🔄
// loop pushes a frame for its loop variable. Plain 📦 blocks run in the
// current frame, so declaring the same name twice in one scope is an error
// wherever it happens.
//
// Console and file effects happen in program order at the point of the
// statement. The console streams are injectable (In/Out) so embedders and
// tests can capture them.
package moji

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Interpreter executes Moji programs against one persistent global frame.
type Interpreter struct {
	// Global is the program's root frame. Imports merge into it.
	Global *Env

	// In and Out are the console streams used by 👀 and 🖨️.
	In  io.Reader
	Out io.Writer

	in *bufio.Reader

	// module loader state (modules.go)
	modules   map[string]*moduleRec
	loadStack []string
	loadRecs  []*moduleRec
	merged    map[*Env]map[string]bool
}

// NewInterpreter returns a ready interpreter with an empty global frame,
// reading from stdin and writing to stdout.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global:  NewEnv(nil),
		In:      os.Stdin,
		Out:     os.Stdout,
		modules: make(map[string]*moduleRec),
		merged:  make(map[*Env]map[string]bool),
	}
}

// Run executes a parsed program. It returns nil when the program completes,
// or the first *RuntimeError raised.
func (ip *Interpreter) Run(prog *Program) error {
	return ip.runIn(prog, ip.Global)
}

// RunSource tokenizes, parses and runs a complete 🌱 ... 🌳 program.
// The returned error is a *LexError, *ParseError or *RuntimeError.
func (ip *Interpreter) RunSource(src string) error {
	prog, err := ParseSource(src)
	if err != nil {
		return err
	}
	return ip.Run(prog)
}

// RunSnippet executes a bare statement sequence (no 🌱/🌳 wrapper) against
// the persistent global frame. Used by the REPL.
func (ip *Interpreter) RunSnippet(src string) error {
	toks, err := Tokenize(src)
	if err != nil {
		return err
	}
	prog, err := NewParser(toks).Snippet()
	if err != nil {
		return err
	}
	return ip.Run(prog)
}

func (ip *Interpreter) runIn(prog *Program, env *Env) error {
	for _, s := range prog.Statements {
		c, err := ip.exec(s, env)
		if err != nil {
			return err
		}
		if c.ret {
			return rterrAt(c.from, "🔙 outside of a function call")
		}
	}
	return nil
}

// ctrl is the statement-level control signal: either "keep going" or "an
// enclosing call should return val". from records the 🔙 for diagnostics.
type ctrl struct {
	ret  bool
	val  Value
	from Node
}

var ctrlNone = ctrl{}

// exec runs one statement. Exactly one case per statement kind; a kind with
// no case is an interpreter defect, reported as an internal error.
func (ip *Interpreter) exec(s Stmt, env *Env) (ctrl, error) {
	switch n := s.(type) {
	case *Block:
		return ip.execBlock(n, env)

	case *VariableDeclare:
		var v Value
		if n.Value != nil {
			var err error
			v, err = ip.eval(n.Value, env)
			if err != nil {
				return ctrlNone, err
			}
		} else {
			v = zeroValueFor(n.TypeTok.Type)
		}
		if err := env.DefineOnce(n.Name, v); err != nil {
			return ctrlNone, rterrAt(n, "%v", err)
		}
		return ctrlNone, nil

	case *VariableAssign:
		v, err := ip.eval(n.Value, env)
		if err != nil {
			return ctrlNone, err
		}
		if err := env.Set(n.Name, v); err != nil {
			return ctrlNone, rterrAt(n, "%v", err)
		}
		return ctrlNone, nil

	case *Print:
		v, err := ip.eval(n.Value, env)
		if err != nil {
			return ctrlNone, err
		}
		fmt.Fprintln(ip.Out, FormatValue(v))
		return ctrlNone, nil

	case *Read:
		return ctrlNone, ip.execRead(n, env)

	case *If:
		for _, c := range n.Cases {
			cond, err := ip.eval(c.Cond, env)
			if err != nil {
				return ctrlNone, err
			}
			if cond.Truthy() {
				return ip.execBlock(c.Body, env)
			}
		}
		if n.Else != nil {
			return ip.execBlock(n.Else, env)
		}
		return ctrlNone, nil

	case *While:
		for {
			cond, err := ip.eval(n.Cond, env)
			if err != nil {
				return ctrlNone, err
			}
			if !cond.Truthy() {
				return ctrlNone, nil
			}
			c, err := ip.execBlock(n.Body, env)
			if err != nil || c.ret {
				return c, err
			}
		}

	case *ForEach:
		iter, err := ip.eval(n.Iter, env)
		if err != nil {
			return ctrlNone, err
		}
		if iter.Tag != VTList {
			return ctrlNone, rterrAt(n, "🔄 needs a list, got %s", iter.TypeName())
		}
		list := iter.Data.(*List)
		for i := 0; i < len(list.Items); i++ {
			loop := NewEnv(env)
			loop.Define(n.Var, list.Items[i])
			c, err := ip.execBlock(n.Body, loop)
			if err != nil || c.ret {
				return c, err
			}
		}
		return ctrlNone, nil

	case *FunctionDefine:
		fn := FunVal(&Fun{Def: n, Env: env})
		if err := env.DefineOnce(n.Name, fn); err != nil {
			return ctrlNone, rterrAt(n, "%v", err)
		}
		return ctrlNone, nil

	case *Return:
		val := Unit
		if n.Value != nil {
			var err error
			val, err = ip.eval(n.Value, env)
			if err != nil {
				return ctrlNone, err
			}
		}
		return ctrl{ret: true, val: val, from: n}, nil

	case *ListAppend:
		list, err := ip.listVar(n, n.Name, env)
		if err != nil {
			return ctrlNone, err
		}
		v, err := ip.eval(n.Value, env)
		if err != nil {
			return ctrlNone, err
		}
		list.Items = append(list.Items, v)
		return ctrlNone, nil

	case *ListRemove:
		list, err := ip.listVar(n, n.Name, env)
		if err != nil {
			return ctrlNone, err
		}
		idx, err := ip.eval(n.Index, env)
		if err != nil {
			return ctrlNone, err
		}
		if idx.Tag != VTInt {
			return ctrlNone, rterrAt(n, "index for ➖📜 must be an integer, got %s", idx.TypeName())
		}
		i := idx.Data.(int64)
		if i < 0 || i >= int64(len(list.Items)) {
			return ctrlNone, rterrAt(n, "index %d out of range for list '%s'", i, n.Name)
		}
		list.Items = append(list.Items[:i], list.Items[i+1:]...)
		return ctrlNone, nil

	case *Import:
		return ctrlNone, ip.execImport(n, env)

	case *Save:
		return ctrlNone, ip.execFileWrite(n, n.Data, n.Filename, env, false)

	case *FileAppend:
		return ctrlNone, ip.execFileWrite(n, n.Data, n.Filename, env, true)

	case *Sleep:
		v, err := ip.eval(n.Duration, env)
		if err != nil {
			return ctrlNone, err
		}
		secs, err := asSeconds(v)
		if err != nil {
			return ctrlNone, rterrAt(n, "%v", err)
		}
		time.Sleep(time.Duration(secs * float64(time.Second)))
		return ctrlNone, nil

	case *FunctionCall:
		_, err := ip.eval(n, env)
		return ctrlNone, err
	}

	return ctrlNone, rterrAt(s, "internal: no execution rule for %T", s)
}

func (ip *Interpreter) execBlock(b *Block, env *Env) (ctrl, error) {
	for _, s := range b.Statements {
		c, err := ip.exec(s, env)
		if err != nil {
			return ctrlNone, err
		}
		if c.ret {
			return c, nil
		}
	}
	return ctrlNone, nil
}

// eval computes an expression, eagerly and left-to-right.
func (ip *Interpreter) eval(e Expr, env *Env) (Value, error) {
	switch n := e.(type) {
	case *NumberLiteral:
		if n.IsReal {
			return Real(n.Real), nil
		}
		return Int(n.Int), nil

	case *StringLiteral:
		return Text(n.Value), nil

	case *VariableRead:
		v, err := env.Get(n.Name)
		if err != nil {
			return Value{}, rterrAt(n, "%v", err)
		}
		return v, nil

	case *BinaryOp:
		l, err := ip.eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		r, err := ip.eval(n.Right, env)
		if err != nil {
			return Value{}, err
		}
		v, err := applyBinary(n.Op.Type, l, r)
		if err != nil {
			return Value{}, rterrAt(n, "%v", err)
		}
		return v, nil

	case *UnaryOp:
		v, err := ip.eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		return applyNot(v), nil

	case *FunctionCall:
		return ip.evalCall(n, env)

	case *ListIndexRead:
		list, err := ip.eval(n.List, env)
		if err != nil {
			return Value{}, err
		}
		if list.Tag != VTList {
			return Value{}, rterrAt(n, "cannot index %s", list.TypeName())
		}
		idx, err := ip.eval(n.Index, env)
		if err != nil {
			return Value{}, err
		}
		if idx.Tag != VTInt {
			return Value{}, rterrAt(n, "list index must be an integer, got %s", idx.TypeName())
		}
		items := list.Data.(*List).Items
		i := idx.Data.(int64)
		if i < 0 || i >= int64(len(items)) {
			return Value{}, rterrAt(n, "index %d out of range", i)
		}
		return items[i], nil

	case *ListLiteral:
		list := &List{Items: make([]Value, 0, len(n.Elems))}
		for _, el := range n.Elems {
			v, err := ip.eval(el, env)
			if err != nil {
				return Value{}, err
			}
			list.Items = append(list.Items, v)
		}
		return ListVal(list), nil

	case *FileReadExpr:
		name, err := ip.eval(n.Filename, env)
		if err != nil {
			return Value{}, err
		}
		if name.Tag != VTText {
			return Value{}, rterrAt(n, "filename for 📖 must be text, got %s", name.TypeName())
		}
		data, err := os.ReadFile(name.Data.(string))
		if err != nil {
			return Value{}, rterrAt(n, "failed to read file: %v", err)
		}
		return Text(string(data)), nil

	case *TypeCast:
		v, err := ip.eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		out, err := castValue(n.Type, v)
		if err != nil {
			return Value{}, rterrAt(n, "%v", err)
		}
		return out, nil
	}

	return Value{}, rterrAt(e, "internal: no evaluation rule for %T", e)
}

// evalCall applies a function value. The arity check happens before any
// argument is evaluated; arguments evaluate in the caller's environment; the
// body runs in a fresh frame parented to the function's defining environment.
func (ip *Interpreter) evalCall(n *FunctionCall, env *Env) (Value, error) {
	callee, err := ip.eval(n.Callee, env)
	if err != nil {
		return Value{}, err
	}
	if callee.Tag != VTFun {
		return Value{}, rterrAt(n, "cannot call %s", callee.TypeName())
	}
	fn := callee.Data.(*Fun)

	if len(n.Args) != len(fn.Def.Params) {
		return Value{}, rterrAt(n, "function '%s' expected %d arguments, but was given %d",
			fn.Def.Name, len(fn.Def.Params), len(n.Args))
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i], err = ip.eval(a, env)
		if err != nil {
			return Value{}, err
		}
	}

	frame := NewEnv(fn.Env)
	for i, p := range fn.Def.Params {
		frame.Define(p, args[i])
	}
	c, err := ip.execBlock(fn.Def.Body, frame)
	if err != nil {
		return Value{}, err
	}
	if c.ret {
		return c.val, nil
	}
	return Unit, nil
}

// execRead takes one console line into an existing variable, converting the
// input to the variable's current type.
func (ip *Interpreter) execRead(n *Read, env *Env) error {
	current, err := env.Get(n.Name)
	if err != nil {
		return rterrAt(n, "%v", err)
	}
	line, err := ip.readLine()
	if err != nil {
		return rterrAt(n, "failed to read input: %v", err)
	}
	var v Value
	switch current.Tag {
	case VTInt:
		i, convErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if convErr != nil {
			return rterrAt(n, "invalid input for integer variable '%s': %q", n.Name, line)
		}
		v = Int(i)
	case VTReal:
		f, convErr := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if convErr != nil {
			return rterrAt(n, "invalid input for real variable '%s': %q", n.Name, line)
		}
		v = Real(f)
	default:
		v = Text(line)
	}
	if err := env.Set(n.Name, v); err != nil {
		return rterrAt(n, "%v", err)
	}
	return nil
}

// readLine blocks on the console stream until a newline or EOF.
func (ip *Interpreter) readLine() (string, error) {
	if ip.in == nil {
		ip.in = bufio.NewReader(ip.In)
	}
	line, err := ip.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// execFileWrite performs the single whole-file operation of 💾 or ➕💾:
// open, write, close, all within this statement.
func (ip *Interpreter) execFileWrite(at Node, dataExpr, filenameExpr Expr, env *Env, appendMode bool) error {
	data, err := ip.eval(dataExpr, env)
	if err != nil {
		return err
	}
	name, err := ip.eval(filenameExpr, env)
	if err != nil {
		return err
	}
	if name.Tag != VTText {
		return rterrAt(at, "filename must be text, got %s", name.TypeName())
	}
	path := name.Data.(string)
	if appendMode {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return rterrAt(at, "failed to append to file: %v", err)
		}
		_, werr := f.WriteString(FormatValue(data))
		cerr := f.Close()
		if werr == nil {
			werr = cerr
		}
		if werr != nil {
			return rterrAt(at, "failed to append to file: %v", werr)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(FormatValue(data)), 0o644); err != nil {
		return rterrAt(at, "failed to save file: %v", err)
	}
	return nil
}

// listVar resolves a list-mutation target: the name must be bound and hold a
// list.
func (ip *Interpreter) listVar(at Node, name string, env *Env) (*List, error) {
	v, err := env.Get(name)
	if err != nil {
		return nil, rterrAt(at, "%v", err)
	}
	if v.Tag != VTList {
		return nil, rterrAt(at, "'%s' is not a list, it is %s", name, v.TypeName())
	}
	return v.Data.(*List), nil
}

// zeroValueFor gives a declaration without initializer its type's zero value.
func zeroValueFor(tt TokenType) Value {
	switch tt {
	case KW_INT:
		return Int(0)
	case KW_REAL:
		return Real(0)
	case KW_STRING:
		return Text("")
	case KW_LIST:
		return NewList()
	}
	return Unit
}
