package internal

import (
	"errors"
	"fmt"
)

// GlobalScopeName names the scope holding every function.
const GlobalScopeName = "global"

var errSymbolTableFrozen = errors.New("symbol table is frozen")

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	ParameterSymbol
	FunctionSymbol
)

var symbolKindNames = [...]string{
	VariableSymbol:  "variable",
	ParameterSymbol: "parameter",
	FunctionSymbol:  "function",
}

func (kind SymbolKind) String() string {
	if kind < 0 || int(kind) >= len(symbolKindNames) {
		return "unknown"
	}
	return symbolKindNames[kind]
}

func (kind SymbolKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

type Signature struct {
	ParamTypes []Type `json:"paramTypes"`
	ReturnType Type   `json:"returnType"`
}

func (signature *Signature) String() string {
	ret := "("
	for i, paramType := range signature.ParamTypes {
		if i > 0 {
			ret += ", "
		}
		ret += paramType.String()
	}
	return ret + ") " + signature.ReturnType.String()
}

// Symbol is a declared name. The Type of a function is its return type.
type Symbol struct {
	Name      string     `json:"name"`
	Type      Type       `json:"type"`
	Kind      SymbolKind `json:"kind"`
	Line      int        `json:"line"`
	Column    int        `json:"column"`
	Signature *Signature `json:"signature,omitempty"` // Functions only.
}

type Scope struct {
	Name       string             `json:"name"`
	Symbols    map[string]*Symbol `json:"symbols"`
	Parent     *Scope             `json:"-"`
	ParentName string             `json:"parent,omitempty"`
	order      []string
}

func newScope(name string, parent *Scope) *Scope {
	scope := &Scope{Name: name, Symbols: map[string]*Symbol{}, Parent: parent}
	if parent != nil {
		scope.ParentName = parent.Name
	}
	return scope
}

// define binds symbol unless its name is already bound in this scope, in which case the existing
// symbol is returned with false.
func (scope *Scope) define(symbol *Symbol) (*Symbol, bool) {
	if existing, exist := scope.Symbols[symbol.Name]; exist {
		return existing, false
	}
	scope.Symbols[symbol.Name] = symbol
	scope.order = append(scope.order, symbol.Name)
	return symbol, true
}

// LookUp searches this scope first and then its parents.
func (scope *Scope) LookUp(name string) *Symbol {
	for s := scope; s != nil; s = s.Parent {
		if symbol, exist := s.Symbols[name]; exist {
			return symbol
		}
	}
	return nil
}

// SymbolsInOrder returns the symbols in declaration order.
func (scope *Scope) SymbolsInOrder() []*Symbol {
	ret := make([]*Symbol, 0, len(scope.order))
	for _, name := range scope.order {
		ret = append(ret, scope.Symbols[name])
	}
	return ret
}

// SymbolTable has a global scope and one flat scope per function, blocks inside a function share
// the function's scope.
type SymbolTable struct {
	Scopes  map[string]*Scope `json:"scopes"`
	Current string            `json:"current"`
	order   []string
	frozen  bool
}

func NewSymbolTable() *SymbolTable {
	table := &SymbolTable{Scopes: map[string]*Scope{}, Current: GlobalScopeName}
	table.Scopes[GlobalScopeName] = newScope(GlobalScopeName, nil)
	table.order = append(table.order, GlobalScopeName)
	return table
}

func (table *SymbolTable) Global() *Scope {
	return table.Scopes[GlobalScopeName]
}

func (table *SymbolTable) CurrentScope() *Scope {
	return table.Scopes[table.Current]
}

func (table *SymbolTable) HasScope(name string) bool {
	_, exist := table.Scopes[name]
	return exist
}

// EnterScope creates a function scope under the global scope and makes it current.
func (table *SymbolTable) EnterScope(name string) (*Scope, error) {
	if table.frozen {
		return nil, errSymbolTableFrozen
	}
	if table.HasScope(name) {
		return nil, makeSemanticError("scope %s already exists", name)
	}
	scope := newScope(name, table.Global())
	table.Scopes[name] = scope
	table.order = append(table.order, name)
	table.Current = name
	return scope, nil
}

func (table *SymbolTable) ExitScope() {
	table.Current = GlobalScopeName
}

// Define binds symbol in the current scope. It reports false, together with the symbol already bound,
// when the name is taken.
func (table *SymbolTable) Define(symbol *Symbol) (*Symbol, bool, error) {
	if table.frozen {
		return nil, false, errSymbolTableFrozen
	}
	existing, defined := table.CurrentScope().define(symbol)
	return existing, defined, nil
}

// LookUp resolves name from the current scope outwards.
func (table *SymbolTable) LookUp(name string) *Symbol {
	return table.CurrentScope().LookUp(name)
}

// LookUpIn resolves name from the named scope outwards.
func (table *SymbolTable) LookUpIn(scopeName, name string) *Symbol {
	scope, exist := table.Scopes[scopeName]
	if !exist {
		return nil
	}
	return scope.LookUp(name)
}

// Freeze makes the table read only.
func (table *SymbolTable) Freeze() {
	table.frozen = true
	table.Current = GlobalScopeName
}

func (table *SymbolTable) Frozen() bool {
	return table.frozen
}

// ScopesInOrder returns the global scope followed by the function scopes in creation order.
func (table *SymbolTable) ScopesInOrder() []*Scope {
	ret := make([]*Scope, 0, len(table.order))
	for _, name := range table.order {
		ret = append(ret, table.Scopes[name])
	}
	return ret
}

func makeSemanticError(format string, msg ...interface{}) error {
	return fmt.Errorf(format, msg...)
}
