package ast

type NodeType string

const (
	NodeNumericLiteral      NodeType = "NumericLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeUnaryExpr           NodeType = "UnaryExpr"
	NodeBinaryExpr          NodeType = "BinaryExpr"
	NodeCallExpr            NodeType = "CallExpr"
	NodeMemberExpr          NodeType = "MemberExpr"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeWaveDeclaration     NodeType = "WaveDeclaration"
	NodeAssignStmt          NodeType = "AssignStmt"
	NodeForStmt             NodeType = "ForStmt"
	NodeIfStmt              NodeType = "IfStmt"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeReturnStmt          NodeType = "ReturnStmt"
	NodeArguments           NodeType = "Arguments"
	NodeParameters          NodeType = "Parameters"
	NodeStmts               NodeType = "Stmts"
	NodeProgram             NodeType = "Program"
)

// Position is a 1-based source location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span covers the source text a node was parsed from.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (n *nodeImpl) setSpan(span Span) { n.span = span }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Every expression may also appear in statement position.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Expressions

type NumericLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewNumericLiteral(value float64) *NumericLiteral {
	return &NumericLiteral{nodeImpl: newNodeImpl(NodeNumericLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type UnaryExpr struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpr(operator string, operand Expression) *UnaryExpr {
	return &UnaryExpr{nodeImpl: newNodeImpl(NodeUnaryExpr), Operator: operator, Operand: operand}
}

type BinaryExpr struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpr(operator string, left, right Expression) *BinaryExpr {
	return &BinaryExpr{nodeImpl: newNodeImpl(NodeBinaryExpr), Operator: operator, Left: left, Right: right}
}

type Arguments struct {
	nodeImpl
	statementMarker

	Values []Expression `json:"values"`
}

func NewArguments(values []Expression) *Arguments {
	return &Arguments{nodeImpl: newNodeImpl(NodeArguments), Values: values}
}

type CallExpr struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee *Identifier `json:"callee"`
	Args   *Arguments  `json:"arguments"`
}

func NewCallExpr(callee *Identifier, args *Arguments) *CallExpr {
	if args == nil {
		args = NewArguments(nil)
	}
	return &CallExpr{nodeImpl: newNodeImpl(NodeCallExpr), Callee: callee, Args: args}
}

// ArgumentValues returns the call's argument expressions.
func (c *CallExpr) ArgumentValues() []Expression {
	if c == nil || c.Args == nil {
		return nil
	}
	return c.Args.Values
}

type MemberExpr struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewMemberExpr(object, index Expression) *MemberExpr {
	return &MemberExpr{nodeImpl: newNodeImpl(NodeMemberExpr), Object: object, Index: index}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// WaveDeclaration holds the unevaluated expressions a Wave re-evaluates for
// every sample. Pan is parsed and stored but not consulted by the generator.
type WaveDeclaration struct {
	nodeImpl
	expressionMarker
	statementMarker

	Waveform Expression `json:"waveform"`
	Freq     Expression `json:"freq"`
	Phase    Expression `json:"phase"`
	Vol      Expression `json:"vol"`
	Pan      Expression `json:"pan"`
}

// NewWaveDeclaration fills omitted labels with their defaults.
func NewWaveDeclaration(waveform, freq, phase, vol, pan Expression) *WaveDeclaration {
	if waveform == nil {
		waveform = DefaultWaveform()
	}
	if freq == nil {
		freq = NewNumericLiteral(0)
	}
	if phase == nil {
		phase = NewNumericLiteral(0)
	}
	if vol == nil {
		vol = NewNumericLiteral(1)
	}
	if pan == nil {
		pan = NewNumericLiteral(0)
	}
	return &WaveDeclaration{
		nodeImpl: newNodeImpl(NodeWaveDeclaration),
		Waveform: waveform,
		Freq:     freq,
		Phase:    phase,
		Vol:      vol,
		Pan:      pan,
	}
}

// DefaultWaveform is sin(x).
func DefaultWaveform() Expression {
	return NewCallExpr(NewIdentifier("sin"), NewArguments([]Expression{NewIdentifier("x")}))
}

// WaveLabels lists the labels accepted inside Wave(...), in field order.
var WaveLabels = []string{"waveform", "freq", "phase", "vol", "pan"}

// Statements

type Stmts struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewStmts(body []Statement) *Stmts {
	return &Stmts{nodeImpl: newNodeImpl(NodeStmts), Body: body}
}

type Program struct {
	nodeImpl
	statementMarker

	Body *Stmts `json:"body"`
}

func NewProgram(body *Stmts) *Program {
	if body == nil {
		body = NewStmts(nil)
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// AssignStmt targets either an *Identifier or a *MemberExpr.
type AssignStmt struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignStmt(target, value Expression) *AssignStmt {
	return &AssignStmt{nodeImpl: newNodeImpl(NodeAssignStmt), Target: target, Value: value}
}

type ForStmt struct {
	nodeImpl
	statementMarker

	Iterator *Identifier `json:"iterator"`
	Start    Expression  `json:"start"`
	End      Expression  `json:"end"`
	Body     *Stmts      `json:"body"`
}

func NewForStmt(iterator *Identifier, start, end Expression, body *Stmts) *ForStmt {
	if body == nil {
		body = NewStmts(nil)
	}
	return &ForStmt{nodeImpl: newNodeImpl(NodeForStmt), Iterator: iterator, Start: start, End: end, Body: body}
}

type IfStmt struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Stmts     `json:"body"`
}

func NewIfStmt(condition Expression, body *Stmts) *IfStmt {
	if body == nil {
		body = NewStmts(nil)
	}
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, Body: body}
}

type Parameters struct {
	nodeImpl
	statementMarker

	Names []*Identifier `json:"names"`
}

func NewParameters(names []*Identifier) *Parameters {
	return &Parameters{nodeImpl: newNodeImpl(NodeParameters), Names: names}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier `json:"name"`
	Params *Parameters `json:"params"`
	Body   *Stmts      `json:"body"`
}

func NewFunctionDeclaration(name *Identifier, params *Parameters, body *Stmts) *FunctionDeclaration {
	if params == nil {
		params = NewParameters(nil)
	}
	if body == nil {
		body = NewStmts(nil)
	}
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

// ParamNames returns the declared parameter names in order.
func (f *FunctionDeclaration) ParamNames() []string {
	if f == nil || f.Params == nil {
		return nil
	}
	names := make([]string, 0, len(f.Params.Names))
	for _, id := range f.Params.Names {
		names = append(names, id.Name)
	}
	return names
}

type ReturnStmt struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturnStmt(value Expression) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Value: value}
}
