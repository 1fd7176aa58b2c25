package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumericLiteral {
	return NewNumericLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

// Expression helpers.

func Un(operator string, operand Expression) *UnaryExpr {
	return NewUnaryExpr(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpr {
	return NewBinaryExpr(operator, left, right)
}

func Call(callee string, args ...Expression) *CallExpr {
	return NewCallExpr(ID(callee), NewArguments(args))
}

func Index(object, index Expression) *MemberExpr {
	return NewMemberExpr(object, index)
}

// WaveSpec names the labeled sub-expressions of a Wave declaration. Nil
// fields take the defaults.
type WaveSpec struct {
	Waveform Expression
	Freq     Expression
	Phase    Expression
	Vol      Expression
	Pan      Expression
}

func Wave(fields WaveSpec) *WaveDeclaration {
	return NewWaveDeclaration(fields.Waveform, fields.Freq, fields.Phase, fields.Vol, fields.Pan)
}

// Statement helpers.

func Block(stmts ...Statement) *Stmts {
	return NewStmts(stmts)
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(NewStmts(stmts))
}

func Assign(target, value Expression) *AssignStmt {
	return NewAssignStmt(target, value)
}

func For(iterator string, start, end Expression, body ...Statement) *ForStmt {
	return NewForStmt(ID(iterator), start, end, NewStmts(body))
}

func If(condition Expression, body ...Statement) *IfStmt {
	return NewIfStmt(condition, NewStmts(body))
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionDeclaration(ID(name), NewParameters(ids), NewStmts(body))
}

func Ret(value Expression) *ReturnStmt {
	return NewReturnStmt(value)
}
