package ast

// OperatorCategory groups binary operators by the operand rules they follow.
type OperatorCategory int

const (
	OperatorUnknown OperatorCategory = iota
	OperatorArithmetic
	OperatorComparison
	OperatorLogical
)

func (c OperatorCategory) String() string {
	switch c {
	case OperatorArithmetic:
		return "arithmetic"
	case OperatorComparison:
		return "comparison"
	case OperatorLogical:
		return "logical"
	default:
		return "unknown"
	}
}

// BinaryOperatorCategory classifies a binary operator token.
func BinaryOperatorCategory(op string) OperatorCategory {
	switch op {
	case "+", "-", "*", "/", "%", "^":
		return OperatorArithmetic
	case "==", "!=", ">", "<", ">=", "<=":
		return OperatorComparison
	case "&", "|":
		return OperatorLogical
	default:
		return OperatorUnknown
	}
}
