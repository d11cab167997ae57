package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// input/output
	IOLoadFileError Code = 1001

	// semantic analysis
	SemInfo         Code = 3000
	SemUndeclared   Code = 3001
	SemDuplicate    Code = 3002
	SemLogicOperand Code = 3003
	SemArity        Code = 3004
	SemArgType      Code = 3005
	SemNotValue     Code = 3006
	SemMemberShape  Code = 3007
	SemNotCallable  Code = 3008

	// fixture loading
	FixInfo          Code = 4000
	FixBadLayer      Code = 4001
	FixUnknownType   Code = 4002
	FixBadExpression Code = 4003
	FixBadDecl       Code = 4004
	FixParse         Code = 4005
)

var codeDescription = map[Code]string{
	UnknownCode:      "Unknown error",
	IOLoadFileError:  "I/O error while loading file",
	SemInfo:          "Semantic information",
	SemUndeclared:    "Undeclared identifier",
	SemDuplicate:     "Duplicate declaration",
	SemLogicOperand:  "Invalid operand of logical operator",
	SemArity:         "Wrong number of arguments",
	SemArgType:       "Argument type mismatch",
	SemNotValue:      "Name does not denote a value",
	SemMemberShape:   "Declaration does not match class member",
	SemNotCallable:   "Name does not denote a method",
	FixInfo:          "Fixture information",
	FixBadLayer:      "Unknown layer path",
	FixUnknownType:   "Unknown type name",
	FixBadExpression: "Malformed expression",
	FixBadDecl:       "Malformed declaration",
	FixParse:         "Fixture is not valid TOML",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FIX%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
