package token

// Class groups C keywords by their role in a declaration.
type Class uint8

const (
	ClassNone Class = iota
	// ClassType covers type specifiers: void, int, unsigned...
	ClassType
	// ClassQualifier covers type qualifiers: const, volatile, restrict...
	ClassQualifier
	// ClassStorage covers storage-class specifiers: extern, static, typedef...
	ClassStorage
	// ClassFuncSpec covers function specifiers: inline, _Noreturn.
	ClassFuncSpec
	// ClassTag covers struct, union and enum.
	ClassTag
	// ClassStatement covers keywords that only occur in bodies.
	ClassStatement
)

var keywords = map[string]Class{
	"void":       ClassType,
	"char":       ClassType,
	"short":      ClassType,
	"int":        ClassType,
	"long":       ClassType,
	"float":      ClassType,
	"double":     ClassType,
	"signed":     ClassType,
	"__signed__": ClassType,
	"unsigned":   ClassType,
	"_Bool":      ClassType,
	"_Complex":   ClassType,

	"const":        ClassQualifier,
	"__const":      ClassQualifier,
	"volatile":     ClassQualifier,
	"__volatile__": ClassQualifier,
	"restrict":     ClassQualifier,
	"__restrict":   ClassQualifier,
	"__restrict__": ClassQualifier,
	"_Atomic":      ClassQualifier,

	"extern":        ClassStorage,
	"static":        ClassStorage,
	"auto":          ClassStorage,
	"register":      ClassStorage,
	"typedef":       ClassStorage,
	"_Thread_local": ClassStorage,
	"__thread":      ClassStorage,

	"inline":     ClassFuncSpec,
	"__inline":   ClassFuncSpec,
	"__inline__": ClassFuncSpec,
	"_Noreturn":  ClassFuncSpec,

	"struct": ClassTag,
	"union":  ClassTag,
	"enum":   ClassTag,

	"if":       ClassStatement,
	"else":     ClassStatement,
	"while":    ClassStatement,
	"for":      ClassStatement,
	"do":       ClassStatement,
	"switch":   ClassStatement,
	"case":     ClassStatement,
	"default":  ClassStatement,
	"return":   ClassStatement,
	"break":    ClassStatement,
	"continue": ClassStatement,
	"goto":     ClassStatement,
	"sizeof":   ClassStatement,
}

// LookupKeyword returns the keyword class of ident, if it is a keyword.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Class, bool) {
	c, ok := keywords[ident]
	return c, ok
}
