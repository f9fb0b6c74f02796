package codec

import (
	"fmt"
	"strings"
)

// CallbackMethod is one generated callback stub, e.g. a buttonClicked
// override.
type CallbackMethod struct {
	ReturnType string
	Prototype  string
	Content    string
}

// GeneratedCode collects the snippets of C++ that get assembled into the
// final .cpp and .h files: class names, member declarations, initialisers
// and callback bodies. The document fills one of these from the node tree
// before every save.
type GeneratedCode struct {
	ClassName          string
	ParentClasses      string
	MemberDeclarations []string
	Initialisers       []string
	ConstructorCode    []string
	DestructorCode     []string
	Callbacks          []CallbackMethod
}

// EmitHeader renders the .h file text. Output is fully deterministic: the
// same accumulated snippets always produce byte-identical text, which is
// what makes WriteFileIfDifferent effective.
func (g *GeneratedCode) EmitHeader() []byte {
	var b strings.Builder
	guard := strings.ToUpper(g.ClassName) + "_H_INCLUDED"
	fmt.Fprintf(&b, "/** Auto-generated by compedit - do not edit by hand. */\n\n")
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	parents := g.ParentClasses
	if parents == "" {
		parents = "public Component"
	}
	fmt.Fprintf(&b, "class %s  : %s\n{\npublic:\n", g.ClassName, parents)
	fmt.Fprintf(&b, "    %s();\n    ~%s();\n\n", g.ClassName, g.ClassName)
	for _, cb := range g.Callbacks {
		fmt.Fprintf(&b, "    %s %s;\n", cb.ReturnType, cb.Prototype)
	}
	b.WriteString("\nprivate:\n")
	for _, m := range g.MemberDeclarations {
		fmt.Fprintf(&b, "    %s\n", m)
	}
	fmt.Fprintf(&b, "};\n\n#endif   // %s\n", guard)
	return []byte(b.String())
}

// EmitCPP renders the .cpp file text, without the metadata block; the caller
// appends MetadataBlock afterwards so the tree always sits at the end of the
// file.
func (g *GeneratedCode) EmitCPP(headerFileName string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "/** Auto-generated by compedit - do not edit by hand. */\n\n")
	fmt.Fprintf(&b, "#include \"%s\"\n\n", headerFileName)
	fmt.Fprintf(&b, "%s::%s()\n{\n", g.ClassName, g.ClassName)
	for _, init := range g.Initialisers {
		fmt.Fprintf(&b, "    %s\n", init)
	}
	if len(g.Initialisers) > 0 && len(g.ConstructorCode) > 0 {
		b.WriteString("\n")
	}
	for _, line := range g.ConstructorCode {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	fmt.Fprintf(&b, "}\n\n%s::~%s()\n{\n", g.ClassName, g.ClassName)
	for _, line := range g.DestructorCode {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	b.WriteString("}\n")
	for _, cb := range g.Callbacks {
		fmt.Fprintf(&b, "\n%s %s::%s\n{\n%s}\n", cb.ReturnType, g.ClassName, cb.Prototype, cb.Content)
	}
	b.WriteString("\n")
	return []byte(b.String())
}
