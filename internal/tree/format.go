package tree

// Well-known type tags and property names of the component document format.
// The tags double as XML element names in the persisted metadata block, so
// their exact spelling is part of the on-disk contract.
const (
	// TagDocument is the type of a document's root node.
	TagDocument = "COMPONENT"

	// TagComponentGroup is the type of the single child of the root that
	// holds all component nodes.
	TagComponentGroup = "COMPONENTS"

	// PropID holds the short random alphanumeric identifier that binds a
	// component node to its live object.
	PropID = "id"

	// PropBounds holds the component bounds in "x y w h" form.
	PropBounds = "position"

	// PropMemberName holds the generated-code member variable name.
	PropMemberName = "memberName"

	// PropName holds the user-visible component name.
	PropName = "name"

	// PropClassName holds the generated class name on the root node.
	PropClassName = "className"
)
