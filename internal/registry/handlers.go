package registry

// staticHandler covers the component types whose behavior is fully described
// by their metadata.
type staticHandler struct {
	displayName    string
	typeTag        string
	memberNameRoot string
	className      string
	defaultW       int
	defaultH       int
}

func (h *staticHandler) DisplayName() string     { return h.displayName }
func (h *staticHandler) TypeTag() string         { return h.typeTag }
func (h *staticHandler) MemberNameRoot() string  { return h.memberNameRoot }
func (h *staticHandler) ClassName() string       { return h.className }
func (h *staticHandler) DefaultSize() (int, int) { return h.defaultW, h.defaultH }

// NewTextButtonHandler returns the handler for the TEXTBUTTON type.
func NewTextButtonHandler() Handler {
	return &staticHandler{
		displayName:    "Text Button",
		typeTag:        "TEXTBUTTON",
		memberNameRoot: "textButton",
		className:      "TextButton",
		defaultW:       150,
		defaultH:       24,
	}
}

// NewToggleButtonHandler returns the handler for the TOGGLEBUTTON type.
func NewToggleButtonHandler() Handler {
	return &staticHandler{
		displayName:    "Toggle Button",
		typeTag:        "TOGGLEBUTTON",
		memberNameRoot: "toggleButton",
		className:      "ToggleButton",
		defaultW:       150,
		defaultH:       24,
	}
}

// Builtin constructs a registry from p, preloaded with every built-in
// component type.
func Builtin(p Params) *Registry {
	r := New(p)
	r.Register(NewTextButtonHandler())
	r.Register(NewToggleButtonHandler())
	return r
}
