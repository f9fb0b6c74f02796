package document

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compedit/internal/registry"
	"compedit/internal/tree"
)

func testRegistry() *registry.Registry {
	r := registry.New(registry.Params{Rand: rand.New(rand.NewPCG(7, 11))})
	r.Register(registry.NewTextButtonHandler())
	r.Register(registry.NewToggleButtonHandler())
	return r
}

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MainComponent.cpp")
	return New(path, testRegistry(), nil, nil)
}

// addSilentComponent injects a component node without touching the undo
// history or the dirty flag, the way deserialization would.
func addSilentComponent(d *Document, typ, memberName string) *tree.Node {
	n := tree.New(typ)
	n.SetProperty(tree.PropID, tree.StringValue("id-"+memberName), nil)
	n.SetProperty(tree.PropMemberName, tree.StringValue(memberName), nil)
	n.SetProperty(tree.PropBounds, tree.StringValue("10 20 150 24"), nil)
	d.ComponentGroup().AddChild(n, -1, nil)
	return n
}

func TestNewDocumentInvariants(t *testing.T) {
	d := newTestDocument(t)

	require.NotNil(t, d.ComponentGroup(), "COMPONENTS child repaired on construction")
	assert.Equal(t, tree.TagDocument, d.Root().Type())
	assert.Equal(t, "NewComponent", d.ClassName(), "default class name assigned")
	assert.Equal(t, 0, d.NumComponents())
	assert.False(t, d.HasUnsavedChanges())
}

func TestDirtyFlagLifecycle(t *testing.T) {
	d := newTestDocument(t)
	assert.False(t, d.HasUnsavedChanges(), "clean after construction")

	require.True(t, d.AddComponent("TEXTBUTTON"))
	assert.True(t, d.HasUnsavedChanges(), "dirty after one mutation")

	require.True(t, d.Save())
	assert.False(t, d.HasUnsavedChanges(), "save clears the flag")

	n := d.Component(0)
	d.BeginTransaction("Move")
	n.SetProperty(tree.PropBounds, tree.StringValue("1 2 3 4"), d.UndoLog())
	assert.True(t, d.HasUnsavedChanges())

	require.True(t, d.Reload())
	assert.False(t, d.HasUnsavedChanges(), "reload clears the flag")
}

func TestSaveReloadRoundTrip(t *testing.T) {
	d := newTestDocument(t)
	d.SetClassName("LoginScreen")
	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.AddComponent("TOGGLEBUTTON"))
	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.Save())

	reopened := New(d.Path(), testRegistry(), nil, nil)
	assert.False(t, reopened.HasUnsavedChanges())
	assert.Equal(t, "LoginScreen", reopened.ClassName())

	if diff := cmp.Diff(d.Root().Snapshot(), reopened.Root().Snapshot()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	t.Run("second save writes nothing new", func(t *testing.T) {
		before, err := os.ReadFile(d.Path())
		require.NoError(t, err)
		require.True(t, reopened.Save())
		after, err := os.ReadFile(d.Path())
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})
}

func TestReloadFailuresLeaveStateUntouched(t *testing.T) {
	d := newTestDocument(t)
	require.True(t, d.AddComponent("TEXTBUTTON"))
	snapshot := d.Root().Snapshot()

	t.Run("missing file", func(t *testing.T) {
		assert.False(t, d.Reload())
	})

	t.Run("no metadata block", func(t *testing.T) {
		require.NoError(t, os.WriteFile(d.Path(), []byte("int main() {}\n"), 0644))
		assert.False(t, d.Reload())
	})

	t.Run("malformed metadata", func(t *testing.T) {
		body := "#if 0\n/** x\nJUCER_COMPONENT_METADATA_START\n<<<garbage\nJUCER_COMPONENT_METADATA_END */\n#endif\n"
		require.NoError(t, os.WriteFile(d.Path(), []byte(body), 0644))
		assert.False(t, d.Reload())
	})

	t.Run("wrong root type", func(t *testing.T) {
		body := "#if 0\n/** x\nJUCER_COMPONENT_METADATA_START\n<WINDOW/>\nJUCER_COMPONENT_METADATA_END */\n#endif\n"
		require.NoError(t, os.WriteFile(d.Path(), []byte(body), 0644))
		assert.False(t, d.Reload())
	})

	assert.Empty(t, cmp.Diff(snapshot, d.Root().Snapshot()),
		"failed reloads must not disturb the in-memory tree")
	assert.True(t, d.HasUnsavedChanges(), "dirty flag survives failed reload")
}

func TestReloadClearsUndoHistory(t *testing.T) {
	d := newTestDocument(t)
	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.Save())
	require.True(t, d.Reload())

	assert.False(t, d.Undo(), "history is meaningless after a wholesale replace")
}

func TestUnknownTypeTolerance(t *testing.T) {
	d := newTestDocument(t)
	require.True(t, d.AddComponent("TEXTBUTTON"))
	future := tree.New("HOLOSLIDER")
	future.SetProperty(tree.PropID, tree.StringValue("xyz1234567"), nil)
	future.SetProperty("futureSetting", tree.StringValue("keep"), nil)
	d.ComponentGroup().AddChild(future, -1, nil)
	require.True(t, d.Save())

	reopened := New(d.Path(), testRegistry(), nil, nil)
	require.Equal(t, 2, reopened.NumComponents(), "unknown node survives reload")
	assert.Nil(t, reopened.CreateLiveObject(1), "but produces no live object")

	require.True(t, reopened.Save())
	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "HOLOSLIDER", "unknown node round-trips through save")
	assert.Contains(t, string(data), "futureSetting=\"keep\"")
}

func TestUndoRedoInverseOnDocument(t *testing.T) {
	d := newTestDocument(t)
	s0 := d.Root().Snapshot()

	require.True(t, d.AddComponent("TEXTBUTTON"))
	n := d.Component(0)
	d.BeginTransaction("Move component")
	n.SetProperty(tree.PropBounds, tree.StringValue("5 6 7 8"), d.UndoLog())
	d.BeginTransaction("Rename component")
	n.SetProperty(tree.PropMemberName, tree.StringValue("renamed"), d.UndoLog())
	sFinal := d.Root().Snapshot()

	for i := 0; i < 3; i++ {
		require.True(t, d.Undo(), "undo %d", i)
	}
	assert.Empty(t, cmp.Diff(s0, d.Root().Snapshot()), "all undone returns to the initial state")
	assert.False(t, d.Undo())

	for i := 0; i < 3; i++ {
		require.True(t, d.Redo(), "redo %d", i)
	}
	assert.Empty(t, cmp.Diff(sFinal, d.Root().Snapshot()), "all redone returns to the final state")
	assert.False(t, d.Redo())
}

func TestAddComponent(t *testing.T) {
	d := newTestDocument(t)

	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.AddComponent("TEXTBUTTON"))
	assert.False(t, d.AddComponent("HOLOGRAM"))
	require.Equal(t, 2, d.NumComponents())

	first, second := d.Component(0), d.Component(1)
	assert.Equal(t, "textButton", first.PropertyText(tree.PropMemberName))
	assert.Equal(t, "textButton1", second.PropertyText(tree.PropMemberName))
	assert.NotEqual(t, first.PropertyText(tree.PropID), second.PropertyText(tree.PropID))

	b, ok := tree.ParseRect(second.PropertyText(tree.PropBounds))
	require.True(t, ok)
	assert.GreaterOrEqual(t, b.X, 100)
	assert.Less(t, b.X, 200)
}

func TestRemoveComponent(t *testing.T) {
	d := newTestDocument(t)
	require.True(t, d.AddComponent("TEXTBUTTON"))
	n := d.Component(0)

	d.RemoveComponent(n)
	assert.Equal(t, 0, d.NumComponents())

	require.True(t, d.Undo())
	assert.Equal(t, 1, d.NumComponents(), "removal is undoable")

	// Nodes outside the group are ignored.
	d.RemoveComponent(tree.New("TEXTBUTTON"))
	d.RemoveComponent(nil)
	assert.Equal(t, 1, d.NumComponents())
}

func TestIdentityBinding(t *testing.T) {
	d := newTestDocument(t)
	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.AddComponent("TOGGLEBUTTON"))

	obj := d.CreateLiveObject(1)
	require.NotNil(t, obj)
	assert.Equal(t, "TOGGLEBUTTON", obj.TypeTag)

	n := d.NodeForLiveObject(obj)
	require.NotNil(t, n)
	assert.Same(t, d.Component(1), n)
	assert.True(t, d.ContainsLiveObject(obj))

	t.Run("update pulls node state onto the object", func(t *testing.T) {
		d.BeginTransaction("Move")
		n.SetProperty(tree.PropBounds, tree.StringValue("9 9 90 20"), d.UndoLog())
		d.UpdateLiveObject(obj)
		assert.Equal(t, tree.Rect{X: 9, Y: 9, W: 90, H: 20}, obj.Bounds)
	})

	t.Run("deleted node stops resolving", func(t *testing.T) {
		d.RemoveComponent(n)
		assert.Nil(t, d.NodeForLiveObject(obj))
		assert.False(t, d.ContainsLiveObject(obj))
	})

	t.Run("released binding stops resolving", func(t *testing.T) {
		other := d.CreateLiveObject(0)
		require.NotNil(t, other)
		d.ReleaseLiveObject(other)
		assert.Nil(t, d.NodeForLiveObject(other))
	})

	t.Run("out of range index", func(t *testing.T) {
		assert.Nil(t, d.CreateLiveObject(99))
	})
}

func TestUniqueMemberName(t *testing.T) {
	t.Run("fills the next numeric slot", func(t *testing.T) {
		d := newTestDocument(t)
		addSilentComponent(d, "TEXTBUTTON", "button1")
		addSilentComponent(d, "TEXTBUTTON", "button2")
		assert.Equal(t, "button3", d.UniqueMemberName("button"))
	})

	t.Run("no collision returns the name unchanged", func(t *testing.T) {
		d := newTestDocument(t)
		addSilentComponent(d, "TEXTBUTTON", "button1")
		assert.Equal(t, "slider", d.UniqueMemberName("slider"))
	})

	t.Run("bare base counts as suffix zero", func(t *testing.T) {
		d := newTestDocument(t)
		addSilentComponent(d, "TEXTBUTTON", "textButton")
		assert.Equal(t, "textButton1", d.UniqueMemberName("textButton"))
	})

	t.Run("explicitly numbered free name is kept", func(t *testing.T) {
		d := newTestDocument(t)
		addSilentComponent(d, "TEXTBUTTON", "button2")
		assert.Equal(t, "button7", d.UniqueMemberName("button7"))
	})

	t.Run("taken numbered name advances past the family", func(t *testing.T) {
		d := newTestDocument(t)
		addSilentComponent(d, "TEXTBUTTON", "button1")
		addSilentComponent(d, "TEXTBUTTON", "button5")
		assert.Equal(t, "button6", d.UniqueMemberName("button5"))
	})

	t.Run("normalizes invalid identifiers", func(t *testing.T) {
		d := newTestDocument(t)
		assert.Equal(t, "okButton", d.UniqueMemberName("Ok Button!"))
		assert.Equal(t, "_9lives", d.UniqueMemberName("9lives"))
		assert.Equal(t, "component", d.UniqueMemberName("  ++  "))
	})
}

func TestMakeValidIdentifier(t *testing.T) {
	cases := map[string]string{
		"textButton":  "textButton",
		"Text Button": "textButton",
		"9lives":      "_9lives",
		"":            "component",
		"***":         "component",
		"with_под":    "with_",
	}
	for in, want := range cases {
		assert.Equal(t, want, MakeValidIdentifier(in), "input %q", in)
	}
}

func TestMakeValidClassName(t *testing.T) {
	cases := map[string]string{
		"LoginScreen": "LoginScreen",
		"loginScreen": "LoginScreen",
		"9Lives":      "_9Lives",
		"":            "Component",
		"***":         "Component",
	}
	for in, want := range cases {
		assert.Equal(t, want, MakeValidClassName(in), "input %q", in)
	}
}

func TestSetClassNameKeepsTypeCase(t *testing.T) {
	d := newTestDocument(t)

	d.SetClassName("LoginScreen")
	assert.Equal(t, "LoginScreen", d.ClassName(), "leading capital survives")

	d.SetClassName("mainComponent")
	assert.Equal(t, "MainComponent", d.ClassName(), "type names get a leading capital")

	require.True(t, d.Undo())
	assert.Equal(t, "LoginScreen", d.ClassName())
}

func TestGeneratedOutputShape(t *testing.T) {
	d := newTestDocument(t)
	d.SetClassName("LoginScreen")
	require.True(t, d.AddComponent("TEXTBUTTON"))
	require.True(t, d.Save())

	cpp, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	text := string(cpp)
	assert.Contains(t, text, "LoginScreen::LoginScreen()")
	assert.Contains(t, text, "textButton->setBounds")
	assert.True(t, strings.HasSuffix(text, "#endif\n"), "metadata block sits at the end")

	header, err := os.ReadFile(strings.TrimSuffix(d.Path(), ".cpp") + ".h")
	require.NoError(t, err)
	assert.Contains(t, string(header), "class LoginScreen")
	assert.Contains(t, string(header), "TextButton* textButton;")
}
