package codec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = "<COMPONENT className=\"MainComponent\">\n  <COMPONENTS/>\n</COMPONENT>\n"

func TestMetadataBlockRoundTrip(t *testing.T) {
	block := MetadataBlock(sampleXML)

	assert.True(t, strings.HasPrefix(block, "#if 0\n"))
	assert.True(t, strings.HasSuffix(block, "#endif\n"))
	assert.Contains(t, block, MetadataTagStart)
	assert.Contains(t, block, MetadataTagEnd+" */")

	// A file is generated code followed by the block; extraction must give
	// the XML back (modulo surrounding blank lines).
	file := "// generated code\nint main() {}\n\n" + block
	got, ok := ExtractMetadata(strings.NewReader(file))
	require.True(t, ok)
	assert.Equal(t, sampleXML, strings.TrimLeft(got, "\n"))
}

func TestExtractMetadataFailures(t *testing.T) {
	t.Run("no sentinels", func(t *testing.T) {
		_, ok := ExtractMetadata(strings.NewReader("int main() {}\n"))
		assert.False(t, ok)
	})
	t.Run("start without end", func(t *testing.T) {
		_, ok := ExtractMetadata(strings.NewReader(MetadataTagStart + "\n<COMPONENT/>\n"))
		assert.False(t, ok)
	})
	t.Run("empty input", func(t *testing.T) {
		_, ok := ExtractMetadata(strings.NewReader(""))
		assert.False(t, ok)
	})
}

func TestIsComponentFile(t *testing.T) {
	dir := t.TempDir()

	comp := filepath.Join(dir, "MainComponent.cpp")
	require.NoError(t, os.WriteFile(comp, []byte(MetadataBlock(sampleXML)), 0644))
	assert.True(t, IsComponentFile(comp))

	plain := filepath.Join(dir, "Plain.cpp")
	require.NoError(t, os.WriteFile(plain, []byte("int main() {}\n"), 0644))
	assert.False(t, IsComponentFile(plain))

	wrongExt := filepath.Join(dir, "MainComponent.h")
	require.NoError(t, os.WriteFile(wrongExt, []byte(MetadataBlock(sampleXML)), 0644))
	assert.False(t, IsComponentFile(wrongExt))

	assert.False(t, IsComponentFile(filepath.Join(dir, "missing.cpp")))
}

func TestWriteFileIfDifferent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.cpp")

	wrote, err := WriteFileIfDifferent(path, []byte("one"))
	require.NoError(t, err)
	assert.True(t, wrote, "first write creates the file")

	info1, err := os.Stat(path)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	wrote, err = WriteFileIfDifferent(path, []byte("one"))
	require.NoError(t, err)
	assert.False(t, wrote, "identical content skips the write")

	info2, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime(), "no timestamp churn")

	wrote, err = WriteFileIfDifferent(path, []byte("two"))
	require.NoError(t, err)
	assert.True(t, wrote)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestHeaderPathFor(t *testing.T) {
	assert.Equal(t, "/x/MainComponent.h", HeaderPathFor("/x/MainComponent.cpp"))
}

func TestGeneratedCodeEmission(t *testing.T) {
	gc := &GeneratedCode{
		ClassName:          "MainComponent",
		MemberDeclarations: []string{"TextButton* okButton;"},
		Initialisers:       []string{`addAndMakeVisible (okButton = new TextButton ("ok"));`},
		ConstructorCode:    []string{"okButton->setBounds (10, 20, 150, 24);"},
		DestructorCode:     []string{"deleteAndZero (okButton);"},
	}

	header := string(gc.EmitHeader())
	assert.Contains(t, header, "#ifndef MAINCOMPONENT_H_INCLUDED")
	assert.Contains(t, header, "class MainComponent")
	assert.Contains(t, header, "TextButton* okButton;")

	cpp := string(gc.EmitCPP("MainComponent.h"))
	assert.Contains(t, cpp, `#include "MainComponent.h"`)
	assert.Contains(t, cpp, "MainComponent::MainComponent()")
	assert.Contains(t, cpp, "okButton->setBounds (10, 20, 150, 24);")
	assert.Contains(t, cpp, "deleteAndZero (okButton);")

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, header, string(gc.EmitHeader()))
		assert.Equal(t, cpp, string(gc.EmitCPP("MainComponent.h")))
	})
}
