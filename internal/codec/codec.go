// Package codec handles the dual-format persistence of a component
// document: an ordinary generated C++ source file with the serialized node
// tree embedded between sentinel lines inside a disabled comment block.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// The sentinel lines delimiting the embedded metadata block. Their exact
// spelling is part of the on-disk contract and must match what older files
// already contain.
const (
	MetadataTagStart = "JUCER_COMPONENT_METADATA_START"
	MetadataTagEnd   = "JUCER_COMPONENT_METADATA_END"
)

// ExtractMetadata scans r line by line for the start sentinel and returns
// the text between it and the end sentinel. ok is false when no complete
// block is present.
func ExtractMetadata(r io.Reader) (xml string, ok bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for sc.Scan() {
		if !strings.Contains(sc.Text(), MetadataTagStart) {
			continue
		}
		var buf strings.Builder
		for sc.Scan() {
			line := sc.Text()
			if strings.Contains(line, MetadataTagEnd) {
				return buf.String(), true
			}
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		return "", false // start sentinel without an end
	}
	return "", false
}

// MetadataBlock wraps the serialized tree in the sentinel-delimited comment
// block appended to the generated source file.
func MetadataBlock(xml string) string {
	var b strings.Builder
	b.WriteString("#if 0\n")
	b.WriteString("/** compedit-generated metadata section - Edit this data at own risk!\n")
	b.WriteString(MetadataTagStart + "\n\n")
	b.WriteString(xml)
	if !strings.HasSuffix(xml, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(MetadataTagEnd + " */\n")
	b.WriteString("#endif\n")
	return b.String()
}

// IsComponentFile reports whether path looks like a generated component
// source: a .cpp file containing the start sentinel.
func IsComponentFile(path string) bool {
	if !strings.HasSuffix(path, ".cpp") {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if strings.Contains(sc.Text(), MetadataTagStart) {
			return true
		}
	}
	return false
}

// WriteFileIfDifferent writes data to path only when the file's current
// contents differ, so an unchanged save does not churn timestamps. Returns
// whether the file was written.
func WriteFileIfDifferent(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// HeaderPathFor maps a .cpp path to its paired header path.
func HeaderPathFor(cppPath string) string {
	return strings.TrimSuffix(cppPath, ".cpp") + ".h"
}
