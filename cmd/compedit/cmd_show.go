package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"compedit/internal/codec"
	"compedit/internal/registry"
	"compedit/internal/tree"
)

// showCmd prints a document's class name and component list.
var showCmd = &cobra.Command{
	Use:   "show <file.cpp>",
	Short: "Show the component tree embedded in a generated source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// typesCmd lists the registered component types.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the component types this build supports",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

// validateCmd checks that a file carries a loadable metadata block.
var validateCmd = &cobra.Command{
	Use:   "validate <file.cpp>",
	Short: "Check that a file is a component file with parsable metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc := openDocument(path)
	if !doc.Reload() {
		return fmt.Errorf("%s: no loadable component metadata", path)
	}

	fmt.Printf("class %s  (%d components)\n", doc.ClassName(), doc.NumComponents())
	for i := 0; i < doc.NumComponents(); i++ {
		n := doc.Component(i)
		bounds := n.PropertyText(tree.PropBounds)
		fmt.Printf("  %-14s %-20s %-14s %q\n",
			n.Type(),
			n.PropertyText(tree.PropMemberName),
			bounds,
			n.PropertyText(tree.PropName))
	}
	return nil
}

func runTypes(cmd *cobra.Command, args []string) error {
	reg := registry.Builtin(registry.Params{Logger: logger})
	for i := 0; i < reg.NumHandlers(); i++ {
		h := reg.HandlerAt(i)
		w, hgt := h.DefaultSize()
		fmt.Printf("%-14s %-14s default %dx%d\n", h.TypeTag(), h.DisplayName(), w, hgt)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !codec.IsComponentFile(path) {
		return fmt.Errorf("%s: not a component file", path)
	}
	doc := openDocument(path)
	if !doc.Reload() {
		return fmt.Errorf("%s: metadata block is not parsable", path)
	}
	fmt.Printf("%s: ok (%d components)\n", path, doc.NumComponents())
	return nil
}
