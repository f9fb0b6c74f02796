package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"compedit/internal/tree"
)

// addCmd adds a new component of the given type and saves the document.
var addCmd = &cobra.Command{
	Use:   "add <file.cpp> <TYPE_TAG>",
	Short: "Add a new component to a document and save it",
	Long: `Adds a component of the given type (see "compedit types") at a
randomized default position, then regenerates the source and header files.
The target file is created if it does not exist yet.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

// renameCmd changes a component's member name.
var renameCmd = &cobra.Command{
	Use:   "rename <file.cpp> <member> <newName>",
	Short: "Rename a component's generated member variable",
	Args:  cobra.ExactArgs(3),
	RunE:  runRename,
}

func runAdd(cmd *cobra.Command, args []string) error {
	path, tag := args[0], args[1]
	doc := openDocument(path)
	if !doc.AddComponent(tag) {
		return fmt.Errorf("unknown component type %q", tag)
	}
	if !doc.Save() {
		return fmt.Errorf("could not save %s", path)
	}
	n := doc.Component(doc.NumComponents() - 1)
	fmt.Printf("added %s %s at %s\n",
		n.Type(), n.PropertyText(tree.PropMemberName), n.PropertyText(tree.PropBounds))
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	path, oldName, newName := args[0], args[1], args[2]
	doc := openDocument(path)
	if !doc.Reload() {
		return fmt.Errorf("%s: no loadable component metadata", path)
	}
	n := doc.ComponentWithMemberName(oldName)
	if n == nil {
		return fmt.Errorf("no component with member name %q", oldName)
	}

	unique := doc.UniqueMemberName(newName)
	doc.BeginTransaction("Rename component")
	n.SetProperty(tree.PropMemberName, tree.StringValue(unique), doc.UndoLog())

	if !doc.Save() {
		return fmt.Errorf("could not save %s", path)
	}
	fmt.Printf("renamed %s -> %s\n", oldName, unique)
	return nil
}
