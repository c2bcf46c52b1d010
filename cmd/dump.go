package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"javacheck/internal/ast"
	"javacheck/internal/javatree"

	"github.com/spf13/cobra"
)

var (
	dumpJSONFlag bool
	dumpTypeFlag string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.java>",
	Short: "Print the AST of a Java file",
	Long: `dump parses one Java file and prints its AST as an indented outline.

With --json the whole node store is written as a flat list of nodes.
With --type only the nodes of that type are listed, one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dump(cmd, args[0], cmd.OutOrStdout())
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpJSONFlag, "json", false, "Write the node store as JSON")
	dumpCmd.Flags().StringVarP(&dumpTypeFlag, "type", "t", "", "List nodes of this type only (e.g. METHOD_DECLARATION)")
	rootCmd.AddCommand(dumpCmd)
}

func dump(cmd *cobra.Command, path string, out io.Writer) error {
	parser := javatree.NewParser()
	defer parser.Close()

	root, err := parser.ParseFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	tree, err := ast.Build(root)
	if err != nil {
		return err
	}

	switch {
	case dumpTypeFlag != "":
		t, err := ast.ParseNodeType(dumpTypeFlag)
		if err != nil {
			return err
		}
		for id := range tree.NodesByType(t) {
			line, ok := tree.Line(id)
			if !ok {
				line = tree.LineNumberFromChildren(id)
			}
			fmt.Fprintf(out, "%s:%d\t%s\t#%d\n", path, line, t, id)
		}
		return nil
	case dumpJSONFlag:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		_, err := io.WriteString(out, tree.String())
		return err
	}
}
