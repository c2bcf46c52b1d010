package cmd

import (
	"fmt"
	"io"
	"strings"

	"javacheck/internal/analyzer/decompose"
	"javacheck/internal/ast"
	"javacheck/internal/javatree"

	"github.com/spf13/cobra"
)

var (
	decomposeStrengthFlag      string
	decomposeIgnoreGettersFlag bool
	decomposeIgnoreSettersFlag bool
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose <file.java>",
	Short: "Split each class into groups of members that use each other",
	Long: `decompose builds the field and method usage graph of every class in a
Java file and prints the groups it splits into, one line per group.

Groups are strongly connected by default; --strength=weak ignores the
direction of use. Accessors can be left out of the graph with --ignore-getters and
--ignore-setters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decomposeFile(cmd, args[0], cmd.OutOrStdout())
	},
}

func init() {
	decomposeCmd.Flags().StringVar(&decomposeStrengthFlag, "strength", "strong", "Grouping: strong or weak")
	decomposeCmd.Flags().BoolVar(&decomposeIgnoreGettersFlag, "ignore-getters", false, "Leave getX methods out")
	decomposeCmd.Flags().BoolVar(&decomposeIgnoreSettersFlag, "ignore-setters", false, "Leave setX methods out")
	rootCmd.AddCommand(decomposeCmd)
}

func decomposeFile(cmd *cobra.Command, path string, out io.Writer) error {
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

	strength, err := decompose.ParseStrength(decomposeStrengthFlag)
	if err != nil {
		return err
	}
	opts := decompose.Options{
		Strength:      strength,
		IgnoreGetters: decomposeIgnoreGettersFlag,
		IgnoreSetters: decomposeIgnoreSettersFlag,
	}

	for id := range tree.NodesByType(ast.ClassDeclaration) {
		class, err := tree.SubtreeAST(id)
		if err != nil {
			return err
		}
		components, err := decompose.Class(class, opts)
		if err != nil {
			return err
		}

		line, _ := tree.Line(id)
		fmt.Fprintf(out, "%s:%d\t%s\t%d %s group(s)\n", path, line, className(class), len(components), opts.Strength)
		for i, c := range components {
			fields, methods := decompose.MemberNames(c)
			fmt.Fprintf(out, "  %d. fields=[%s] methods=[%s]\n", i+1, strings.Join(fields, ", "), strings.Join(methods, ", "))
		}
	}
	return nil
}

// className is the first STRING child of the class that is not javadoc.
func className(class *ast.AST) string {
	for c := range class.ChildrenWithType(class.Root(), ast.String) {
		if s := class.Text(c); !strings.HasPrefix(s, "/**") {
			return s
		}
	}
	return ""
}
