package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reoring/domainmap"
)

func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name> <file>",
		Short: "Validate a JSON or YAML document against a registered class",
		Long: `Parse reads a document (JSON, or YAML when the file ends in .yaml or .yml;
"-" reads JSON from stdin), builds an instance of the class and prints it
back through the class's output schema.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			data, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			var v any
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				v, err = a.reg.ParseYAML(cmd.Context(), name, data)
			default:
				v, err = a.reg.ParseJSON(cmd.Context(), name, data)
			}
			if err != nil {
				if ve, ok := domainmap.AsValidationError(err); ok {
					printIssues(cmd.ErrOrStderr(), ve)
				}
				return err
			}

			b, err := a.reg.EncodeJSON(name, v)
			if err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "✓ valid %s\n", name)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func printIssues(w io.Writer, ve *domainmap.ValidationError) {
	header := color.New(color.FgRed, color.Bold)
	pathColor := color.New(color.FgYellow)
	header.Fprintf(w, "✗ invalid %s (%d issues)\n", ve.Class, len(ve.Issues))
	for _, it := range ve.Issues {
		fmt.Fprint(w, "  ")
		pathColor.Fprint(w, it.Path)
		fmt.Fprintf(w, ": %s [%s]\n", it.Message, it.Code)
	}
}
