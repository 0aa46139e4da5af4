package cli

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newModelsCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "models [name]",
		Short: "Print the documentation model of registered classes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any = a.reg.Models()
			if len(args) == 1 {
				out, err := a.reg.LookupOutputSchema(args[0])
				if err != nil {
					return err
				}
				v = out.Model()
			}

			var (
				b   []byte
				err error
			)
			switch format {
			case "yaml":
				b, err = yaml.Marshal(v)
			case "json":
				b, err = gojson.MarshalIndent(v, "", "  ")
			default:
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(b), "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}
