package command

import (
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alastai/grasch-lex/export"
	"github.com/alastai/grasch-lex/internal/config"
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Export the lattice and element types of a schema definition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadSchema(args)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString(flagOut)
			w, closer, err := output(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := export.Write(w, viper.GetString(config.KeyExportFormat), export.Of(s)); err != nil {
				closer()
				return err
			}
			return closer()
		},
	}
	names := []string{"json"}
	for _, f := range quad.Formats() {
		if f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	cmd.Flags().StringP(flagOut, "o", "", `file to write to ("-" for stdout)`)
	cmd.Flags().String("format", "", `output format ("`+strings.Join(names, `", "`)+`")`)
	viper.BindPFlag(config.KeyExportFormat, cmd.Flags().Lookup("format"))
	return cmd
}
