package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alastai/grasch-lex/lattice"
)

func handleList(list []lattice.Handle) string {
	strs := make([]string, len(list))
	for i, h := range list {
		strs[i] = fmt.Sprint(h)
	}
	return strings.Join(strs, ",")
}

func NewLatticeCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "lattice <definition>",
		Short: "Print the content-type lattice of a schema definition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadSchema(args)
			if err != nil {
				return err
			}
			snap := s.Lattice()
			if check {
				if err := snap.Check(); err != nil {
					return err
				}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HANDLE\tNAME\tATTRIBUTES\tSUPERTYPES")
			for _, h := range snap.Members() {
				ct := snap.Content(h)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h, ct.Name(), ct.ID(), handleList(snap.SupertypesOf(h, false)))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "verify order invariants of the whole lattice")
	return cmd
}
