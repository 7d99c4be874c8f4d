package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/graphtype"
	"github.com/alastai/grasch-lex/internal/config"
	"github.com/alastai/grasch-lex/internal/definition"
)

const flagInstances = "instances"

// insertAll inserts every instance into the graph, nodes before edges, and
// reports one line per instance. It returns the number of rejected instances.
func insertAll(w io.Writer, g *graphtype.Graph, list []definition.Instance) int {
	s := g.GraphType().Schema()
	nodes := make(map[int]graphtype.NodeID)
	failed := 0
	report := func(i int, name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(w, "%d\tFAIL\t%s\t%v\n", i, name, err)
			return
		}
		fmt.Fprintf(w, "%d\tOK\t%s\n", i, name)
	}
	for i, raw := range list {
		if raw.IsEdge() {
			continue
		}
		var (
			id  graphtype.NodeID
			err error
		)
		if raw.Type != "" {
			nt, ok := s.NodeType(raw.Type)
			if !ok {
				report(i, raw.Type, fmt.Errorf("unknown node type %q", raw.Type))
				continue
			}
			id, err = g.InsertNodeAs(raw.ToInstance(nt.Content()), nt)
		} else {
			id, err = g.InsertNode(raw.ToInstance(nil))
		}
		if err != nil {
			report(i, raw.Type, err)
			continue
		}
		nodes[i] = id
		n, _ := g.Node(id)
		report(i, n.Type.Name(), nil)
	}
	for i, raw := range list {
		if !raw.IsEdge() {
			continue
		}
		tail, ok1 := nodes[*raw.Tail]
		head, ok2 := nodes[*raw.Head]
		if !ok1 || !ok2 {
			report(i, raw.Type, fmt.Errorf("endpoints %d and %d must be valid node instances", *raw.Tail, *raw.Head))
			continue
		}
		var (
			id  graphtype.EdgeID
			err error
		)
		if raw.Type != "" {
			et, ok := s.EdgeType(raw.Type)
			if !ok {
				report(i, raw.Type, fmt.Errorf("unknown edge type %q", raw.Type))
				continue
			}
			id, err = g.InsertEdgeAs(tail, head, raw.ToInstance(et.Content()), et)
		} else {
			id, err = g.InsertEdge(tail, head, raw.ToInstance(nil))
		}
		if err != nil {
			report(i, raw.Type, err)
			continue
		}
		e, _ := g.Edge(id)
		report(i, e.Type.Name(), nil)
	}
	for _, err := range g.Check() {
		failed++
		fmt.Fprintf(w, "-\tFAIL\t\t%v\n", err)
	}
	return failed
}

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate graph instances against a schema definition.",
		Long: "Validate the instances listed in a definition file, or in a separate instances file, " +
			"against its element types. Instances naming a type are checked under the configured mode; " +
			"others are classified among all element types of their kind.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, s, err := loadSchema(args)
			if err != nil {
				return err
			}
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			list := f.Instances
			if path, _ := cmd.Flags().GetString(flagInstances); path != "" {
				inst, err := definition.Load(path)
				if err != nil {
					return err
				}
				list = inst.Instances
			}
			gt, err := f.GraphType(s, cfg.Mode)
			if err != nil {
				return err
			}
			clog.Infof("validating %d instances under %s mode", len(list), cfg.Mode)
			g := graphtype.NewGraph(gt.Name(), gt)
			if failed := insertAll(cmd.OutOrStdout(), g, list); failed != 0 {
				return fmt.Errorf("%d validation failures in %d instances", failed, len(list))
			}
			return nil
		},
	}
	cmd.Flags().String(flagInstances, "", "file with instances to validate instead of the ones in the definition")
	cmd.Flags().String("mode", "", `conformance mode ("exact", "subtype", "proper-subtype")`)
	viper.BindPFlag(config.KeyMode, cmd.Flags().Lookup("mode"))
	return cmd
}
