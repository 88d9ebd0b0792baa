package cli

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/qmlkit/internal/dataset"
	"github.com/spf13/cobra"
)

type descriptorRecord struct {
	Molecule string    `json:"molecule"`
	Atom     *int      `json:"atom,omitempty"`
	Values   []float64 `json:"values"`
}

// addRepresentationFlags registers the flags shared by represent and kernel.
func addRepresentationFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Int("size", 0, "atom capacity of padded descriptors")
	fs.Float64("cut", 0, "cutoff radius in Å (acsf, arad, fchl)")
	fs.String("sorting", "", "Coulomb matrix sorting (unsorted|row-norm|distance)")
	fs.StringToInt("asize", nil, "bag of bonds capacities, e.g. C=7,H=16 (default: dataset maxima)")
	bindFlag(fs, "size", "representation.size")
	bindFlag(fs, "cut", "representation.cut")
	bindFlag(fs, "sorting", "representation.sorting")
	bindFlag(fs, "asize", "representation.asize")
}

// NewRepresentCommand creates the represent command.
func NewRepresentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "represent DATASET",
		Short: "Print the descriptors of every molecule in a dataset",
		Long: `Generate one descriptor per molecule (cm, cm-eigen, bob, slatm) or one
per atom (cm-atomic, slatm-local, acsf, fchl19, arad, fchl) for every molecule
of a YAML dataset:

  molecules:
    - name: water
      atoms:
        - {element: O, xyz: [0, 0, 0]}
        - {element: H, xyz: [0.76, 0.59, 0]}
        - {element: H, xyz: [-0.76, 0.59, 0]}
      cell: [[5, 0, 0], [0, 5, 0], [0, 0, 5]]   # optional`,
		Example: `  # Sorted Coulomb matrices as CSV
  qmlkit represent --family cm --size 9 -o csv molecules.yaml

  # Per-atom FCHL19 descriptors as JSON
  qmlkit represent --family fchl19 -o json molecules.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := stateFrom(cmd)
			if err != nil {
				return err
			}
			set, err := dataset.ReadFile(args[0], nil)
			if err != nil {
				return err
			}
			family := strings.ToLower(st.cfg.Representation.Family)
			st.logger.Debug("generating descriptors", "family", family, "molecules", len(set.Molecules), "size", st.cfg.Representation.Size)
			d, err := newDescriber(st.cfg).describe(family, set)
			if err != nil {
				return err
			}

			return st.renderer.Render(descriptorGrid(set, d))
		},
	}
	cmd.Flags().String("family", "", "descriptor family ("+strings.Join(descriptorFamilies, "|")+")")
	bindFlag(cmd.Flags(), "family", "representation.family")
	addRepresentationFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("family", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return descriptorFamilies, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// rowLabels names the rows of d: "water" or "water/0".
func rowLabels(set *dataset.Set, d *descriptors) []string {
	var out []string
	for i, rows := range d.x {
		for a := range rows {
			if d.perAtom {
				out = append(out, fmt.Sprintf("%s/%d", set.Names[i], a))
			} else {
				out = append(out, set.Names[i])
			}
		}
	}

	return out
}

func descriptorGrid(set *dataset.Set, d *descriptors) Grid {
	g := Grid{Title: d.family, Labels: rowLabels(set, d)}
	var recs []descriptorRecord
	width := 0
	for i, rows := range d.x {
		for a, v := range rows {
			g.Rows = append(g.Rows, v)
			width = max(width, len(v))
			rec := descriptorRecord{Molecule: set.Names[i], Values: v}
			if d.perAtom {
				rec.Atom = &a
			}
			recs = append(recs, rec)
		}
	}
	g.Header = append(g.Header, "row")
	for k := 0; k < width; k++ {
		g.Header = append(g.Header, fmt.Sprint(k))
	}
	g.Payload = recs

	return g
}
