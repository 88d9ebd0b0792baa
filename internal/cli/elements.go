package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/katalvlaran/qmlkit/elements"
	"github.com/spf13/cobra"
)

type elementRecord struct {
	Symbol string `json:"symbol"`
	Z      int    `json:"z"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// NewElementsCommand creates the elements command.
func NewElementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the periodic table",
		Long: `List every element known to qmlkit with its nuclear charge and its
(row, column) position, as used by the ARAD element similarity and the
periodic-table alchemy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := stateFrom(cmd)
			if err != nil {
				return err
			}
			es := elements.Default().Elements()
			rows := make([]table.Row, len(es))
			recs := make([]elementRecord, len(es))
			for i, e := range es {
				rows[i] = table.Row{e.Symbol, e.Z, e.Row, e.Column}
				recs[i] = elementRecord{Symbol: e.Symbol, Z: e.Z, Row: e.Row, Column: e.Column}
			}

			return st.renderer.Records([]string{"symbol", "z", "row", "column"}, rows, recs)
		},
	}
}
