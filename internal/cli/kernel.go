package cli

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/qmlkit/alchemy"
	"github.com/katalvlaran/qmlkit/arad"
	"github.com/katalvlaran/qmlkit/fchl"
	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/internal/config"
	"github.com/katalvlaran/qmlkit/internal/dataset"
	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/katalvlaran/qmlkit/matrix"
	"github.com/katalvlaran/qmlkit/representation"
	"github.com/spf13/cobra"
)

// Alchemy modes of the kernel command.
const (
	alchemyPeriodicTable = "periodic-table"
	alchemyOff           = "off"
)

type kernelRecord struct {
	Family string             `json:"family"`
	Params map[string]float64 `json:"params"`
	Rows   []string           `json:"rows"`
	Cols   []string           `json:"cols"`
	Matrix [][]float64        `json:"matrix"`
}

// parseParams merges "name=v1,v2" flag values over the configured lists.
func parseParams(base map[string][]float64, flags []string) (kernel.Params, error) {
	out := make(kernel.Params, len(base))
	for k, v := range base {
		out[k] = slices.Clone(v)
	}
	for _, f := range flags {
		name, list, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q: want name=v1,v2", f)
		}
		var vals []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", f, err)
			}
			vals = append(vals, v)
		}
		out[name] = vals
	}

	return out, nil
}

func parseAlchemy(name string) (*alchemy.Coupling, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case alchemyPeriodicTable, "":
		return alchemy.DefaultPeriodicTable()
	case alchemyOff:
		return alchemy.Off(alchemy.DefaultEmax)
	}

	return nil, fmt.Errorf("unknown alchemy %q (want %s|%s)", name, alchemyPeriodicTable, alchemyOff)
}

// NewKernelCommand creates the kernel command.
func NewKernelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel DATASET [AGAINST]",
		Short: "Print kernel matrices between the molecules of datasets",
		Long: `Evaluate kernel matrices over a dataset, or between two datasets, at the
atomic, local or global level. One matrix is printed per hyperparameter set.

fchl evaluates every kernel family over the scalar FCHL overlap, with
element coupling set by --alchemy. arad is gaussian only. Every other
representation family is compared as plain vectors.`,
		Example: `  # Local FCHL gaussian kernels for two widths
  qmlkit kernel --representation fchl --param sigma=2.5,5 train.yaml

  # Global laplacian kernel between two datasets of Coulomb matrices
  qmlkit kernel --representation cm --level global --family laplacian \
      --param sigma=100 train.yaml test.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := stateFrom(cmd)
			if err != nil {
				return err
			}
			raw, err := cmd.Flags().GetStringArray("param")
			if err != nil {
				return err
			}
			params, err := parseParams(st.cfg.Kernel.Params, raw)
			if err != nil {
				return err
			}
			x, err := dataset.ReadFile(args[0], nil)
			if err != nil {
				return err
			}
			var y *dataset.Set
			if len(args) == 2 {
				if y, err = dataset.ReadFile(args[1], nil); err != nil {
					return err
				}
			}

			return runKernel(st, x, y, params)
		},
	}
	fs := cmd.Flags()
	fs.String("representation", "", "representation family ("+strings.Join(descriptorFamilies, "|")+")")
	fs.String("level", "", "kernel level (atomic|local|global)")
	fs.String("family", "", "kernel family (gaussian|laplacian|linear|polynomial|...)")
	fs.StringArray("param", nil, "hyperparameter list name=v1,v2 (repeatable)")
	fs.String("alchemy", "", "fchl element coupling (periodic-table|off)")
	bindFlag(fs, "representation", "kernel.representation")
	bindFlag(fs, "level", "kernel.level")
	bindFlag(fs, "family", "kernel.family")
	bindFlag(fs, "alchemy", "kernel.alchemy")
	addRepresentationFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("family", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range kernel.Families() {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// kernelRun is one resolved kernel command.
type kernelRun struct {
	cfg    *config.Config
	logger *slog.Logger
	level  kernel.Level
	family kernel.Family
	params kernel.Params
	tr     *kernel.Transform
}

func runKernel(st *state, x, y *dataset.Set, params kernel.Params) error {
	level, err := kernel.ParseLevel(st.cfg.Kernel.Level)
	if err != nil {
		return err
	}
	family, err := kernel.ParseFamily(st.cfg.Kernel.Family)
	if err != nil {
		return err
	}
	tr, err := kernel.NewTransform(family, params)
	if err != nil {
		return err
	}
	k := kernelRun{cfg: st.cfg, logger: st.logger, level: level, family: family, params: params, tr: tr}
	rep := strings.ToLower(st.cfg.Kernel.Representation)
	k.logger.Debug("evaluating kernels",
		"representation", rep, "level", level, "family", family, "sets", tr.Len(), "symmetric", y == nil)

	var ks []*matrix.Dense
	switch rep {
	case familyFCHL:
		ks, err = k.fchl(x, y)
	case familyARAD:
		ks, err = k.arad(x, y)
	default:
		ks, err = k.vectors(rep, x, y)
	}
	if err != nil {
		return err
	}

	rows := k.labels(x)
	cols := rows
	if y != nil {
		cols = k.labels(y)
	}
	grids := make([]Grid, len(ks))
	recs := make([]kernelRecord, len(ks))
	for i, m := range ks {
		set := tr.Set(i)
		recs[i] = kernelRecord{Family: family.String(), Params: set, Rows: rows, Cols: cols, Matrix: m.RawRows()}
		grids[i] = Grid{
			Title:  fmt.Sprintf("%s %s", family, formatSet(set)),
			Labels: rows,
			Header: append([]string{""}, cols...),
			Rows:   recs[i].Matrix,
		}
	}

	return st.renderer.RenderAll(grids, recs)
}

func formatSet(set map[string]float64) string {
	parts := make([]string, 0, len(set))
	for _, k := range slices.Sorted(maps.Keys(set)) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, set[k]))
	}

	return strings.Join(parts, " ")
}

// labels names matrix rows: molecules, or molecule/atom at the atomic level.
func (k kernelRun) labels(s *dataset.Set) []string {
	if k.level != kernel.LevelAtomic {
		return s.Names
	}
	var out []string
	for i, m := range s.Molecules {
		for a := 0; a < m.Len(); a++ {
			out = append(out, fmt.Sprintf("%s/%d", s.Names[i], a))
		}
	}

	return out
}

// size is the shared atom capacity: the configured size, grown to fit the
// largest molecule of either set.
func (k kernelRun) size(x, y *dataset.Set) int {
	size := max(k.cfg.Representation.Size, x.MaxAtoms())
	if y != nil {
		size = max(size, y.MaxAtoms())
	}

	return size
}

func (k kernelRun) fchl(x, y *dataset.Set) ([]*matrix.Dense, error) {
	coupling, err := parseAlchemy(k.cfg.Kernel.Alchemy)
	if err != nil {
		return nil, err
	}
	opts := []fchl.Option{
		fchl.WithAlchemy(coupling),
		fchl.WithFamily(k.family, k.params),
		fchl.WithCut(fchl.DefaultCutStart, k.cfg.Representation.Cut),
		fchl.WithLogger(k.logger),
	}
	if k.cfg.Workers > 0 {
		opts = append(opts, fchl.WithWorkers(k.cfg.Workers))
	}
	size := k.size(x, y)
	gen := func(s *dataset.Set) ([]*fchl.Representation, error) {
		return representation.GenerateAll(s.Molecules, k.cfg.Workers, func(m *geometry.Molecule) (*fchl.Representation, error) {
			return fchl.Generate(m, size, size, k.cfg.Representation.Cut)
		})
	}
	a, err := gen(x)
	if err != nil {
		return nil, err
	}
	var b []*fchl.Representation
	if y != nil {
		if b, err = gen(y); err != nil {
			return nil, err
		}
	}

	switch k.level {
	case kernel.LevelAtomic:
		if b == nil {
			return fchl.AtomicSymmetricKernels(fchlAtoms(a), opts...)
		}
		return fchl.AtomicKernels(fchlAtoms(a), fchlAtoms(b), opts...)
	case kernel.LevelGlobal:
		if b == nil {
			return fchl.GlobalSymmetricKernels(a, opts...)
		}
		return fchl.GlobalKernels(a, b, opts...)
	default:
		if b == nil {
			return fchl.LocalSymmetricKernels(a, opts...)
		}
		return fchl.LocalKernels(a, b, opts...)
	}
}

func fchlAtoms(reps []*fchl.Representation) []fchl.Atom {
	var out []fchl.Atom
	for _, r := range reps {
		out = append(out, r.Atoms()...)
	}

	return out
}

func (k kernelRun) arad(x, y *dataset.Set) ([]*matrix.Dense, error) {
	if k.family != kernel.Gaussian {
		return nil, fmt.Errorf("arad kernels are gaussian only, got %s", k.family)
	}
	sigmas := make([]float64, k.tr.Len())
	for i := range sigmas {
		sigmas[i] = k.tr.Set(i)["sigma"]
	}
	opts := []arad.Option{arad.WithCut(k.cfg.Representation.Cut), arad.WithLogger(k.logger)}
	if k.cfg.Workers > 0 {
		opts = append(opts, arad.WithWorkers(k.cfg.Workers))
	}
	size := k.size(x, y)
	gen := func(s *dataset.Set) ([]*arad.Representation, error) {
		return representation.GenerateAll(s.Molecules, k.cfg.Workers, func(m *geometry.Molecule) (*arad.Representation, error) {
			return arad.Generate(m, size, k.cfg.Representation.Cut, nil)
		})
	}
	a, err := gen(x)
	if err != nil {
		return nil, err
	}
	var b []*arad.Representation
	if y != nil {
		if b, err = gen(y); err != nil {
			return nil, err
		}
	}

	switch k.level {
	case kernel.LevelAtomic:
		if b == nil {
			return arad.AtomicSymmetricKernels(aradAtoms(a), sigmas, opts...)
		}
		return arad.AtomicKernels(aradAtoms(a), aradAtoms(b), sigmas, opts...)
	case kernel.LevelGlobal:
		if b == nil {
			return arad.SymmetricKernels(a, sigmas, opts...)
		}
		return arad.Kernels(a, b, sigmas, opts...)
	default:
		if b == nil {
			return arad.LocalSymmetricKernels(a, sigmas, opts...)
		}
		return arad.LocalKernels(a, b, sigmas, opts...)
	}
}

func aradAtoms(reps []*arad.Representation) []arad.Atom {
	var out []arad.Atom
	for _, r := range reps {
		out = append(out, r.Atoms()...)
	}

	return out
}

// vectors compares plain descriptors. Molecular descriptors have one row per
// molecule, so the atomic level is only meaningful for per-atom families.
func (k kernelRun) vectors(rep string, x, y *dataset.Set) ([]*matrix.Dense, error) {
	d := newDescriber(k.cfg)
	a, err := d.describe(rep, x, y)
	if err != nil {
		return nil, err
	}
	if k.level == kernel.LevelAtomic && !a.perAtom {
		return nil, fmt.Errorf("%s is a molecular descriptor; use --level local or global", rep)
	}
	var b [][][]float64
	if y != nil {
		db, err := d.describe(rep, y, x)
		if err != nil {
			return nil, err
		}
		b = db.x
	}
	var opts []kernel.Option
	if k.cfg.Workers > 0 {
		opts = append(opts, kernel.WithWorkers(k.cfg.Workers))
	}
	opts = append(opts, kernel.WithLogger(k.logger))

	return kernel.VectorKernels(k.level, a.x, b, k.family, k.params, opts...)
}
