package commands

import (
	"github.com/spf13/cobra"

	"src.elv.sh/rangebar/pkg/config"
	"src.elv.sh/rangebar/pkg/rangedata"
)

func normalCmd(env Env, opts *options) *cobra.Command {
	var (
		lo, hi    float64
		url, file string
	)
	cmd := &cobra.Command{
		Use:   "normal",
		Short: "Select a range of a continuous domain",
		Long: "Select a range of a continuous domain. The bounds come from --min and\n" +
			"--max, --file, --url or the config file, and default to 0 and 100.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := opts.cfg.Normal
			if anyChanged(cmd, "min", "max", "url", "file") {
				src = config.Source{URL: url, File: file}
				if cmd.Flags().Changed("min") {
					src.Min = &lo
				}
				if cmd.Flags().Changed("max") {
					src.Max = &hi
				}
			}
			return opts.run(cmd.Context(), env, rangedata.Normal, src)
		},
	}
	cmd.Flags().Float64Var(&lo, "min", 0, "lower bound of the domain")
	cmd.Flags().Float64Var(&hi, "max", 0, "upper bound of the domain")
	cmd.Flags().StringVar(&url, "url", "", `URL of a {"min": n, "max": n} payload`)
	cmd.Flags().StringVar(&file, "file", "", `file with a {"min": n, "max": n} payload`)
	return cmd
}

func fixedCmd(env Env, opts *options) *cobra.Command {
	var (
		values    []float64
		url, file string
	)
	cmd := &cobra.Command{
		Use:   "fixed",
		Short: "Select a range of a fixed set of values",
		Long: "Select a range of a fixed set of values. The values come from --values,\n" +
			"--file, --url or the config file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := opts.cfg.Fixed
			if anyChanged(cmd, "values", "url", "file") {
				src = config.Source{URL: url, File: file}
				if cmd.Flags().Changed("values") {
					src.Values = values
				}
			}
			return opts.run(cmd.Context(), env, rangedata.Fixed, src)
		},
	}
	cmd.Flags().Float64SliceVar(&values, "values", nil, "values of the domain, such as 1,2.5,10")
	cmd.Flags().StringVar(&url, "url", "", "URL of a [n, n, ...] payload")
	cmd.Flags().StringVar(&file, "file", "", "file with a [n, n, ...] payload")
	return cmd
}

// Reports whether any of the named flags is given. Giving any flag of a
// source replaces the source in the config.
func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
