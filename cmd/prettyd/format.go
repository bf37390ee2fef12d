package main

import (
	"io"
	"os"

	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/prettier"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type formatOptions struct {
	configPath  string
	grammar     string
	indentWidth int
	useTabs     bool
	sortKeys    bool
}

func newFormatCmd() *cobra.Command {
	opts := &formatOptions{}
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Pretty-print a file or stdin",
		Long: `Format a document with the same formatter the server uses. Reads stdin
when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  prettyd format response.json
  curl -s localhost:8080/ | prettyd format --indent-width 4
  prettyd format --grammar yaml values.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file with prettier settings")
	cmd.Flags().StringVarP(&opts.grammar, "grammar", "g", "", "Grammar of the input (json, yaml, xml, html, hcl)")
	cmd.Flags().IntVarP(&opts.indentWidth, "indent-width", "i", 0, "Spaces per indent level")
	cmd.Flags().BoolVar(&opts.useTabs, "use-tabs", false, "Indent with tabs")
	cmd.Flags().BoolVar(&opts.sortKeys, "sort-keys", false, "Sort JSON object keys")
	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *formatOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return errors.Wrap(err, "load config")
		}
	}

	p, err := prettier.New(cfg.Prettier)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	src, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	out, err := p.Formatter().Format(string(src), flagOverrides(cmd, opts))
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// flagOverrides returns only the options set on the command line, so the
// configured ones apply otherwise.
func flagOverrides(cmd *cobra.Command, opts *formatOptions) map[string]any {
	overrides := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("grammar") {
		overrides["grammar"] = opts.grammar
	}
	if flags.Changed("indent-width") {
		overrides["indentWidth"] = opts.indentWidth
	}
	if flags.Changed("use-tabs") {
		overrides["useTabs"] = opts.useTabs
	}
	if flags.Changed("sort-keys") {
		overrides["sortKeys"] = opts.sortKeys
	}
	return overrides
}
