package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ccgdrs/internal/compiler"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a ccgdrs.cue file
	Options string // comma separated compile flags
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ccgdrs CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ccgdrs",
		Short: "ccgdrs - CCG derivations to DRS",
		Long:  "Compile CCG parse trees into Discourse Representation Structures.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "CUE config file")
	cmd.PersistentFlags().StringVar(&opts.Options, "options", "", "compile flags, e.g. remove_unary_props,verify_signatures")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger returns a Debug-level text logger on w when verbose, else a
// discard logger.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// compileSettings merges the config file with the --options flag. Flags
// add to the options the file sets.
func (o *RootOptions) compileSettings() (compiler.Options, map[string]string, error) {
	var (
		names    []string
		pronouns map[string]string
	)
	if o.Config != "" {
		cfg, err := LoadConfig(o.Config)
		if err != nil {
			return 0, nil, err
		}
		names = append(names, cfg.Options...)
		pronouns = cfg.Pronouns
	}
	if o.Options != "" {
		names = append(names, o.Options)
	}
	flags, err := compiler.ParseOptions(strings.Join(names, ","))
	if err != nil {
		return 0, nil, &LoadError{Code: ErrCodeInvalidConf, Message: err.Error()}
	}
	return flags, pronouns, nil
}

// newCompiler builds a compiler from the global flags and config.
func (o *RootOptions) newCompiler(logger *slog.Logger) (*compiler.Compiler, error) {
	flags, pronouns, err := o.compileSettings()
	if err != nil {
		return nil, err
	}
	c, err := compiler.New(
		compiler.WithOptions(flags),
		compiler.WithLogger(logger),
		compiler.WithPronouns(pronouns),
	)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidConf, Message: err.Error()}
	}
	return c, nil
}
