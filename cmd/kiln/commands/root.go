// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Dev(ctx context.Context, opts app.Options) error
	Styles(ctx context.Context, opts app.Options) error
	Serve(ctx context.Context, opts app.Options) error
	Vectors(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Status(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Build and serve static site assets",
		Long:          "kiln compiles pages, styles, scripts and images into a publishable tree.\nWithout a sub-command it runs dev.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Dev(cmd.Context(), options(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("mode", "m", "", "Build mode: development or production")
	flags.BoolP("production", "p", false, "Build in production mode (shorthand for --mode=production)")
	flags.StringP("config", "c", "", "Directory to start the kiln.yaml lookup from")
	flags.BoolP("verbose", "v", false, "Show stage-level progress and debug logs")
	addServerFlags(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newDevCmd())
	rootCmd.AddCommand(c.newScssCmd())
	rootCmd.AddCommand(c.newSrvCmd())
	rootCmd.AddCommand(c.newSvgCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", 0, "Dev server port (default 5500)")
	cmd.Flags().Bool("no-open", false, "Do not open a browser when the server starts")
	cmd.Flags().Bool("no-notify", false, "Do not show the in-page reload notice")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output (shorthand for --output=linear)")
}

// options reads the shared flags. Flags a command does not define read as zero.
func options(cmd *cobra.Command) app.Options {
	mode, _ := cmd.Flags().GetString("mode")
	production, _ := cmd.Flags().GetBool("production")
	configDir, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	port, _ := cmd.Flags().GetInt("port")
	noOpen, _ := cmd.Flags().GetBool("no-open")
	noNotify, _ := cmd.Flags().GetBool("no-notify")
	output, _ := cmd.Flags().GetString("output")
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		output = "linear"
	}

	return app.Options{
		Mode:       mode,
		Production: production,
		ConfigDir:  configDir,
		Verbose:    verbose,
		Port:       port,
		NoOpen:     noOpen,
		NoNotify:   noNotify,
		Output:     output,
	}
}
