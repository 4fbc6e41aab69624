package commands

import "github.com/spf13/cobra"

func (c *CLI) newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Build, serve and rebuild on change",
		Long:  "dev runs a full build, starts the dev server and rebuilds the affected pipeline\nwhenever a source file changes. It runs until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Dev(cmd.Context(), options(cmd))
		},
	}
	addServerFlags(cmd)
	return cmd
}

func (c *CLI) newScssCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scss",
		Short: "Rebuild the stylesheet, then watch sources without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Styles(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newSrvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srv",
		Short: "Serve the existing output tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), options(cmd))
		},
	}
	addServerFlags(cmd)
	return cmd
}

func (c *CLI) newSvgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Optimize the top-level SVG images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Vectors(cmd.Context(), options(cmd))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
