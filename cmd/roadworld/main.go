package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "roadworld",
		Short: "Procedural road world generator and race corridor router",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(importOSMCmd())
	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Regenerate the saved world's derived geometry and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate the project configuration and the saved world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func importOSMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-osm [project-path] [overpass.json]",
		Short: "Replace the world with roads and buildings from OpenStreetMap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportOSM(cmd.Context(), args[0], args[1])
		},
	}
}

func routeCmd() *cobra.Command {
	var opts routeOptions

	cmd := &cobra.Command{
		Use:   "route [project-path]",
		Short: "Route a race corridor to the first target marking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fromFlags = cmd.Flags().Changed("sx") || cmd.Flags().Changed("sy")
			return runRoute(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.sx, "sx", 0, "start x (defaults to the start marking)")
	cmd.Flags().Float64Var(&opts.sy, "sy", 0, "start y (defaults to the start marking)")
	cmd.Flags().IntVar(&opts.cars, "cars", 0, "score a grid of this many cars on the corridor")
	return cmd
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [project-path]",
		Short: "Draw one frame of the world as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.radiusSet = cmd.Flags().Changed("radius")
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "output", "o", "world.svg", "output SVG file")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "view point x")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "view point y")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "visibility radius (defaults to render.radius)")
	cmd.Flags().BoolVar(&opts.showStart, "start", false, "draw start markings")
	cmd.Flags().IntVar(&opts.cars, "race", 0, "route a corridor and draw a grid of this many cars")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [project-path]",
		Short: "Print world statistics and spatial warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args[0])
		},
	}
}

func schemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the world snapshot",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSchema(out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [project-path]",
		Short: "Export roads, buildings and markings as GeoJSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Serve the world over HTTP with a live traffic light stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], port, cmd.Flags().Changed("port"))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
