package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mmf",
		Short:         "Make Me Fly (mmf): find cheap flights across many destinations at once",
		Long:          "mmf (Make Me Fly) searches flight offers across whole regions in parallel, compares cabin classes, samples flexible dates for the best deal, and keeps the free API tier from blowing its daily quota.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSearchCmd(app),
		newFlexibleCmd(app),
		newDestinationsCmd(app),
		newUsageCmd(app),
	)

	return rootCmd
}
