package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursegen",
		Short: "Coverage-path course generator for polygonal fields",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(angleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Plan a full coverage course and write it to a course file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "course.xml", "course file to write")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a field project without planning a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func angleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "angle [project-path]",
		Short: "Report the best center-fill track angle without planning",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAngle(args[0])
		},
	}
}
