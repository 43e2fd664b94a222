package main

import (
	"fmt"

	"github.com/danmuck/asayer/internal/config"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate TOML configs",
	}

	var (
		output string
		siteID int64
		force  bool
	)
	template := &cobra.Command{
		Use:   "template",
		Short: "Write a starter config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				body, err := config.Template(siteID)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			if err := config.WriteTemplate(output, siteID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", output)
			return nil
		},
	}
	template.Flags().StringVarP(&output, "output", "o", "", "output path (stdout when empty)")
	template.Flags().Int64Var(&siteID, "site-id", 1, "site identifier to write")
	template.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the file given by --config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("validate requires --config")
			}
			if _, err := config.Load(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated config at %s\n", configPath)
			return nil
		},
	}

	cmd.AddCommand(template, validate)
	return cmd
}
