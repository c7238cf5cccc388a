package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/scriptgen/internal/config"
	"github.com/thywilljoshua/scriptgen/internal/export"
	"github.com/thywilljoshua/scriptgen/internal/script"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var name string
	var out string
	var format string

	cmd := &cobra.Command{
		Use:   "export <script.json>",
		Short: "Render a saved script as PDF, XLSX or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			overrideString(cmd, "format", &cfg.Export.Format, format)
			overrideString(cmd, "out", &cfg.Export.Dir, out)

			scenes, err := script.Load(args[0])
			if err != nil {
				return err
			}
			renderer, err := export.ForFormat(cfg.Export.Format)
			if err != nil {
				return err
			}
			data, err := export.Render(renderer, scenes, name)
			if err != nil {
				return err
			}
			w, err := export.NewWriter(cfg.Export.Dir)
			if err != nil {
				return err
			}
			path, err := w.Write(name, data, renderer.Extension())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "teacher name shown in the title block and used for the filename")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: current directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "export format: pdf|xlsx|json")
	return cmd
}
