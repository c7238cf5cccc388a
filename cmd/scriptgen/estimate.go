package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/scriptgen/internal/script"
)

func estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <script.json>",
		Short: "Estimate the spoken duration of a saved script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := script.Load(args[0])
			if err != nil {
				return err
			}
			d, ok := script.Estimate(scenes)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Tidak ada estimasi: skrip kosong.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Estimasi durasi: %d menit %d detik (%d kata, %d scene)\n",
				d.Minutes, d.Seconds, script.WordCount(scenes), len(scenes))
			return nil
		},
	}
}
