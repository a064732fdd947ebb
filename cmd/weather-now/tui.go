package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/logging"
	"github.com/i474232898/weather-now/internal/tui"
)

func newTUICommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, service, err := setup(v)
			if err != nil {
				return err
			}
			// The alt screen owns the terminal; keep logs to errors only.
			if err := logging.Init("error", cmd.ErrOrStderr()); err != nil {
				return err
			}

			return tui.Run(cmd.Context(), controller.New(service), viewOptions(cfg))
		},
	}
}
