package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/tui"
	"github.com/i474232898/weather-now/internal/view"
)

func newLookupCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <city>",
		Short: "Look up current weather once and print the card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, service, err := setup(v)
			if err != nil {
				return err
			}

			ctrl := controller.New(service)
			ctrl.UpdateQuery(strings.Join(args, " "))
			if !ctrl.Submit(cmd.Context()) {
				return errors.New("city must not be blank")
			}

			page := view.Render(ctrl.Snapshot(), viewOptions(cfg))
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBody(page))
			if page.Error != "" {
				return errors.New(page.Error)
			}
			return nil
		},
	}
}
