package main

import (
	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/tui"
	"github.com/spf13/cobra"
)

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	return tui.Run(catalog.Churn, adapter.NewForm(svc.validator, svc.predictor))
}
