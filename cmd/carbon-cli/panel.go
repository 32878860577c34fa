package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerPanelCmd() *cobra.Command {
	var (
		panelID, productionDate, manufacturer, owner string
		efficiencyPct, sizeM2, footprintKg, lifetimeYears, reductionFactor float64
	)

	cmd := &cobra.Command{
		Use:   "register-panel",
		Short: "Register a photovoltaic panel and receive issuance",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]interface{}{
				"panelId":                     panelID,
				"productionDate":              productionDate,
				"nominalEfficiencyPct":        efficiencyPct,
				"sizeM2":                      sizeM2,
				"manufacturer":                manufacturer,
				"manufacturingFootprintKgco2": footprintKg,
				"lifetimeYears":               lifetimeYears,
				"carbonReductionFactor":       reductionFactor,
				"owner":                       owner,
			}

			resp, err := postJSON(nodeURL+"/panels", body)
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("registration rejected: %s", resp.Message)
			}

			fmt.Printf("panel %s registered\n", resp.Data["panelId"])
			fmt.Printf("issuance: %s CARB\n", resp.Data["issuance"])
		},
	}

	cmd.Flags().StringVar(&panelID, "panel-id", "", "panel identifier (required)")
	cmd.Flags().StringVar(&productionDate, "production-date", "", "yyyy-MM-dd (required)")
	cmd.Flags().Float64Var(&efficiencyPct, "efficiency-pct", 0, "nominal efficiency percentage")
	cmd.Flags().Float64Var(&sizeM2, "size-m2", 0, "panel surface area in m2")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "manufacturer name")
	cmd.Flags().Float64Var(&footprintKg, "footprint-kg", 0, "manufacturing footprint in kgCO2")
	cmd.Flags().Float64Var(&lifetimeYears, "lifetime-years", 25, "rated lifetime in years")
	cmd.Flags().Float64Var(&reductionFactor, "reduction-factor", 0, "carbon reduction factor")
	cmd.Flags().StringVar(&owner, "owner", "", "owner address (required)")
	cmd.MarkFlagRequired("panel-id")
	cmd.MarkFlagRequired("production-date")
	cmd.MarkFlagRequired("owner")

	return cmd
}
