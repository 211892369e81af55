package cli

import (
	"github.com/spf13/cobra"
)

func newCropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "Crop commands",
	}

	cmd.AddCommand(newCropListCmd())
	cmd.AddCommand(newCropPlantCmd())
	cmd.AddCommand(newCropAbandonCmd())
	cmd.AddCommand(newCropHarvestCmd())

	return cmd
}

func newCropListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the crops you can plant",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CropsResult

			if err := client.Get("/api/crops", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newCropPlantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plant <crop-id>",
		Short: "Plant a crop in your empty slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CropResult

			if err := client.Post("/api/plant-crop", map[string]string{"cropId": args[0]}, &result); err != nil {
				return err
			}

			output(cmd).Print(result.Crop)
			return nil
		},
	}
}

func newCropAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Abandon the growing crop",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AbandonResult

			if err := client.Post("/api/abandon-crop", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newCropHarvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest",
		Short: "Harvest the mature crop into storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HarvestResult

			if err := client.Post("/api/harvest-crop", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
