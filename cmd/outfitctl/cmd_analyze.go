package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"style-outfits/internal/app"
	"style-outfits/internal/application/usecases"
)

var imagePath string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract clothing attributes from a photo",
	Long: `Sends a single garment photo to the configured model and prints a
wardrobe item (type, color, season, occasion, tags) with the photo attached
as a data URI.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&imagePath, "image", "i", "", "path to a JPEG, PNG, GIF or WebP photo")
	_ = analyzeCmd.MarkFlagRequired("image")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	output, err := application.Analysis.Execute(cmd.Context(), usecases.AnalysisInput{ImageData: data})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), output)
}
