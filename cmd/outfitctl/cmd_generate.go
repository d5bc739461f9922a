package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"style-outfits/internal/app"
	"style-outfits/internal/application/usecases"
)

var requestPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Suggest an outfit from a wardrobe request",
	Long: `Reads an outfit request in the same JSON shape the server accepts
(wardrobeItems, userStyle, climate, occasion, mannequinPreference) and prints
the suggestion. Use --request - to read from stdin.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&requestPath, "request", "r", "-", "request JSON file, or - for stdin")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	var src io.Reader = cmd.InOrStdin()
	if requestPath != "-" {
		f, err := os.Open(requestPath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	var input usecases.OutfitInput
	if err := json.NewDecoder(src).Decode(&input); err != nil {
		return fmt.Errorf("decode request: %w", err)
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

	output, err := application.Outfits.Execute(cmd.Context(), input)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), output)
}
