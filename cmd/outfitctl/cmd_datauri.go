package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"style-outfits/internal/domain/valueobjects"
)

var (
	datauriMaxDim int
	datauriOutDir string
)

var datauriCmd = &cobra.Command{
	Use:   "datauri FILE...",
	Short: "Encode wardrobe photos as data URIs",
	Long: `Encodes each photo as a data URI usable as photoDataUri in a generate
request. With --max-dim the photo is first downsized to fit.

Without --out each URI is printed as "<file>\t<uri>". With --out each URI is
written to <out>/<name>.txt, where name is the file name without extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDatauri,
}

func init() {
	datauriCmd.Flags().IntVar(&datauriMaxDim, "max-dim", 0, "downsize so neither side exceeds this many pixels (0 keeps the original)")
	datauriCmd.Flags().StringVarP(&datauriOutDir, "out", "o", "", "directory to write <name>.txt files into")
}

func runDatauri(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		uri, err := encodeDataURI(path, datauriMaxDim)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if datauriOutDir == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, uri)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
		if err := os.WriteFile(filepath.Join(datauriOutDir, name), []byte(uri), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func encodeDataURI(path string, maxDim int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	img, err := valueobjects.NewImageData(data, "")
	if err != nil {
		return "", err
	}

	img, err = img.Fit(maxDim)
	if err != nil {
		return "", err
	}
	return img.DataURI(), nil
}
