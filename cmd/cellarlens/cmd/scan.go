package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cellarlens/cellarlens/internal/config"
	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// scanCmd processes a single photo from the filesystem.
var scanCmd = &cobra.Command{
	Use:   "scan <image-file>",
	Short: "Identify the wines in a photo",
	Long: `Scan reads a jpeg or png photo of wine bottles, runs the full
reconciliation pipeline, and prints the result as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cobraCmd *cobra.Command, args []string) error {
	path := args[0]

	img, err := readImage(path)
	if err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	lens, err := newLens(cobraCmd.Context(), settings)
	if err != nil {
		return err
	}

	result, err := lens.UploadUserImage(cobraCmd.Context(), img)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// readImage loads a photo from disk and base64-encodes it.
func readImage(path string) (wines.Image, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "jpg" {
		ext = "jpeg"
	}
	if !wines.ValidExt(ext) {
		return wines.Image{}, errors.NewFormatError(ext, wines.AllowedImageExts)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return wines.Image{}, errors.NewIOError("read", path, err)
	}

	return wines.Image{
		Base64: base64.StdEncoding.EncodeToString(data),
		Ext:    ext,
	}, nil
}
