package commands

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/planport/daextract/ocr"
)

// recognize <image>: OCR a scanned register page image. Requires a build
// with the ocr tag.
func recognizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <image>",
		Short: "Recognize text on a scanned register page image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			prepared, err := ocr.Prepare(img)
			if err != nil {
				return err
			}

			client, err := ocr.New()
			if err != nil {
				return err
			}
			defer client.Close()

			text, err := client.RecognizePage(prepared)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}
