package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/firmwared/go-fdtflash/pkg/layout"
)

func init() {
	readCmd.Flags().StringVarP(&outFile, "file", "f", "", "file to store the contents in")
	readCmd.Flags().StringArrayVarP(&includeRegions, "include", "i", nil, "region to read (repeatable)")
	readCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(readCmd)
}

var (
	outFile        string
	includeRegions []string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the chip, or selected regions, into a file",
	Long: `Read the flash chip into a file. With -i only the named regions are
read; the file is still chip-sized, with each region at its own offset
and the rest left as erased flash.`,
	Run: func(cmd *cobra.Command, args []string) {
		dev := openDevice()
		defer dev.Close()

		image, err := readChip(dev)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		out := image
		if len(includeRegions) > 0 {
			fm, err := loadLayout(dev, image)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			out, err = extractRegions(fm, image, includeRegions)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}

		if err := os.WriteFile(outFile, out, 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		color.Green("read %#x bytes into %s", len(out), outFile)
	},
}

// extractRegions builds a chip-sized buffer holding only the named
// regions, each at its own offset.
func extractRegions(fm *layout.FlashMap, image []byte, labels []string) ([]byte, error) {
	if fm.Overlaps(labels...) {
		return nil, fmt.Errorf("requested regions overlap")
	}
	out := make([]byte, len(image))
	for i := range out {
		out[i] = layout.EraseValue
	}
	for _, label := range labels {
		r, err := fm.Find(label)
		if err != nil {
			return nil, err
		}
		copy(out[r.Offset:r.Offset+r.Length], image[r.Offset:r.Offset+r.Length])
	}
	return out, nil
}
