package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/u-root/u-root/pkg/dt"

	"github.com/firmwared/go-fdtflash/pkg/fdtmap"
	"github.com/firmwared/go-fdtflash/pkg/layout"
)

func init() {
	mkimageCmd.Flags().StringVar(&dtbFile, "dtb", "", "compiled device-tree blob describing the layout")
	mkimageCmd.Flags().StringVarP(&imageOut, "out", "o", "", "image file to create")
	mkimageCmd.Flags().StringVar(&imageSize, "size", "0x400000", "image size in bytes")
	mkimageCmd.Flags().StringVar(&mapOffset, "offset", "0xc8000", "offset to embed the FDTMAP at")
	mkimageCmd.Flags().BoolVar(&decoys, "decoys", false, "scatter near-miss decoy headers through the image")
	mkimageCmd.MarkFlagRequired("dtb")
	mkimageCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(mkimageCmd)
}

var (
	dtbFile   string
	imageOut  string
	imageSize string
	mapOffset string
	decoys    bool
)

// Decoy spacing used by mkimage --decoys.
const decoyStride = 0x20000

var mkimageCmd = &cobra.Command{
	Use:   "mkimage",
	Short: "Build a flash image with an embedded FDTMAP",
	Long: `Build a blank flash image and embed a compiled device-tree blob in it
behind a signed, checksummed FDTMAP header. With --decoys the image is
also littered with blocks that carry the signature but fail validation,
for exercising locator robustness.`,
	Run: func(cmd *cobra.Command, args []string) {
		blob, err := os.ReadFile(dtbFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Catch a source file passed in place of a compiled blob.
		if _, err := dt.ReadFDT(bytes.NewReader(blob)); err != nil {
			fmt.Printf("%s is not a device-tree blob: %v\n", dtbFile, err)
			os.Exit(1)
		}

		size := mustParseSize(imageSize)
		pos := mustParseSize(mapOffset)
		image := make([]byte, size)
		for i := range image {
			image[i] = layout.EraseValue
		}

		if decoys {
			fdtmap.PlantDecoys(image, blob, decoyStride)
		}
		if err := fdtmap.Embed(image, int(pos), blob); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := os.WriteFile(imageOut, image, 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		color.Green("wrote %s: %#x bytes, FDTMAP at %#x (%#x byte blob)",
			imageOut, size, pos, len(blob))
	},
}
