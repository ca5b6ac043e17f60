package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/firmwared/go-fdtflash/pkg/layout"
)

func init() {
	eraseCmd.Flags().StringArrayVarP(&includeErase, "include", "i", nil, "region to erase (repeatable)")
	rootCmd.AddCommand(eraseCmd)
}

var includeErase []string

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the chip, or selected regions",
	Long: `Erase the flash chip. With -i only the named regions are erased, each
filled with its wipe value from the flashmap (erased flash otherwise).`,
	Run: func(cmd *cobra.Command, args []string) {
		dev := openDevice()
		defer dev.Close()

		if len(includeErase) == 0 {
			if err := dev.Erase(0, dev.Size(), layout.EraseValue); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			color.Green("erased chip (%#x bytes)", dev.Size())
			return
		}

		image, err := readChip(dev)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fm, err := loadLayout(dev, image)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, label := range includeErase {
			r, err := fm.Find(label)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := dev.Erase(r.Offset, r.Length, r.WipeValue); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			color.Green("erased %s with %#02x (%#x bytes at %#x)",
				r.Name, r.WipeValue, r.Length, r.Offset)
		}
	},
}
