package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/firmwared/go-fdtflash/pkg/fdtmap"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Locate the FDTMAP on the chip and report it",
	Run: func(cmd *cobra.Command, args []string) {
		dev := openDevice()
		defer dev.Close()

		image, err := readChip(dev)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		m, err := fdtmap.Locate(image)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		color.Green("valid FDTMAP at offset %#x", m.Offset)
		fmt.Printf("blob size: %#x\ncrc32:     %#08x\nregions:   %d\n",
			m.Size, m.CRC, len(m.Layout.Regions))
	},
}
