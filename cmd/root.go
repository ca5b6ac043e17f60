package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/firmwared/go-fdtflash/pkg/fdtmap"
	"github.com/firmwared/go-fdtflash/pkg/flash"
	"github.com/firmwared/go-fdtflash/pkg/layout"
)

var (
	programmerSpec string
	layoutFile     string
	verbose        bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&programmerSpec, "programmer", "p",
		"dummy:emulate=SST25VF032B",
		"programmer spec, e.g. dummy:emulate=SST25VF032B,image=flash.bin")
	rootCmd.PersistentFlags().StringVarP(&layoutFile, "layout", "l", "",
		"read the layout from a YAML file instead of the embedded FDTMAP")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false,
		"print scan and validation details")
	cobra.OnInitialize(func() {
		if verbose {
			fdtmap.Debugf = log.Printf
		}
	})
}

var rootCmd = &cobra.Command{
	Use:   "fdtflash",
	Short: "Read and write flash regions located through an embedded FDT flashmap",
	Long: `fdtflash reads and writes flash chips whose partition layout is described
by an FDT flashmap embedded in the flash image itself. The map is found by
scanning the chip for a signed, checksummed device-tree blob, so its
position need not be known in advance.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openDevice connects to the programmer given with -p. Commands that
// talk to a chip call this from their Run.
func openDevice() flash.Device {
	dev, err := flash.Open(programmerSpec)
	if err != nil {
		log.Fatal(err)
	}
	return dev
}

// loadLayout resolves the flash layout: from the -l YAML file when given,
// otherwise by locating the FDTMAP inside the chip contents.
func loadLayout(dev flash.Device, image []byte) (*layout.FlashMap, error) {
	var fm *layout.FlashMap
	if layoutFile != "" {
		m, err := layout.ReadFile(layoutFile)
		if err != nil {
			return nil, err
		}
		fm = m
	} else {
		m, err := fdtmap.Locate(image)
		if err != nil {
			return nil, err
		}
		fm = m.Layout
	}
	if err := fm.CheckBounds(dev.Size()); err != nil {
		return nil, err
	}
	return fm, nil
}
