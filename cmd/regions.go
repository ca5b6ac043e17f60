package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(regionsCmd)
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions of the flash layout",
	Run: func(cmd *cobra.Command, args []string) {
		dev := openDevice()
		defer dev.Close()

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

		bold := color.New(color.Bold).PrintfFunc()
		cyan := color.New(color.FgCyan).PrintfFunc()
		bold("%-20s %-10s %-10s %-10s %-3s %s\n",
			"NAME", "START", "END", "SIZE", "RO", "TYPE")
		for _, r := range fm.Regions {
			cyan("%-20s", r.Name)
			ro := ""
			if r.ReadOnly {
				ro = "ro"
			}
			fmt.Printf(" %-10s %-10s %-10s %-3s %s\n",
				fmt.Sprintf("%#x", r.Offset),
				fmt.Sprintf("%#x", r.End()),
				fmt.Sprintf("%#x", r.Length),
				ro, r.Type)
		}
	},
}
