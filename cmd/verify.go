package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	verifyCmd.Flags().StringArrayVarP(&includeVerify, "include", "i", nil, "region to verify (repeatable)")
	rootCmd.AddCommand(verifyCmd)
}

var includeVerify []string

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Compare the chip contents against a chip-sized image file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		dev := openDevice()
		defer dev.Close()
		if len(data) != int(dev.Size()) {
			fmt.Printf("image %s is %#x bytes but chip is %#x bytes\n",
				args[0], len(data), dev.Size())
			os.Exit(1)
		}

		image, err := readChip(dev)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if len(includeVerify) == 0 {
			if !bytes.Equal(image, data) {
				fmt.Println("chip contents do not match", args[0])
				os.Exit(1)
			}
			color.Green("chip matches %s", args[0])
			return
		}

		fm, err := loadLayout(dev, image)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, label := range includeVerify {
			r, err := fm.Find(label)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if !bytes.Equal(image[r.Offset:r.Offset+r.Length], data[r.Offset:r.Offset+r.Length]) {
				fmt.Printf("region %s does not match\n", r.Name)
				os.Exit(1)
			}
			color.Green("region %s matches", r.Name)
		}
	},
}
