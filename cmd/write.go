package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/firmwared/go-fdtflash/pkg/flash"
	"github.com/firmwared/go-fdtflash/pkg/layout"
)

func init() {
	writeCmd.Flags().StringArrayVarP(&includeWrite, "include", "i", nil, "region to write (repeatable)")
	writeCmd.Flags().BoolVar(&noVerify, "noverify", false, "skip the read-back verification")
	writeCmd.Flags().BoolVar(&force, "force", false, "write read-only regions without asking")
	rootCmd.AddCommand(writeCmd)
}

var (
	includeWrite []string
	noVerify     bool
	force        bool
)

var writeCmd = &cobra.Command{
	Use:   "write FILE",
	Short: "Write a chip-sized image file to the chip, or selected regions of it",
	Long: `Write FILE to the flash chip. FILE must be a full chip-sized image;
with -i only the named regions are written, taken from their offsets in
the file. Writes are verified by reading back unless --noverify.`,
	Args: cobra.ExactArgs(1),
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

		targets := []layout.Region{{Name: "chip", Length: dev.Size()}}
		if len(includeWrite) > 0 {
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
			if fm.Overlaps(includeWrite...) {
				fmt.Println("requested regions overlap")
				os.Exit(1)
			}
			targets = targets[:0]
			for _, label := range includeWrite {
				r, err := fm.Find(label)
				if err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				targets = append(targets, r)
			}
		}

		for _, r := range targets {
			if r.ReadOnly && !force {
				confirm := promptui.Prompt{
					Label:     fmt.Sprintf("Region %s is read-only, write anyway", r.Name),
					IsConfirm: true,
				}
				if _, err := confirm.Run(); err != nil {
					fmt.Println("aborted")
					os.Exit(1)
				}
			}
			if err := writeRegion(dev, r, data); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			color.Green("wrote %s (%#x bytes at %#x)", r.Name, r.Length, r.Offset)
		}
	},
}

func writeRegion(dev flash.Device, r layout.Region, image []byte) error {
	data := image[r.Offset : r.Offset+r.Length]
	if err := writeRange(dev, r.Offset, data); err != nil {
		return err
	}
	if noVerify {
		return nil
	}
	check := make([]byte, r.Length)
	if _, err := dev.ReadAt(check, int64(r.Offset)); err != nil {
		return err
	}
	if !bytes.Equal(check, data) {
		return fmt.Errorf("verify failed for region %s", r.Name)
	}
	return nil
}
