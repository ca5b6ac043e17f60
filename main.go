package main

import "github.com/firmwared/go-fdtflash/cmd"

func main() {
	cmd.Execute()
}
