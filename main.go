package main

import "github.com/mj1618/window-qr/cmd"

func main() {
	cmd.Execute()
}
