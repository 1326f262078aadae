package main

import "github.com/storefront-kit/selectord/cmd"

func main() {
	cmd.Execute()
}
