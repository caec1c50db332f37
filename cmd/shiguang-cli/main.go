package main

import "shiguang/cmd/shiguang-cli/cmd"

func main() {
	cmd.Execute()
}
