package main

import "movienight/cmd"

func main() {
	cmd.Execute()
}
