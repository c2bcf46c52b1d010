package main

import "javacheck/cmd"

func main() {
	cmd.Execute()
}
