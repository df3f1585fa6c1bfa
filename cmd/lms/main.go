package main

import "lms/cmd"

func main() {
	cmd.Execute()
}
