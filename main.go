package main

import "github.com/hrops/backoffice/cmd"

func main() {
	cmd.Execute()
}
