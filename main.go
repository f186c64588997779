package main

import "github.com/inovacc/ghsecrets/cmd"

func main() {
	cmd.Execute()
}
