package main

import "github.com/jsphweid/scof/cmd"

func main() {
	cmd.Execute()
}
