package main

import "github.com/cloudnative-amadeus/extrahours/cmd"

func main() {
	cmd.Execute()
}
