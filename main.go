package main

import "github.com/nelsoncalle/nutricion/cmd/nutri"

func main() {
	nutri.Execute()
}
