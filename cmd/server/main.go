package main

import "github.com/ohc225/gestion-terrain-immobilier/internal/cli"

func main() {
	cli.Execute()
}
