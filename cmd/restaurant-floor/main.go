package main

import "restaurant-floor/internal/cli"

func main() {
	cli.Execute()
}
