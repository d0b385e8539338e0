package main

import "github.com/sylvanlibrary/cardsearch/cmd"

func main() {
	cmd.Execute()
}
