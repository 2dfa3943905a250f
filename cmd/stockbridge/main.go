package main

import "stockbridge/cmd/stockbridge/cmd"

func main() {
	cmd.Execute()
}
