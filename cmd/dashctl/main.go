package main

import "github.com/nfrund/dashview/cmd/dashctl/cmd"

func main() {
	cmd.Execute()
}
