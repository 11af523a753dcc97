package main

import "github.com/janisto/profile-console/cmd/profilectl/cmd"

func main() {
	cmd.Execute()
}
