package main

import (
	"complaintbox/cmd/complaintbox/cmd"
)

func main() {
	cmd.Execute()
}
