package main

import (
	cmd "github.com/redhat-openshift-ecosystem/stopwatch/cmd/stopwatch"
)

func main() {
	cmd.Execute()
}
