package main

import "github.com/juhahinkula/classroom-fix/internal/cmd"

func main() {
	cmd.Execute()
}
