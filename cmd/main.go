package main

import "github.com/todoflow-labs/todo-api/internal/cli"

func main() {
	cli.Execute()
}
