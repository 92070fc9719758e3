package main

import (
	"context"

	"github.com/kumvijaya/pr-merger/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
