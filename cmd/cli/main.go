package main

import (
	"fmt"
	"os"

	"github.com/crucial707/campsite/cmd/cli/root"

	_ "github.com/crucial707/campsite/cmd/cli/campgrounds"
	_ "github.com/crucial707/campsite/cmd/cli/seed"
	_ "github.com/crucial707/campsite/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
