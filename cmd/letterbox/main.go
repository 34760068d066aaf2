package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"letterbox/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "letterbox:", err)
		}
		os.Exit(services.ExitCode(err))
	}
}
