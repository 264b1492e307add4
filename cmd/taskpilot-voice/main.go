package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"taskpilot-voice/internal/bootstrap"
)

func main() {
	fmt.Printf("[%s] [INFO] [BOOT] starting taskpilot-voice...\n", time.Now().Format("2006-01-02 15:04:05.000"))
	if err := bootstrap.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "taskpilot-voice failed: %v\n", err)
		os.Exit(1)
	}
}
