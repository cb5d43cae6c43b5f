// Wipes the locally stored credential. Useful when a token is stuck or the
// sealing key was rotated.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/config"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	store, err := session.Open(ctx, cfg.SessionPath, cfg.KeyPath(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Session store error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Clear error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Stored credential cleared.")
}
