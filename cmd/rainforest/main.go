package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.gammaspectra.live/P2Pool/rainforest/cmd/rainforest/cmd"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		utils.Fatalf("%s", err)
	}
}
