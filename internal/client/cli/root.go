package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	ctx := context.Background()
	s := ""
	if a.session.IsAuthenticated(ctx) {
		s = "citizen"
	}
	if addr, _ := a.session.WalletAddress(ctx); addr != "" {
		short := addr
		if len(short) > 10 {
			short = short[:6] + ".." + short[len(short)-4:]
		}
		if s != "" {
			s += " "
		}
		s += short
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to VoiceVote CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartWalletWatcher(ctx)
	}()

	runREPL(ctx, a, a.getStatus, scanner)
}
