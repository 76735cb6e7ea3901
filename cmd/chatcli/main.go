// chatcli is a terminal consumer of the chat backend. It wakes the origin
// once per session, then either sends a message, prints the history, or
// keeps the history refreshed on an interval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okanalatt/FullStackAIChat/internal/client"
	"github.com/okanalatt/FullStackAIChat/internal/config"
	"github.com/okanalatt/FullStackAIChat/internal/model"
)

func main() {
	_ = godotenv.Load()

	var (
		name  = flag.String("name", "anonim", "author name for -send")
		send  = flag.String("send", "", "message text to send")
		list  = flag.Bool("list", false, "print the message history")
		watch = flag.Bool("watch", false, "poll the history until interrupted")
	)
	flag.Parse()

	if *send == "" && !*list && !*watch {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadClient()
	c := client.New(cfg.Origin, client.Config{
		WakeMaxAttempts: cfg.WakeMaxAttempts,
		WakeBackoffBase: cfg.WakeBackoffBase,
		ListMaxAttempts: cfg.ListMaxAttempts,
		ListBackoffBase: cfg.ListBackoffBase,
		SendMaxAttempts: cfg.SendMaxAttempts,
		SendBackoffBase: cfg.SendBackoffBase,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Wake(ctx)

	if *send != "" {
		msg, err := c.Send(ctx, *name, *send)
		if err != nil {
			if errors.Is(err, client.ErrColdStart) {
				log.Fatalf("backend is still waking up, try again in a few seconds: %v", err)
			}
			log.Fatalf("send failed: %v", err)
		}
		printMessage(msg)
	}

	if *list {
		msgs, err := c.List(ctx)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printHistory(msgs)
	}

	if *watch {
		p, err := client.NewPoller(cfg.PollInterval, c, func(msgs []model.Message) {
			fmt.Print("\033[H\033[2J")
			printHistory(msgs)
		})
		if err != nil {
			log.Fatalf("failed to create poller: %v", err)
		}
		p.Start()
		<-ctx.Done()
		p.Stop()
	}
}

func printHistory(msgs []model.Message) {
	if len(msgs) == 0 {
		fmt.Println("no messages yet")
		return
	}
	for _, m := range msgs {
		printMessage(m)
	}
}

func printMessage(m model.Message) {
	fmt.Printf("[%s] %s: %s (%s %.0f%%)\n",
		m.Timestamp.Local().Format("15:04:05"),
		m.Name,
		m.Description,
		m.Feeling,
		m.Score*100,
	)
}
