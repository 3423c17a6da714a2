// Command selectserver is a headless authority for marquee selection. It
// loads a level without a local player, ticks it, and resolves requests
// from sandbox clients started with -server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	levelName := flag.String("level", "", "level spec in prefabs/ (defaults to level.yaml)")
	tickRate := flag.Int("tick", 30, "world ticks per second")
	flag.Parse()

	if *tickRate <= 0 {
		log.Fatalf("selectserver: tick rate must be positive, got %d", *tickRate)
	}

	srv, err := newSelectServer(*levelName, log.Default())
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{Addr: *addr, Handler: srv.Handler()}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Run(ctx, *tickRate)
	})
	eg.Go(func() error {
		log.Printf("selectserver: listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}
}
