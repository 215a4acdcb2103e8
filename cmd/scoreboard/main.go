// Command scoreboard follows a table as a spectator and renders its score
// in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "pocketball server base URL")
	tableID := flag.String("table", "", "table ID")
	token := flag.String("token", "", "spectator or player token for the table")
	flag.Parse()

	if *tableID == "" || *token == "" {
		fmt.Fprintln(os.Stderr, "usage: scoreboard -table ID -token TOKEN [-server URL]")
		os.Exit(2)
	}

	wsURL, err := tableURL(*server, *tableID, *token)
	if err != nil {
		log.Fatalf("Invalid server URL: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, wsURL); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Scoreboard stopped: %v", err)
	}
}

// tableURL turns the server base URL into the table websocket URL.
func tableURL(server, tableID, token string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/tables/" + url.PathEscape(tableID) + "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

func run(ctx context.Context, wsURL string) error {
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	view := &scoreboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			_, data, err := conn.Read(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			if err := view.apply(data); err != nil {
				view.apply([]byte(`{"type":"notice","message":"unreadable update from server"}`))
			}
		}
	})

	g.Go(func() error {
		events := make(chan tcell.Event, 16)
		go func() {
			for {
				ev := screen.PollEvent()
				if ev == nil {
					return
				}
				events <- ev
			}
		}()

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				conn.Close(websocket.StatusNormalClosure, "bye")
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
						(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
						conn.Close(websocket.StatusNormalClosure, "bye")
						return context.Canceled
					}
				case *tcell.EventResize:
					screen.Sync()
				}
			case <-ticker.C:
				draw(screen, view.lines())
			}
		}
	})

	return g.Wait()
}

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault
	footerStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func draw(screen tcell.Screen, lines []string) {
	screen.Clear()
	w, h := screen.Size()

	put(screen, 0, 0, w, "POCKETBALL SCOREBOARD", titleStyle)
	for i, line := range lines {
		y := i + 2
		if y >= h-1 {
			break
		}
		put(screen, 1, y, w, line, textStyle)
	}
	put(screen, 0, h-1, w, "q / Esc to quit", footerStyle)
	screen.Show()
}

func put(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
