/*
Package main is the entry point for the termchat terminal client.

It is responsible for loading configuration, initializing the global logging system,
collecting the user's identity, running a chat Session over WebSocket, and gracefully
handling operating system interrupt signals (SIGINT, SIGTERM) so the connection is
closed with a proper handshake.
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"termchat/internal/app/chat"
	"termchat/internal/app/colors"
	"termchat/internal/app/user"
	"termchat/internal/configs"
	"termchat/internal/pkg/errs"
	"termchat/internal/pkg/logx"
	"termchat/internal/transport/wsconn"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		// No configuration means no logging options either; report on the console.
		logx.InitGlobalLogger(logx.Options{Development: true})
		logx.Fatal(err, "Failed to load configuration")
	}

	// Initialize global logger. With a log file, the terminal is left to the chat view.
	logx.InitGlobalLogger(logx.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
		FilePath:    cfg.LogFile,
		FileOnly:    cfg.LogFile != "",
	})
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("server_url", cfg.ServerURL).
		Dur("connect_timeout", cfg.ConnectTimeout).
		Dur("ping_interval", cfg.PingInterval).
		Float64("send_rate", cfg.SendRate).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := newRenderer(os.Stdout)
	lines := readLines(os.Stdin)

	identity, ok := promptIdentity(ctx, out, lines)
	if !ok {
		return
	}

	dialer := wsconn.NewDialer(wsconn.PongWaitFor(cfg.PingInterval))
	session := chat.NewSession(chat.OptionsFromConfig(cfg), dialer, colors.NewTable())

	if err := session.Connect(identity); err != nil {
		out.systemf("%s", errs.MessageOf(err))
		session.Close()
		os.Exit(1)
	}

	// The event loop ends the program when the connection ends.
	go func() {
		defer stop()

		for {
			ev, ok := session.Events().Pop(ctx)
			if !ok {
				return
			}
			if out.render(ev) {
				return
			}
		}
	}()

	runInput(ctx, session, out, lines)

	logx.Info("Shutting down session...")
	stop()
	session.Close()

	// Show whatever arrived during shutdown, including the final Disconnected.
	for _, ev := range session.Events().Drain() {
		out.render(ev)
	}

	logx.Info("Client stopped.")
}

// runInput forwards typed lines to the session until quit, EOF or shutdown.
func runInput(ctx context.Context, session *chat.Session, out *renderer, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return

		case line, ok := <-lines:
			if !ok {
				return
			}

			switch parseLocalCommand(line) {
			case cmdQuit:
				return
			case cmdClear:
				out.clear()
				continue
			}

			if err := session.Send(line); err != nil {
				out.systemf("%s", errs.MessageOf(err))
			}
		}
	}
}

// promptIdentity asks for the username, room and password. Blank answers take defaults.
func promptIdentity(ctx context.Context, out *renderer, lines <-chan string) (user.Identity, bool) {
	answers := make([]string, 0, 3)

	for _, prompt := range []string{
		fmt.Sprintf("Username [%s]: ", user.DefaultUsername),
		fmt.Sprintf("Room [%s]: ", user.DefaultChatName),
		"Password: ",
	} {
		out.prompt(prompt)

		select {
		case <-ctx.Done():
			return user.Identity{}, false
		case line, ok := <-lines:
			if !ok {
				return user.Identity{}, false
			}
			answers = append(answers, line)
		}
	}

	return user.Identity{Username: answers[0], ChatName: answers[1], Password: answers[2]}, true
}

// readLines scans r on its own goroutine so the input loop can also watch for shutdown.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logx.Error(err, "Failed to read input")
		}
	}()

	return lines
}
