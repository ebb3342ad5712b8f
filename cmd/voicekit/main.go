// Command voicekit drives the capability core from the terminal: one-shot
// chat turns, file transcription, speech synthesis, and an interactive
// conversation loop with live settings reload.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/normanking/voicekit/internal/audio"
	"github.com/normanking/voicekit/internal/config"
	"github.com/normanking/voicekit/internal/logging"
	"github.com/normanking/voicekit/internal/service"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Instance level stays wide open; the global level (set by --verbose)
	// is the single gate.
	logger, err := logging.New(logging.Config{Level: zerolog.TraceLevel, Console: true})
	if err != nil {
		// No log file is not fatal; fall back to console only.
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Warn().Err(err).Msg("Log file unavailable, logging to console only")
	} else {
		defer logger.Close()
		log.Logger = logger.Logger
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	app := &cli.Command{
		Name:    "voicekit",
		Usage:   "route chat, speech-to-text and text-to-speech between local and cloud backends",
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "settings file (default: ~/.voicekit/settings.ini)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "routes",
				Usage:  "Show which backend each capability resolves to",
				Action: handleRoutes,
			},
			{
				Name:   "personas",
				Usage:  "List selectable personas",
				Action: handlePersonas,
			},
			{
				Name:      "chat",
				Usage:     "Run one chat turn",
				Action:    handleChat,
				ArgsUsage: "<text>",
			},
			{
				Name:      "transcribe",
				Usage:     "Transcribe a WAV file",
				Action:    handleTranscribe,
				ArgsUsage: "<file.wav>",
			},
			{
				Name:      "say",
				Usage:     "Synthesize text to a WAV file",
				Action:    handleSay,
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   "voicekit-out.wav",
						Usage:   "output WAV path",
					},
				},
			},
			{
				Name:   "repl",
				Usage:  "Interactive conversation loop (reloads settings on file change)",
				Action: handleRepl,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func openService(c *cli.Command) (*service.Service, error) {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return service.New(path, log.Logger)
}

func handleRoutes(ctx context.Context, c *cli.Command) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	routes := svc.Routes()
	fmt.Printf("chat: %s\nstt:  %s\ntts:  %s\n", routes.Chat, routes.STT, routes.TTS)
	return nil
}

func handlePersonas(ctx context.Context, c *cli.Command) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, p := range svc.Personas() {
		fmt.Println(p.Name)
	}
	return nil
}

func handleChat(ctx context.Context, c *cli.Command) error {
	text := c.Args().First()
	if text == "" {
		return fmt.Errorf("usage: voicekit chat <text>")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	reply, err := svc.Chat(ctx, text)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func handleTranscribe(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: voicekit transcribe <file.wav>")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	buf, err := audio.DecodeWAV(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	text, err := svc.Recognize(ctx, buf)
	if err != nil {
		return err
	}
	if text == "" {
		log.Info().Msg("No speech recognized")
		return nil
	}
	fmt.Println(text)
	return nil
}

func handleSay(ctx context.Context, c *cli.Command) error {
	text := c.Args().First()
	if text == "" {
		return fmt.Errorf("usage: voicekit say <text>")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	buf, err := svc.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.WriteFile(out, buf.EncodeWAV(), 0644); err != nil {
		return err
	}
	log.Info().Str("file", out).Int("sampleRate", buf.SampleRate).Msg("Audio written")
	return nil
}

func handleRepl(ctx context.Context, c *cli.Command) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	watcher, err := svc.WatchConfig()
	if err != nil {
		log.Warn().Err(err).Msg("Settings watch unavailable, continuing without live reload")
	} else {
		defer watcher.Close()
	}

	fmt.Println("voicekit repl - type a message, 'exit' to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := svc.Chat(ctx, line)
		if err != nil {
			log.Error().Err(err).Msg("Chat turn failed")
			continue
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}
