package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmson/dtmf/internal/config"
	"github.com/bmson/dtmf/internal/dial"
	"github.com/bmson/dtmf/internal/player"
	"github.com/bmson/dtmf/internal/synth"
	"github.com/bmson/dtmf/internal/tui"
	"github.com/bmson/dtmf/internal/wave"
)

func main() {
	run()
}

func run() {
	output := flag.String("o", "", "write the WAV to this file")
	play := flag.Bool("play", false, "play through the speaker instead of writing output")
	rate := flag.Int("rate", 0, "output sample rate in Hz (overrides config)")
	interactive := flag.Bool("i", false, "open the interactive dialpad")
	cfgPath := flag.String("config", "", "config file path")
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	flag.Parse()

	// Set up debug logger
	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	// Load config
	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *rate != 0 {
		cfg.Audio.OutputSampleRate = *rate
	}

	dialer := dial.New(synth.New(), wave.NewEncoderWithGain(cfg.Audio.Volume), dbg)

	if *interactive {
		var pl player.Player
		if cfg.Playback.Enabled {
			pl, err = player.New(&cfg.Playback, dbg)
			if err != nil {
				log.Fatalf("create player: %v", err)
			}
		}
		m := tui.NewModel(cfg, dialer, pl, dbg)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			log.Fatalf("dialpad: %v", err)
		}
		return
	}

	// Dial string comes from the args, or stdin when piped.
	input := strings.Join(flag.Args(), " ")
	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
		input = strings.TrimRight(string(data), "\r\n")
	}

	ctx := context.Background()
	blob, err := dialer.Create(ctx, input)
	if err != nil {
		log.Fatalf("create: %v", err)
	}

	if cfg.Audio.OutputSampleRate != 0 && cfg.Audio.OutputSampleRate != dial.SampleRate {
		blob, err = wave.ConvertRate(blob, cfg.Audio.OutputSampleRate)
		if err != nil {
			log.Fatalf("convert rate: %v", err)
		}
	}

	if sr, ch, bd, err := wave.ValidateWAVHeader(blob); err == nil {
		dbg.Printf("wav: %d Hz, %d ch, %d bit, %d bytes", sr, ch, bd, len(blob))
	}

	switch {
	case *output != "":
		if err := os.WriteFile(*output, blob, 0o644); err != nil {
			log.Fatalf("write %s: %v", *output, err)
		}
		dbg.Printf("wrote %s", *output)
	case *play:
		pl, err := player.New(&cfg.Playback, dbg)
		if err != nil {
			log.Fatalf("create player: %v", err)
		}
		if err := pl.Play(ctx, blob); err != nil {
			log.Fatalf("play: %v", err)
		}
	default:
		if _, err := os.Stdout.Write(blob); err != nil {
			log.Fatalf("write stdout: %v", err)
		}
	}
}
