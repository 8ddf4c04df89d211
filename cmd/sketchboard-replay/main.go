package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/sketchboard/internal/config"
	"github.com/pstuifzand/sketchboard/internal/geom"
	"github.com/pstuifzand/sketchboard/internal/model"
	"github.com/pstuifzand/sketchboard/internal/palette"
	"github.com/pstuifzand/sketchboard/internal/replay"
	"github.com/pstuifzand/sketchboard/internal/share"
)

const frameInterval = 33 * time.Millisecond

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sketchboard-replay [options] <share-link>

Replays a shared drawing in the terminal. Press q or Esc to quit,
space to restart. A link without a drawing replays an empty canvas.

Options:
`)
		flag.PrintDefaults()
	}

	speed := flag.Float64("speed", 0, "Override the replay speed multiplier")
	loop := flag.Bool("loop", false, "Loop the replay even if the link does not")
	easing := flag.String("easing", "", "Override the easing curve: "+strings.Join(replay.EasingNames(), ", "))
	logPath := flag.String("log", "", "Write log output to this file")
	var settings [][2]string
	flag.Func("set", "Override a setting for this run (key=value, repeatable)", func(s string) error {
		key, value, err := config.ParseAssignment(s)
		if err != nil {
			return err
		}
		settings = append(settings, [2]string{key, value})
		return nil
	})
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *easing != "" && !knownEasing(*easing) {
		fmt.Fprintf(os.Stderr, "Unknown easing %q (want one of %s)\n", *easing, strings.Join(replay.EasingNames(), ", "))
		os.Exit(1)
	}

	log.SetOutput(io.Discard)
	if *logPath != "" {
		logFile, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	for _, kv := range settings {
		cfg.Set(kv[0], kv[1])
	}

	var notice string
	info, err := loadDrawing(share.NewCodec(cfg.ShareOrigin()), flag.Arg(0))
	if err != nil {
		log.Printf("Replaying an empty canvas: %v", err)
		notice = "no drawing in link"
		info = emptyDrawing(cfg.CanvasSize())
	}
	log.Printf("Replaying %d lines on a %gx%g canvas", len(info.Lines), info.Options.Width, info.Options.Height)

	opts := info.Options.ReplayOptions
	if *speed > 0 {
		opts.Speed = model.Ptr(*speed)
	}
	if *loop {
		opts.Loop = model.Ptr(true)
	}
	if *easing != "" {
		opts.Easing = model.Ptr(*easing)
	}

	if err := play(info, opts, cfg.ReplayBaseSpeed(), notice); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDrawing accepts a full share link or a bare token
func loadDrawing(codec *share.Codec, arg string) (*model.SharedInfo, error) {
	arg = strings.TrimSpace(arg)
	if !strings.Contains(arg, "?") {
		info, err := share.Decode(arg)
		if err != nil {
			return nil, fmt.Errorf("no drawing found in token: %w", err)
		}
		return info, nil
	}
	if info := codec.ParseURL(arg); info != nil {
		return info, nil
	}
	return nil, fmt.Errorf("no drawing found in link %s", arg)
}

// emptyDrawing is replayed when the argument holds no usable drawing
func emptyDrawing(width, height int) *model.SharedInfo {
	return &model.SharedInfo{
		Lines:   []geom.Line{},
		Options: model.ShareOptions{Width: float64(width), Height: float64(height)},
	}
}

func knownEasing(name string) bool {
	return slices.Contains(replay.EasingNames(), strings.ToLower(strings.TrimSpace(name)))
}

func play(info *model.SharedInfo, opts model.ReplayOptions, baseSpeed float64, notice string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	style := tcell.StyleDefault
	if c := info.Options.DrawOptions.Color; c != nil {
		style = style.Foreground(palette.TerminalColor(*c))
	}
	if bg := info.Options.DrawOptions.Background; bg != nil {
		style = style.Background(palette.TerminalColor(*bg))
	}
	screen.SetStyle(style)

	schedule := replay.NewSchedule(info.Lines, opts, baseSpeed)

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == ' ' {
					start = time.Now()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			elapsed := time.Since(start)
			drawFrame(screen, style, info, schedule.Frame(info.Lines, elapsed))
			drawStatus(screen, schedule, elapsed, notice)
			screen.Show()
		}
	}
}

func drawFrame(screen tcell.Screen, style tcell.Style, info *model.SharedInfo, lines []geom.Line) {
	screen.Clear()
	cols, rows := screen.Size()
	rows-- // status line

	p := newProjector(info.Options.Width, info.Options.Height, cols, rows)
	for c := range rasterize(lines, p) {
		screen.SetContent(c.X, c.Y, '█', nil, style)
	}
}

func drawStatus(screen tcell.Screen, schedule *replay.Schedule, elapsed time.Duration, notice string) {
	_, rows := screen.Size()
	status := fmt.Sprintf(" %s / %s  [q] quit  [space] restart", minDuration(elapsed, schedule.Total), schedule.Total)
	if schedule.Loop {
		status += "  (looping)"
	}
	if notice != "" {
		status += "  " + notice
	}
	drawText(screen, 0, rows-1, status, tcell.StyleDefault.Reverse(true))
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a.Round(100 * time.Millisecond)
	}
	return b.Round(100 * time.Millisecond)
}
