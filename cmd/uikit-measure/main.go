// Command uikit-measure lays out a string with a font and prints the
// wrapped lines.
//
// Usage:
//
//	uikit-measure -font roboto.json -size 16 -width 120 -wrap word "some text"
//
// The font is an msdf-bmfont JSON descriptor, a TTF/OTF file or an http(s)
// URL of either. A width of 0 or less measures without a width limit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/uikit/text"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("uikit-measure: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("uikit-measure", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		fontPath      = fs.String("font", "", "font file or URL (msdf-bmfont JSON, TTF or OTF)")
		size          = fs.Float64("size", 16, "font size in pixels")
		width         = fs.Float64("width", 0, "available width in pixels; 0 or less is unbounded")
		wrap          = fs.String("wrap", "word", "wrap mode: word, all or none")
		lineHeight    = fs.String("line-height", "", `line height in pixels or percent, e.g. "20" or "150%"`)
		letterSpacing = fs.Float64("letter-spacing", 0, "extra advance per character in pixels")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fontPath == "" {
		return errors.New("-font is required")
	}
	if fs.NArg() == 0 {
		return errors.New("missing TEXT argument")
	}

	mode, ok := text.ParseWrapMode(*wrap)
	if !ok {
		return fmt.Errorf("unknown wrap mode %q", *wrap)
	}

	font, err := text.LoadFont(ctx, *fontPath)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	p := text.NewGlyphProperties(strings.Join(fs.Args(), " "), font, float32(*size))
	p.WordBreak = mode
	p.LetterSpacing = float32(*letterSpacing)
	if *lineHeight != "" {
		lh, ok := text.ParseLineHeight(*lineHeight)
		if !ok {
			return fmt.Errorf("invalid line height %q", *lineHeight)
		}
		p.LineHeight = lh
	}

	available := text.Unbounded
	if *width > 0 {
		available = float32(*width)
	}
	return printLayout(out, text.Layout(p, available))
}

func printLayout(out io.Writer, l *text.GlyphLayout) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tOFFSET\tLENGTH\tVISIBLE\tWIDTH\tTEXT")
	for i, line := range l.Lines {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.2f\t%q\n",
			i, line.CharIndexOffset, line.CharLength, line.NonWhitespaceCharLength,
			line.NonWhitespaceWidth, l.Props.LineString(line))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "lines=%d width=%.2f height=%.2f line-height=%.2f\n",
		len(l.Lines), l.Width, l.Height, l.LineHeight)
	return err
}
