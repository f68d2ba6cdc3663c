package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the banner shown by long-running commands.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	s1 := termenv.String("  _           _ _           _").Foreground(p.Color("#34d399"))
	s2 := termenv.String(" (_)_ __   __| (_) ___ __ _| |_ ___  _ __").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(" | | '_ \\ / _` | |/ __/ _` | __/ _ \\| '__|").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" | | | | | (_| | | (_| (_| | || (_) | |").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String(" |_|_| |_|\\__,_|_|\\___\\__,_|\\__\\___/|_|").Foreground(p.Color("#60a5fa"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5)
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

// Status formats a one-line result, green when ok and red otherwise.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("✔ " + msg).Foreground(p.Color("#22c55e")).String()
	}
	return termenv.String("✘ " + msg).Foreground(p.Color("#ef4444")).String()
}
