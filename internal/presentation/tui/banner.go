package tui

import (
	"fmt"
	"io"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _           _              ", "#818cf8"},
	{"| |__   __ _| |_ ___  _ __  ", "#a78bfa"},
	{"| '_ \\ / _` | __/ _ \\| '_ \\ ", "#c084fc"},
	{"| |_) | (_| | || (_) | | | |", "#e879f9"},
	{"|_.__/ \\__,_|\\__\\___/|_| |_|", "#f472b6"},
}

// PrintBanner writes the Baton banner to w, colored when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := profileOf(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
