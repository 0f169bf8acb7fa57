package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/roach88/ednq/internal/edn"
)

var tokenColors = map[edn.Kind]*color.Color{
	edn.KindDelim:   forced(color.Faint),
	edn.KindNil:     forced(color.FgRed),
	edn.KindBool:    forced(color.FgRed),
	edn.KindNumber:  forced(color.FgYellow),
	edn.KindString:  forced(color.FgGreen),
	edn.KindKeyword: forced(color.FgCyan),
	edn.KindTag:     forced(color.FgMagenta),
}

// useColor decides whether EDN written to w gets colored.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "auto":
		if color.NoColor {
			return false
		}
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	default:
		return false
	}
}

// colorOption returns the write option that colors tokens for mode and w,
// or nil when output stays plain.
func colorOption(mode string, w io.Writer) edn.WriteOption {
	if !useColor(mode, w) {
		return nil
	}
	return edn.WithColor(colorToken)
}

func colorToken(k edn.Kind, text string) string {
	c, ok := tokenColors[k]
	if !ok {
		return text
	}
	return c.Sprint(text)
}

// forced builds a color that ignores fatih/color's own terminal detection;
// useColor has already decided.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}
