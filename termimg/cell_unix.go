//go:build unix

package termimg

import (
	"os"

	"golang.org/x/sys/unix"
)

// cellSize reports the pixel size of one terminal cell, falling back to a
// common 8x16 cell when the terminal does not say.
func cellSize() (int, int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return defaultCellWidth, defaultCellHeight
	}
	return max(int(ws.Xpixel/ws.Col), 1), max(int(ws.Ypixel/ws.Row), 1)
}
