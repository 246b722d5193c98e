package termimg

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentConsoleFont = modkernel32.NewProc("GetCurrentConsoleFont")
)

type consoleFontInfo struct {
	nFont      uint32
	dwFontSize windows.Coord
}

// cellSize reports the console font size in pixels.
func cellSize() (int, int) {
	handle := windows.Handle(os.Stdout.Fd())

	var cfi consoleFontInfo
	ok, _, _ := procGetCurrentConsoleFont.Call(uintptr(handle), 0, uintptr(unsafe.Pointer(&cfi)))
	if ok == 0 || cfi.dwFontSize.X <= 0 || cfi.dwFontSize.Y <= 0 {
		return defaultCellWidth, defaultCellHeight
	}
	return int(cfi.dwFontSize.X), int(cfi.dwFontSize.Y)
}
