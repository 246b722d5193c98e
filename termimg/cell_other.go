//go:build !unix && !windows

package termimg

func cellSize() (int, int) {
	return defaultCellWidth, defaultCellHeight
}
