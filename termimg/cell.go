package termimg

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)
