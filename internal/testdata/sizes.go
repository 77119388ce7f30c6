package testdata

type Size struct {
	Name string
	N    int
}

var Sizes []Size = []Size{
	{"1B", 1},
	{"55B", 55},
	{"64B", 64},
	{"111B", 111},
	{"128B", 128},
	{"8KiB", 8 * 1024},
	{"64KiB", 64 * 1024},
	{"1MiB", 1024 * 1024},
}
