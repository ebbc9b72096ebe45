package clipboard

import "github.com/atotto/clipboard"

// Writer puts text on a clipboard
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard
type System struct{}

func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// CopyToClipboard writes text through w. Failures are the platform's and are returned unchanged.
func CopyToClipboard(w Writer, text string) error {
	return w.WriteText(text)
}
