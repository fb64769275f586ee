package output

import "io"

// Render writes structured for json and yaml output. For table and wide
// output it writes the table built by tabular instead.
func Render(w io.Writer, explicitFormat string, structured any, tabular func(wide bool) Data) error {
	format := DetectFormat(explicitFormat)
	formatter := NewFormatter(format)
	if format.Tabular() {
		return formatter.Format(w, tabular(format.Wide()))
	}
	return formatter.Format(w, structured)
}
