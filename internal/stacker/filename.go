package stacker

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// pixelRawTail matches the companion-file naming Pixel phones use for
	// RAW captures, e.g. "PXL_x.RAW-02.ORIGINAL.dng" / "PXL_x.RAW-01.COVER.jpg".
	pixelRawTail = regexp.MustCompile(`(?i)\.RAW-\d+\.(ORIGINAL|COVER)$`)
	// editTail matches the "-edit" marker photo editors append to exported
	// variants, e.g. "DSC0001-edit.tif".
	editTail = regexp.MustCompile(`(?i)-edit$`)
)

// GroupKey reduces a filename to the canonical key used to decide whether two
// assets are variants of the same photo. The extension is stripped, Pixel RAW
// companion markers and "-edit" markers are removed, and the remainder is
// Unicode case folded. Assets with equal keys inside one scope belong to the
// same stack candidate group.
func GroupKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = pixelRawTail.ReplaceAllString(base, "")
	base = editTail.ReplaceAllString(base, "")
	return cases.Fold().String(base)
}

// Ext returns the case-folded extension of a filename, including the leading
// dot, or "" when the filename has none.
func Ext(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	ext := path.Ext(path.Base(name))
	if ext == "" {
		return ""
	}
	return cases.Fold().String(ext)
}
