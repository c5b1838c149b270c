package stacker_test

import (
	"testing"

	"immich-stacker/internal/stacker"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "extension stripped", in: "IMG123.JPG", want: "img123"},
		{name: "raw extension stripped", in: "IMG123.RAW", want: "img123"},
		{name: "case folded", in: "img123.raw", want: "img123"},
		{name: "path reduced to basename", in: "/photos/2025/IMG123.JPG", want: "img123"},
		{name: "edit marker stripped", in: "DSC0001-edit.tif", want: "dsc0001"},
		{name: "edit marker case insensitive", in: "DSC0001-Edit.tif", want: "dsc0001"},
		{
			name: "pixel raw original marker stripped",
			in:   "PXL_20250615_143621025.RAW-02.ORIGINAL.dng",
			want: "pxl_20250615_143621025",
		},
		{
			name: "pixel raw cover marker stripped",
			in:   "PXL_20250615_143621025.RAW-01.COVER.jpg",
			want: "pxl_20250615_143621025",
		},
		{name: "no extension", in: "README", want: "readme"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stacker.GroupKey(tt.in); got != tt.want {
				t.Fatalf("GroupKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGroupKeyMatchesVariants(t *testing.T) {
	pairs := [][2]string{
		{"IMG123.JPG", "IMG123.RAW"},
		{"IMG123.JPG", "IMG123.DNF"},
		{"IMG123.JPG", "IMG123.raw"},
		{"DSC0001-edit.tif", "DSC0001.jpg"},
		{
			"PXL_20250615_143621025.RAW-02.ORIGINAL.dng",
			"PXL_20250615_143621025.RAW-01.COVER.jpg",
		},
	}
	for _, pair := range pairs {
		if stacker.GroupKey(pair[0]) != stacker.GroupKey(pair[1]) {
			t.Errorf("expected %q and %q to share a grouping key", pair[0], pair[1])
		}
	}
}

func TestGroupKeySeparatesDifferentNames(t *testing.T) {
	if stacker.GroupKey("IMG123.JPG") == stacker.GroupKey("IMG124.RAW") {
		t.Fatal("different base names must not share a grouping key")
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "IMG123.JPG", want: ".jpg"},
		{in: "IMG123.jpg", want: ".jpg"},
		{in: "IMG123.NEF", want: ".nef"},
		{in: "/photos/IMG123.HEIC", want: ".heic"},
		{in: "README", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := stacker.Ext(tt.in); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
