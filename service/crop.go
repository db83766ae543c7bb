// service/crop.go
package service

import (
	"strings"

	"github.com/campusweb/mediagate/model"
)

// validAnchors are the crop alignments a preset may name. Anything else in
// a stored preset is dropped.
var validAnchors = map[string]bool{
	"top":    true,
	"bottom": true,
	"left":   true,
	"right":  true,
}

// FindPreset returns the first preset matching the requested dimensions
// exactly, or nil. Tables may hold duplicate dimensions; stored order wins.
func FindPreset(table model.SizeTable, width, height int) *model.SizePreset {
	for i := range table {
		if table[i].Width == width && table[i].Height == height {
			return &table[i]
		}
	}
	return nil
}

// CropString flattens a preset's anchors into the comma-joined form used in
// derived keys and as the resample alignment, keeping only valid anchors.
func CropString(preset *model.SizePreset) string {
	if preset == nil {
		return ""
	}
	var anchors []string
	for _, anchor := range preset.Crop {
		if validAnchors[anchor] {
			anchors = append(anchors, anchor)
		}
	}
	return strings.Join(anchors, ",")
}
