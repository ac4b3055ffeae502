package render

import (
	"fmt"
	"image/color"

	"github.com/duckyflow/duckyflow/pkg/script"
)

// Colors used in rendering
var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorInk        = color.RGBA{51, 51, 51, 255}   // #333
	colorPath       = color.RGBA{84, 110, 122, 255} // #546e7a
	colorFallback   = color.RGBA{211, 47, 47, 255}  // #d32f2f
	colorNote       = color.RGBA{120, 120, 120, 255}
)

// nodeFill is the fill color for each node type.
var nodeFill = map[script.NodeType]color.RGBA{
	script.TypeCommand:        {227, 242, 253, 255}, // #e3f2fd
	script.TypeKeyCombination: {243, 229, 245, 255}, // #f3e5f5
	script.TypeTextInput:      {232, 245, 233, 255}, // #e8f5e9
	script.TypeDelay:          {255, 243, 224, 255}, // #fff3e0
	script.TypeLoop:           {224, 247, 250, 255}, // #e0f7fa
	script.TypeCondition:      {255, 253, 231, 255}, // #fffde7
}

// nodeBorder is the border color for each node type.
var nodeBorder = map[script.NodeType]color.RGBA{
	script.TypeCommand:        {21, 101, 192, 255},
	script.TypeKeyCombination: {106, 27, 154, 255},
	script.TypeTextInput:      {46, 125, 50, 255},
	script.TypeDelay:          {230, 81, 0, 255},
	script.TypeLoop:           {0, 131, 143, 255},
	script.TypeCondition:      {249, 168, 37, 255},
}

func fillFor(t script.NodeType) color.RGBA {
	if c, ok := nodeFill[t]; ok {
		return c
	}
	return color.RGBA{245, 245, 245, 255}
}

func borderFor(t script.NodeType) color.RGBA {
	if c, ok := nodeBorder[t]; ok {
		return c
	}
	return colorInk
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
