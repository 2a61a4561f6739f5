package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-tracklite"
	"gocv.io/x/gocv"
)

// boxLabel holds the precalculated rendering details of a single box label
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// toPixelRect scales a normalized tracking rectangle to pixel coordinates
// of the given image
func toPixelRect(r tracklite.Rect, img *gocv.Mat) image.Rectangle {
	w := float32(img.Cols())
	h := float32(img.Rows())

	return image.Rect(
		int(r.X*w), int(r.Y*h),
		int(r.BRX()*w), int(r.BRY()*h),
	)
}

// TrackBoxes renders the bounding boxes of the given tracks on the source
// image with a "label #id" text label.  Tentative tracks are drawn with a
// thinner line than confirmed ones so unproven identities are visible at a
// glance
func TrackBoxes(img *gocv.Mat, tracks []tracklite.Track, font Font,
	lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(tracks))

	for _, track := range tracks {

		useClr := TrackColor(track.ID)

		useThickness := lineThickness

		if track.State == tracklite.Tentative && lineThickness > 1 {
			useThickness = lineThickness - 1
		}

		// draw rectangle around tracked object
		rect := toPixelRect(track.Rect, img)
		gocv.Rectangle(img, rect, useClr, useThickness)

		// create text for label
		text := fmt.Sprintf("%s #%d", track.Label, track.ID)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Calculate the alignment of text label
		var centerX int

		switch font.Alignment {
		case Center:
			centerX = (rect.Min.X + rect.Max.X) / 2

		case Right:
			centerX = rect.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

		case Left:
			fallthrough
		default:
			centerX = rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
		}

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, rect.Min.Y-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, rect.Min.Y)

		// record label rendering details
		nextLabel := boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		}
		boxLabels = append(boxLabels, nextLabel)
	}

	// draw all precalculated box labels so they are the top most layer on
	// the image
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
