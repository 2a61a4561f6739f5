package render

import (
	"image"
	"image/color"

	"github.com/swdee/go-tracklite"
	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the midpoint circle should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// toPixelPoint scales a normalized trail point to pixel coordinates of the
// given image
func toPixelPoint(p tracklite.Point, img *gocv.Mat) image.Point {
	return image.Pt(
		int(p.X*float32(img.Cols())),
		int(p.Y*float32(img.Rows())),
	)
}

// Trail draws the tracker trail lines on the source image.
func Trail(img *gocv.Mat, tracks []tracklite.Track, trail *tracklite.Trail,
	style TrailStyle) {

	// draw trail
	for _, track := range tracks {

		// Get the color for this object
		objClr := TrackColor(track.ID)

		// determine style colors to use
		lineClr := objClr
		circleClr := objClr

		if !style.LineSame {
			lineClr = style.LineColor
		}

		if !style.CircleSame {
			circleClr = style.CircleColor
		}

		// draw trail line showing tracking history
		points := trail.GetPoints(track.ID)

		if len(points) < 2 {
			continue
		}

		for i := 1; i < len(points); i++ {
			// draw line segment of trail
			gocv.Line(img,
				toPixelPoint(points[i-1], img),
				toPixelPoint(points[i], img),
				lineClr, style.LineThickness,
			)

			if i == len(points)-1 {
				// draw center point circle on current rect/box
				gocv.Circle(img, toPixelPoint(points[i], img),
					style.CircleRadius, circleClr, -1)
			}
		}
	}
}
