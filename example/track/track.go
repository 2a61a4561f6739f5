/*
Example code showing how to track faces across the frames of a video file.

Faces are detected with an OpenCV Haar cascade classifier and fed to the
tracker which maintains their identities from frame to frame.  The annotated
video with tracking boxes and motion trails is written to the output file.

Download a cascade classifier file from
https://github.com/opencv/opencv/tree/master/data/haarcascades
*/
package main

import (
	"flag"
	"log"

	"github.com/swdee/go-tracklite"
	"github.com/swdee/go-tracklite/render"
	"gocv.io/x/gocv"
)

const (
	// confidence assigned to cascade detections as the classifier does
	// not score its results
	cascadeProb = 0.9
	// number of trail points to keep per track
	trailSize = 50
)

func main() {

	// read in cli flags
	vidFile := flag.String("i", "video.mp4", "Video file to run tracking on")
	outFile := flag.String("o", "out.avi", "Annotated output video file")
	cascadeFile := flag.String("c", "haarcascade_frontalface_default.xml",
		"Haar cascade classifier file to detect objects with")

	flag.Parse()

	err := runTracking(*vidFile, *outFile, *cascadeFile)

	if err != nil {
		log.Fatal("Error running tracking: ", err)
	}

	log.Println("done")
}

func runTracking(vidFile, outFile, cascadeFile string) error {

	vid, err := gocv.VideoCaptureFile(vidFile)

	if err != nil {
		return err
	}

	defer vid.Close()

	classifier := gocv.NewCascadeClassifier()
	defer classifier.Close()

	if !classifier.Load(cascadeFile) {
		log.Fatalf("Error loading cascade classifier file: %v", cascadeFile)
	}

	fps := vid.Get(gocv.VideoCaptureFPS)

	if fps <= 0 {
		fps = 30
	}

	track := tracklite.NewTracker(tracklite.DefaultConfig())
	trail := tracklite.NewTrail(trailSize)
	font := render.DefaultFont()
	trailStyle := render.DefaultTrailStyle()

	img := gocv.NewMat()
	defer img.Close()

	var writer *gocv.VideoWriter
	frameCnt := 0

	for {
		if ok := vid.Read(&img); !ok || img.Empty() {
			break
		}

		frameCnt++

		// create the output video writer once the frame size is known
		if writer == nil {
			writer, err = gocv.VideoWriterFile(outFile, "MJPG", fps,
				img.Cols(), img.Rows(), true)

			if err != nil {
				return err
			}

			defer writer.Close()
		}

		// detect objects and normalize their boxes to the frame size
		rects := classifier.DetectMultiScale(img)

		dets := make([]tracklite.DetectedObject, 0, len(rects))

		for _, r := range rects {
			dets = append(dets, tracklite.NewDetectedObject(
				tracklite.NewRect(
					float32(r.Min.X)/float32(img.Cols()),
					float32(r.Min.Y)/float32(img.Rows()),
					float32(r.Dx())/float32(img.Cols()),
					float32(r.Dy())/float32(img.Rows()),
				),
				"face", cascadeProb,
			))
		}

		// run the tracking cycle for this frame
		tracks := track.UpdateDelta(dets, float32(1.0/fps))

		for _, tr := range tracks {
			trail.Add(tr)
		}

		// draw tracking results on the frame
		render.TrackBoxes(&img, tracks, font, 2)
		render.Trail(&img, tracks, trail, trailStyle)

		err = writer.Write(img)

		if err != nil {
			return err
		}
	}

	log.Printf("Processed %d frames, wrote %s\n", frameCnt, outFile)

	return nil
}
