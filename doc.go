/*
go-tracklite provides multi-object tracking for video streams.  It assigns
stable identities to objects detected frame by frame so downstream consumers
can reason about "the same object" across time despite detector noise,
occlusion, and temporary disappearance.

Each frame the caller passes the detector's bounding boxes to the Tracker
which predicts the motion of existing tracks with a constant velocity Kalman
filter, associates predictions to detections by solving a minimum cost
assignment over an IoU cost matrix, and manages the track lifecycle of
Tentative, Confirmed, and Lost states.

The library performs no inference or video decoding itself, it only consumes
bounding boxes produced by an object detection model of your choosing.

See example code and usage in the example subdirectory.
*/
package tracklite
