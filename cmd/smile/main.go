// Smile - picks the frame with the strongest smile from a video or a live camera
//
// Usage:
//
//	smile serve                 # HTTP upload endpoint on :8000
//	smile pick video.mp4        # write the best frame to best.jpg
//	smile camera --device 0     # live annotated window, ESC to quit
package main

func main() {
	Execute()
}
