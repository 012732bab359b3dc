// Package camera grabs single frames from a local video device.
package camera

import (
	"encoding/base64"
	"fmt"

	"gocv.io/x/gocv"
)

// Webcam captures one-shot frames from a V4L-style camera device. The device
// handle is opened and released inside each Capture call, so a camera that
// comes back after an unplug is picked up on the next iteration.
type Webcam struct {
	Device int
}

func NewWebcam() *Webcam { return &Webcam{Device: 0} }

// Capture reads exactly one frame and returns it as a base64-encoded JPEG.
func (w *Webcam) Capture() (string, error) {
	cam, err := gocv.OpenVideoCapture(w.Device)
	if err != nil {
		return "", fmt.Errorf("no se pudo abrir la webcam (índice %d): %w", w.Device, err)
	}
	defer cam.Close()

	img := gocv.NewMat()
	defer img.Close()

	if ok := cam.Read(&img); !ok || img.Empty() {
		return "", fmt.Errorf("no se pudo capturar un frame de la webcam (índice %d)", w.Device)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return "", fmt.Errorf("no se pudo codificar la imagen como JPEG: %w", err)
	}
	defer buf.Close()

	return base64.StdEncoding.EncodeToString(buf.GetBytes()), nil
}
