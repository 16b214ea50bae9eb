package testsupport

import "fmt"

// ProbeJSON builds a minimal ffprobe payload with one video stream carrying
// the given decimal duration and frame count.
func ProbeJSON(duration string, frames int) []byte {
	return fmt.Appendf(nil, `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "duration": %q,
      "nb_frames": "%d",
      "width": 1280,
      "height": 720
    }
  ],
  "format": {
    "nb_streams": 1,
    "duration": %q,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`, duration, frames, duration)
}

// ImageProbeJSON builds an ffprobe payload for a still image, which reports
// no duration.
func ImageProbeJSON() []byte {
	return []byte(`{
  "streams": [
    {
      "index": 0,
      "codec_name": "png",
      "codec_type": "video",
      "width": 265,
      "height": 314
    }
  ],
  "format": {
    "nb_streams": 1,
    "format_name": "png_pipe"
  }
}`)
}
