package visualization

import (
	"bufio"
	"bytes"
	"io"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// WriteJSONL writes one JSON object per frame, newline separated.
func WriteJSONL(w io.Writer, frames []Frame) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, f := range frames {
		if err := enc.Encode(f); err != nil {
			return errors.Wrapf(err, "failed to encode frame at epoch %d", f.Epoch)
		}
	}
	return bw.Flush()
}

// ReadJSONL reads frames written by WriteJSONL. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]Frame, error) {
	var frames []Frame
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(b, &f); err != nil {
			return frames, errors.Wrapf(err, "invalid frame on line %d", line)
		}
		frames = append(frames, f)
	}
	if err := scanner.Err(); err != nil {
		return frames, errors.Wrap(err, "failed to read frames")
	}
	return frames, nil
}
