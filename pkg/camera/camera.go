// Package camera discovers V4L2 video devices and resolves the indices of
// the cameras used by a LeRobot SO-101 setup.
package camera

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/runner"
)

// Keywords identifying the SO-101 cameras by device name
const (
	DefaultTopKeyword   = "Logitech Webcam"
	DefaultWristKeyword = "USB2.0_CAM1"
)

// DefaultTool lists V4L2 devices
const DefaultTool = "v4l2-ctl"

// Console messages
const (
	MsgScanning    = "Scanning hardware indices..."
	MsgRawOutput   = "Raw v4l2-ctl output:"
	MsgToolMissing = "Error: v4l2-ctl not found. Run 'sudo apt install v4l-utils' first."
)

var videoNode = regexp.MustCompile(`/dev/video(\d+)`)

// Device is a named capture device and its first video node index
type Device struct {
	Name  string
	Index int
}

// Mapping holds devices in discovery order, one per name
type Mapping []Device

// Index returns the index recorded for name
func (m Mapping) Index(name string) (int, bool) {
	for _, d := range m {
		if d.Name == name {
			return d.Index, true
		}
	}
	return 0, false
}

// Map returns the mapping as a name to index map
func (m Mapping) Map() map[string]int {
	out := make(map[string]int, len(m))
	for _, d := range m {
		out[d.Name] = d.Index
	}
	return out
}

func (m Mapping) set(name string, index int) Mapping {
	for i := range m {
		if m[i].Name == name {
			m[i].Index = index
			return m
		}
	}
	return append(m, Device{Name: name, Index: index})
}

// ParseDevices parses "v4l2-ctl --list-devices" output. Blocks are separated
// by a blank line; the first line of a block names the device and the first
// /dev/videoN node in it gives the index. Blocks without a video node are
// ignored and a repeated name keeps its position but takes the later index.
func ParseDevices(output string) Mapping {
	mapping := Mapping{}
	for _, block := range strings.Split(output, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		name := strings.TrimSpace(lines[0])
		match := videoNode.FindStringSubmatch(block)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		mapping = mapping.set(name, index)
	}
	return mapping
}

// Scanner runs the V4L2 listing tool
type Scanner struct {
	Runner runner.Runner
	Out    io.Writer
	// Tool defaults to v4l2-ctl
	Tool string
}

// Scan lists devices. A missing tool is reported on Out and yields an empty
// mapping; a non-zero exit still parses whatever was printed.
func (s *Scanner) Scan(ctx context.Context) (Mapping, error) {
	logger := logging.GetLogger("camera")
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	tool := s.Tool
	if tool == "" {
		tool = DefaultTool
	}

	_, _ = fmt.Fprintln(out, MsgScanning)
	res, err := s.Runner.Run(ctx, runner.Command{
		Name:  tool,
		Args:  []string{"--list-devices"},
		Quiet: true,
	})
	if err != nil {
		switch errors.GetErrorCode(err) {
		case errors.ErrCommandNotFound:
			_, _ = fmt.Fprintln(out, MsgToolMissing)
			return Mapping{}, nil
		case errors.ErrCommandFailed:
			logger.Warn().Err(err).Msg("v4l2-ctl exited with an error, parsing its output anyway")
		default:
			return Mapping{}, errors.Wrap(err, errors.ErrDeviceScan, "failed to list video devices")
		}
	}

	_, _ = fmt.Fprintln(out, MsgRawOutput)
	_, _ = fmt.Fprintln(out, res.Stdout)

	mapping := ParseDevices(res.Stdout)
	logger.Info().Int("devices", len(mapping)).Msg("Video devices scanned")
	return mapping, nil
}

// Scan lists devices with the default tool
func Scan(ctx context.Context, r runner.Runner, out io.Writer) (Mapping, error) {
	return (&Scanner{Runner: r, Out: out}).Scan(ctx)
}

// LeRobotIndices finds the top and wrist camera indices. A device matching
// the top keyword is never considered for the wrist; when several devices
// match, the last one wins. Empty keywords fall back to the defaults.
func LeRobotIndices(mapping Mapping, topKeyword, wristKeyword string) (top, wrist int, err error) {
	if topKeyword == "" {
		topKeyword = DefaultTopKeyword
	}
	if wristKeyword == "" {
		wristKeyword = DefaultWristKeyword
	}

	top, wrist = -1, -1
	for _, d := range mapping {
		switch {
		case strings.Contains(d.Name, topKeyword):
			top = d.Index
		case strings.Contains(d.Name, wristKeyword):
			wrist = d.Index
		}
	}

	var missing []string
	if top < 0 {
		missing = append(missing, fmt.Sprintf("top (%q)", topKeyword))
	}
	if wrist < 0 {
		missing = append(missing, fmt.Sprintf("wrist (%q)", wristKeyword))
	}
	if len(missing) > 0 {
		return top, wrist, errors.Newf(errors.ErrCameraNotFound, "camera not found: %s", strings.Join(missing, ", ")).
			WithDetail("devices", len(mapping))
	}
	return top, wrist, nil
}
