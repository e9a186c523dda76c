package scene

import (
	"fmt"

	"github.com/uwwint/GC-5016/pkg/rgb0"
)

// patternBuilder fills one frame. frameIdx counts within the spec's repeat
// run, so time-varying patterns know where they are.
type patternBuilder func(spec FrameSpec, frameIdx, repeat, ports, leds int) ([][]rgb0.RGB, error)

var patternBuilders = map[string]patternBuilder{
	"solid":    buildSolid,
	"blackout": buildBlackout,
	"fade":     buildFade,
	"gradient": buildGradient,
	"chase":    buildChase,
}

// validateFields parses the color fields the spec's pattern will consume, so
// a bad manifest fails at load rather than mid-synthesis.
func (s *FrameSpec) validateFields() error {
	switch s.Pattern {
	case "solid", "chase":
		if _, err := ParseColor(s.Color); err != nil {
			return err
		}
	case "fade", "gradient":
		if _, err := ParseColor(s.From); err != nil {
			return err
		}
		if _, err := ParseColor(s.To); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize produces every frame the manifest describes, in spec order,
// shaped for the capture writer's validation.
func (m *Manifest) Synthesize() ([][][]rgb0.RGB, error) {
	var frames [][][]rgb0.RGB
	for i, spec := range m.Frames {
		build, ok := patternBuilders[spec.Pattern]
		if !ok {
			return nil, fmt.Errorf("frame spec %d: unknown pattern %q", i, spec.Pattern)
		}
		for k := 0; k < spec.Repeat; k++ {
			frame, err := build(spec, k, spec.Repeat, m.PortCount, m.LEDsPerPort)
			if err != nil {
				return nil, fmt.Errorf("frame spec %d (%s): %w", i, spec.Pattern, err)
			}
			frames = append(frames, frame)
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("manifest produced no frames")
	}
	return frames, nil
}

func uniformFrame(ports, leds int, c rgb0.RGB) [][]rgb0.RGB {
	frame := make([][]rgb0.RGB, ports)
	for p := range frame {
		row := make([]rgb0.RGB, leds)
		for l := range row {
			row[l] = c
		}
		frame[p] = row
	}
	return frame
}

func buildSolid(spec FrameSpec, _, _, ports, leds int) ([][]rgb0.RGB, error) {
	c, err := ParseColor(spec.Color)
	if err != nil {
		return nil, err
	}
	return uniformFrame(ports, leds, c), nil
}

func buildBlackout(_ FrameSpec, _, _, ports, leds int) ([][]rgb0.RGB, error) {
	return uniformFrame(ports, leds, rgb0.RGB{}), nil
}

// buildFade interpolates the whole rig from one color to another across the
// spec's repeat run, landing exactly on the target in the last frame.
func buildFade(spec FrameSpec, frameIdx, repeat, ports, leds int) ([][]rgb0.RGB, error) {
	from, err := ParseColor(spec.From)
	if err != nil {
		return nil, err
	}
	to, err := ParseColor(spec.To)
	if err != nil {
		return nil, err
	}
	return uniformFrame(ports, leds, lerpColor(from, to, frameIdx, repeat-1)), nil
}

// buildGradient paints a spatial ramp along every port.
func buildGradient(spec FrameSpec, _, _, ports, leds int) ([][]rgb0.RGB, error) {
	from, err := ParseColor(spec.From)
	if err != nil {
		return nil, err
	}
	to, err := ParseColor(spec.To)
	if err != nil {
		return nil, err
	}

	frame := make([][]rgb0.RGB, ports)
	for p := range frame {
		row := make([]rgb0.RGB, leds)
		for l := range row {
			row[l] = lerpColor(from, to, l, leds-1)
		}
		frame[p] = row
	}
	return frame, nil
}

// buildChase runs a lit block one LED forward per frame, wrapping at the
// end of every port.
func buildChase(spec FrameSpec, frameIdx, _, ports, leds int) ([][]rgb0.RGB, error) {
	c, err := ParseColor(spec.Color)
	if err != nil {
		return nil, err
	}
	width := spec.Width
	if width <= 0 {
		width = 1
	}

	frame := make([][]rgb0.RGB, ports)
	for p := range frame {
		row := make([]rgb0.RGB, leds)
		for w := 0; w < width; w++ {
			row[(frameIdx+w)%leds] = c
		}
		frame[p] = row
	}
	return frame, nil
}

// lerpColor interpolates channel-wise from one color to another; step runs
// 0..steps inclusive, and steps <= 0 pins the start color.
func lerpColor(from, to rgb0.RGB, step, steps int) rgb0.RGB {
	if steps <= 0 {
		return from
	}
	if step > steps {
		step = steps
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(int(a) + (int(b)-int(a))*step/steps)
	}
	return rgb0.RGB{R: lerp(from.R, to.R), G: lerp(from.G, to.G), B: lerp(from.B, to.B)}
}
