// Package scene loads build manifests and synthesizes the test-pattern
// frames the capture builder writes.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/uwwint/GC-5016/pkg/rgb0"
)

// FrameSpec is one pattern block in a manifest. Repeat expands it into that
// many consecutive frames.
type FrameSpec struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
	Width   int    `json:"width,omitempty" yaml:"width,omitempty"`
	Repeat  int    `json:"repeat,omitempty" yaml:"repeat,omitempty"`
}

// Manifest describes one scene build. Descriptor fields (mode, flags,
// loop_byte) are hex strings passed to the capture verbatim.
type Manifest struct {
	Name        string      `json:"name" yaml:"name"`
	Run         int         `json:"run,omitempty" yaml:"run,omitempty"`
	LEDsPerPort int         `json:"leds_per_port,omitempty" yaml:"leds_per_port,omitempty"`
	PortCount   int         `json:"port_count,omitempty" yaml:"port_count,omitempty"`
	Mode        string      `json:"mode,omitempty" yaml:"mode,omitempty"`
	Flags       string      `json:"flags,omitempty" yaml:"flags,omitempty"`
	LoopByte    string      `json:"loop_byte,omitempty" yaml:"loop_byte,omitempty"`
	Frames      []FrameSpec `json:"frames" yaml:"frames"`
}

// Load reads a manifest from path, picking the format by extension:
// .yaml/.yml parse as YAML, everything else as JSON. Defaults are applied
// and the result validated before it is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Run == 0 {
		m.Run = 1
	}
	if m.LEDsPerPort == 0 {
		m.LEDsPerPort = rgb0.DefaultLEDsPerPort
	}
	if m.PortCount == 0 {
		m.PortCount = rgb0.DefaultPortCount
	}
	for i := range m.Frames {
		if m.Frames[i].Repeat == 0 {
			m.Frames[i].Repeat = 1
		}
	}
}

// Validate checks the manifest before any frame is synthesized.
func (m *Manifest) Validate() error {
	if m.Run < 1 || m.Run > 99 {
		return fmt.Errorf("run number %d outside 1-99", m.Run)
	}
	if m.LEDsPerPort < 1 {
		return fmt.Errorf("leds_per_port %d must be positive", m.LEDsPerPort)
	}
	if m.LEDsPerPort*rgb0.BytesPerLED > 0xFFFF {
		return fmt.Errorf("leds_per_port %d exceeds the 16-bit port length", m.LEDsPerPort)
	}
	if m.PortCount < 1 {
		return fmt.Errorf("port_count %d must be positive", m.PortCount)
	}
	if m.PortCount > rgb0.MaxPortCount {
		return fmt.Errorf("port_count %d exceeds the format limit %d", m.PortCount, rgb0.MaxPortCount)
	}
	if len(m.Frames) == 0 {
		return fmt.Errorf("manifest has no frame specs")
	}
	for i, spec := range m.Frames {
		if _, ok := patternBuilders[spec.Pattern]; !ok {
			return fmt.Errorf("frame spec %d: unknown pattern %q", i, spec.Pattern)
		}
		if spec.Repeat < 0 {
			return fmt.Errorf("frame spec %d: negative repeat %d", i, spec.Repeat)
		}
		if err := spec.validateFields(); err != nil {
			return fmt.Errorf("frame spec %d: %w", i, err)
		}
	}

	if _, err := ParseHexByte(m.Mode, rgb0.DefaultMode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if _, err := ParseHexWord(m.Flags, rgb0.DefaultFlags); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	if _, err := ParseHexByte(m.LoopByte, rgb0.DefaultLoopByte); err != nil {
		return fmt.Errorf("loop_byte: %w", err)
	}
	return nil
}

// EncodeOptions resolves the manifest's descriptor fields into writer
// options, falling back to the GC-5016 profile defaults.
func (m *Manifest) EncodeOptions() (rgb0.EncodeOptions, error) {
	mode, err := ParseHexByte(m.Mode, rgb0.DefaultMode)
	if err != nil {
		return rgb0.EncodeOptions{}, fmt.Errorf("mode: %w", err)
	}
	flags, err := ParseHexWord(m.Flags, rgb0.DefaultFlags)
	if err != nil {
		return rgb0.EncodeOptions{}, fmt.Errorf("flags: %w", err)
	}
	loopByte, err := ParseHexByte(m.LoopByte, rgb0.DefaultLoopByte)
	if err != nil {
		return rgb0.EncodeOptions{}, fmt.Errorf("loop_byte: %w", err)
	}

	return rgb0.EncodeOptions{
		LEDsPerPort: m.LEDsPerPort,
		PortCount:   m.PortCount,
		Mode:        mode,
		Flags:       flags,
		LoopByte:    loopByte,
	}, nil
}
