package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/uwwint/GC-5016/pkg/compress"
	"github.com/uwwint/GC-5016/pkg/logging"
	"github.com/uwwint/GC-5016/pkg/rgb0"
)

const version = "0.4.0"

var (
	maxFrames   int
	dumpPort    int
	dumpOut     string
	verify      bool
	jsonOut     bool
	logLevel    string
	versionFlag bool
	rootCmd     *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "rgb0-inspect CAPTURE...",
		Short: "Summarize RGB0 captures",
		Long:  `Summarize RGB0 captures`,
		Args:  cobra.MinimumNArgs(1),
		Run:   inspectCaptures,
	}

	rootCmd.Flags().IntVar(&maxFrames, "max-frames", 0, "Read at most N frames regardless of the header count")
	rootCmd.Flags().IntVar(&dumpPort, "dump-port", -1, "Write one port's frame stream to --out instead of summarizing")
	rootCmd.Flags().StringVar(&dumpOut, "out", "", "Output path for --dump-port")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Check structural invariants and report")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit a JSON summary instead of text")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("rgb0-inspect %s\n", version)
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inspectCaptures(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("rgb0-inspect %s\n", version)
		return
	}

	logger := logging.NewLogger("rgb0-inspect", logging.Level(logLevel), nil)

	failed := false
	printed := 0
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			fmt.Printf("%s: missing or not a file, skipping\n", path)
			continue
		}

		if printed > 0 && !jsonOut {
			fmt.Println()
		}
		printed++

		if err := inspectOne(path, logger); err != nil {
			logger.Error("❌ Failed to read capture", "path", path, "error", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func inspectOne(path string, logger hclog.Logger) error {
	codec, err := sniffCodec(path)
	if err != nil {
		return err
	}

	file, err := rgb0.ReadFileWithOptions(path, rgb0.DecodeOptions{
		MaxFrames: maxFrames,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if dumpPort >= 0 {
		return dumpPortStream(file, path, dumpPort, dumpOut)
	}
	if jsonOut {
		return printJSON(path, codec, file)
	}

	printSummary(path, codec, file)

	if verify {
		if err := file.Header.Validate(); err != nil {
			fmt.Printf("  verify: ✗ %v\n", err)
			return err
		}
		fmt.Println("  verify: ✓ structure valid")
	}
	return nil
}

// sniffCodec peeks at the file so the summary can name the archive codec;
// decoding itself unwraps it independently.
func sniffCodec(path string) (compress.Codec, error) {
	f, err := os.Open(path)
	if err != nil {
		return compress.None, err
	}
	defer f.Close()

	prefix := make([]byte, 4)
	n, err := io.ReadFull(f, prefix)
	if err != nil && n == 0 {
		return compress.None, nil
	}
	return compress.Detect(prefix[:n]), nil
}

func printSummary(path string, codec compress.Codec, file *rgb0.File) {
	h := file.Header

	claim := ""
	if h.FrameCount != 0 {
		claim = fmt.Sprintf(" (header claims %d)", h.FrameCount)
	}
	fmt.Printf("%s: frame_size=%d bytes, frames=%d%s\n",
		filepath.Base(path), h.FrameSize, len(file.Frames), claim)
	if codec != compress.None {
		fmt.Printf("  compression: %s\n", codec)
	}
	fmt.Printf("  gamma sample: %v\n", h.Gamma[:4])
	fmt.Printf("  unique frames: %d/%d\n", file.UniqueFrames(), len(file.Frames))

	offsets := h.PortOffsets()
	for i := range h.Ports {
		p := &h.Ports[i]
		fmt.Printf("    Port %d: len=%d, mode=0x%02x, flags=0x%04x, loop=%v, offset=%d\n",
			p.Index, p.Length, p.Mode, p.Flags, p.LoopFlag(), offsets[p.Index])
	}

	if len(file.Frames) > 0 {
		preview := file.Frames[0]
		if len(preview) > 16 {
			preview = preview[:16]
		}
		fmt.Printf("  first frame preview (%d bytes): %x\n", len(preview), preview)
	}
}

type portSummary struct {
	Index  uint16 `json:"index"`
	Length uint16 `json:"length"`
	Mode   string `json:"mode"`
	Flags  string `json:"flags"`
	Loop   bool   `json:"loop"`
	Offset int    `json:"offset"`
}

type captureSummary struct {
	Path         string        `json:"path"`
	Compression  string        `json:"compression"`
	FrameSize    uint32        `json:"frame_size"`
	Frames       int           `json:"frames"`
	HeaderFrames uint16        `json:"header_frames"`
	PortCount    uint16        `json:"port_count"`
	Channels     uint8         `json:"channels"`
	UniqueFrames int           `json:"unique_frames"`
	GammaSample  []uint16      `json:"gamma_sample"`
	Ports        []portSummary `json:"ports"`
}

func printJSON(path string, codec compress.Codec, file *rgb0.File) error {
	h := file.Header
	offsets := h.PortOffsets()

	out := captureSummary{
		Path:         path,
		Compression:  codec.String(),
		FrameSize:    h.FrameSize,
		Frames:       len(file.Frames),
		HeaderFrames: h.FrameCount,
		PortCount:    h.PortCount,
		Channels:     h.Channels,
		UniqueFrames: file.UniqueFrames(),
		GammaSample:  h.Gamma[:4],
		Ports:        make([]portSummary, 0, len(h.Ports)),
	}
	for i := range h.Ports {
		p := &h.Ports[i]
		out.Ports = append(out.Ports, portSummary{
			Index:  p.Index,
			Length: p.Length,
			Mode:   fmt.Sprintf("0x%02x", p.Mode),
			Flags:  fmt.Sprintf("0x%04x", p.Flags),
			Loop:   p.LoopFlag(),
			Offset: offsets[p.Index],
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func dumpPortStream(file *rgb0.File, path string, port int, outPath string) error {
	if outPath == "" {
		return fmt.Errorf("--dump-port requires --out")
	}
	if port > 0xFFFF {
		return fmt.Errorf("--dump-port %d exceeds the 16-bit port index", port)
	}

	blocks, err := file.PortFrames(uint16(port))
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	for _, block := range blocks {
		if _, err := out.Write(block); err != nil {
			out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d frames of port %d from %s to %s\n",
		len(blocks), port, filepath.Base(path), outPath)
	return nil
}
