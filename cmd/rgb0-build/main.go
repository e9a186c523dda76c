package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/uwwint/GC-5016/internal/scene"
	"github.com/uwwint/GC-5016/pkg/compress"
	"github.com/uwwint/GC-5016/pkg/logging"
	"github.com/uwwint/GC-5016/pkg/rgb0"
)

const version = "0.4.0"

var (
	manifestPath string
	outputDir    string
	runNumber    int
	compressName string
	logLevel     string
	versionFlag  bool
	rootCmd      *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "rgb0-build",
		Short: "Build RGB0 captures from scene manifests",
		Long:  `Build RGB0 captures from scene manifests`,
		Run:   buildScene,
	}

	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to scene manifest, JSON or YAML (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the capture file")
	rootCmd.Flags().IntVar(&runNumber, "run", 0, "Run number override (1-99)")
	rootCmd.Flags().StringVar(&compressName, "compress", "", "Compress the capture (gzip, bzip2, zstd)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	if err := rootCmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("rgb0-build %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildScene(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("rgb0-build %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return
	}

	logger := logging.NewLogger("rgb0-build", logging.LevelOr(logLevel, "info"), nil)

	logger.Info("💡💡💡 RGB0 capture builder starting 💡💡💡")

	manifest, err := scene.Load(manifestPath)
	if err != nil {
		logger.Error("❌ Failed to load manifest", "error", err)
		os.Exit(1)
	}
	logger.Info("📂 Manifest loaded", "name", manifest.Name, "specs", len(manifest.Frames))

	frames, err := manifest.Synthesize()
	if err != nil {
		logger.Error("❌ Failed to synthesize frames", "error", err)
		os.Exit(1)
	}
	logger.Info("✅ Frames synthesized", "frames", len(frames))

	opts, err := manifest.EncodeOptions()
	if err != nil {
		logger.Error("❌ Invalid descriptor fields", "error", err)
		os.Exit(1)
	}

	run := manifest.Run
	if runNumber != 0 {
		if runNumber < 1 || runNumber > 99 {
			logger.Error("❌ Run number outside 1-99", "run", runNumber)
			os.Exit(1)
		}
		run = runNumber
	}

	codec, err := compress.ParseCodec(compressName)
	if err != nil {
		logger.Error("❌ Unknown compression codec", "error", err)
		os.Exit(1)
	}

	path, err := writeCapture(frames, opts, run, codec, logger)
	if err != nil {
		logger.Error("❌ Failed to write capture", "error", err)
		os.Exit(1)
	}

	logger.Info("✍️ Capture written", "path", path, "frames", len(frames), "run", run)
	fmt.Println(path)
}

func writeCapture(frames [][][]rgb0.RGB, opts rgb0.EncodeOptions, run int, codec compress.Codec, logger hclog.Logger) (string, error) {
	if codec == compress.None {
		return rgb0.WriteScene(outputDir, run, frames, opts)
	}

	data, err := rgb0.Encode(frames, opts)
	if err != nil {
		return "", err
	}
	packed, err := compress.Compress(data, codec)
	if err != nil {
		return "", err
	}
	logger.Debug("📦 Compressed capture",
		"codec", codec,
		"raw", len(data),
		"packed", len(packed),
	)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	path := rgb0.ScenePath(outputDir, run) + codec.Ext()
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
