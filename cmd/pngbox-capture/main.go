package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/rs/zerolog"

	"pngbox/internal/pngbox/chunk"
	"pngbox/internal/pngbox/container"
)

// Config holds capture configuration
type Config struct {
	OutDir   string
	Interval time.Duration
	Display  int
	UserID   string
}

func main() {
	// Parse flags
	outDir := flag.String("out", ".", "Output directory for captures")
	interval := flag.Duration("interval", 0, "Capture interval (0 captures once)")
	display := flag.Int("display", 0, "Display number to capture")
	userID := flag.String("user", getEnv("USER", "unknown"), "User identifier")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "pngbox-capture").Logger()

	config := Config{
		OutDir:   *outDir,
		Interval: *interval,
		Display:  *display,
		UserID:   *userID,
	}

	// Check display count
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		log.Fatal().Msg("no active displays found")
	}
	if config.Display >= n {
		log.Fatal().Int("display", config.Display).Int("available", n).Msg("display not available")
	}

	if config.Interval == 0 {
		if err := capture(config); err != nil {
			log.Fatal().Err(err).Msg("capture failed")
		}
		return
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	log.Info().Dur("interval", config.Interval).Str("user", config.UserID).Int("display", config.Display).Msg("pngbox-capture started")

	// Capture immediately on start
	if err := capture(config); err != nil {
		log.Error().Err(err).Msg("initial capture failed")
	}

	for {
		select {
		case <-ticker.C:
			if err := capture(config); err != nil {
				log.Error().Err(err).Msg("capture failed")
			}
		case <-stop:
			log.Info().Msg("shutting down")
			return
		}
	}
}

// capture grabs one screenshot, reopens the encoded image as a chunk
// container and tags it with a metadata chunk describing the capture.
func capture(config Config) error {
	bounds := screenshot.GetDisplayBounds(config.Display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	// Pixel encoding is the image layer's job; the container codec takes
	// over from the encoded bytes.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	c, err := container.Decode(buf.Bytes(), container.Options{})
	if err != nil {
		return fmt.Errorf("reading encoded capture: %w", err)
	}

	now := time.Now().UTC()
	ch, err := c.Add(chunk.TypeMetadata)
	if err != nil {
		return fmt.Errorf("adding metadata chunk: %w", err)
	}
	meta := ch.(*chunk.Metadata)
	if err := meta.SetDataType("scrn"); err != nil {
		return err
	}
	if err := meta.SetVersion(1, 0); err != nil {
		return err
	}
	meta.Content = map[string]interface{}{
		"user":       config.UserID,
		"display":    config.Display,
		"capturedAt": now.Format(time.RFC3339),
		"bounds": map[string]int{
			"width":  bounds.Dx(),
			"height": bounds.Dy(),
		},
	}

	name := fmt.Sprintf("capture-%s-%d.png", config.UserID, now.UnixNano())
	path := filepath.Join(config.OutDir, name)
	if err := c.Save(path); err != nil {
		return fmt.Errorf("saving capture: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
