package internal

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cli/browser"
)

// RunOptions selects what Run does once the chart is loaded.
type RunOptions struct {
	Dev     bool   // Keep a webserver running to interact with the chart.
	Fake    bool   // Use generated readings instead of the configured source.
	Open    bool   // Open the dev server in the default browser.
	Addr    string // Address of the dev server.
	Img     string // Where to save the rendered chart: .png, .svg or .html.
	Export  string // Where to save an export: .html (ECharts) or .png (static).
	Subject string // Subject to show instead of the first one.
}

func Run(ctx context.Context, config Config, run RunOptions) error {
	options := config.GetChartOptions()

	readings, err := func() ([]Reading, error) {
		if run.Fake {
			return NewFakeReadings(3, 4, 30, options.Cycle), nil
		}
		return LoadReadings(ctx, config.GetDataOptions())
	}()
	if err != nil {
		return err
	}
	log.Printf("loaded %d readings", len(readings))

	controller := NewController(options)
	if err := controller.Initialize(readings); err != nil {
		return err
	}

	// Missing annotations should not keep the chart from rendering.
	annotations, err := LoadAnnotations(ctx, config.GetAnnotationOptions(), AnnotationSpan(readings, options.Cycle))
	if err != nil {
		log.Println("failed to load annotations:", err)
	}
	controller.SetAnnotations(annotations)

	if run.Subject != "" {
		if err := controller.SelectSubject(run.Subject); err != nil {
			return err
		}
	}

	if run.Dev {
		return devServe(ctx, controller, run)
	}

	if run.Img != "" {
		if err := saveImage(ctx, controller.Scene(), run.Img); err != nil {
			return err
		}
	}
	if run.Export != "" {
		if err := saveExport(controller.Scene(), run.Export); err != nil {
			return err
		}
	}
	return nil
}

func devServe(ctx context.Context, controller *Controller, run RunOptions) error {
	server := NewDevServer(controller)

	url := "http://" + run.Addr
	if strings.HasPrefix(run.Addr, ":") {
		url = "http://localhost" + run.Addr
	}
	fmt.Printf("Server running on %s/\nPress Ctrl+C to stop\n", url)

	if run.Open {
		go func() {
			if err := browser.OpenURL(url + "/"); err != nil {
				log.Println("failed to open browser:", err)
			}
		}()
	}
	return server.Serve(ctx, run.Addr)
}

func saveImage(ctx context.Context, scene Scene, path string) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		png, err := Snapshot(ctx, scene)
		if err != nil {
			return err
		}
		buf.Write(png)
	case ".svg":
		if err := WriteSVG(&buf, scene); err != nil {
			return err
		}
	case ".html":
		if err := WritePage(&buf, scene); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
	return writeFile(path, buf.Bytes())
}

func saveExport(scene Scene, path string) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html":
		if err := ExportECharts(&buf, scene); err != nil {
			return err
		}
	case ".png":
		if err := ExportPNG(&buf, scene); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("wrote %s (%d bytes)", path, len(data))
	return nil
}
