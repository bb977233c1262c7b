package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/chromedp/chromedp"
)

// Snapshot renders the page for the given scene in a headless browser and
// returns a PNG screenshot of the chart.
func Snapshot(ctx context.Context, scene Scene) ([]byte, error) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := WritePage(w, scene); err != nil {
			log.Println("failed to execute template:", err)
		}
	}))
	defer ts.Close()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	ctx, cancel = chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(scene.Width)+64, int64(scene.Height)+128),
		chromedp.Navigate(ts.URL),
		chromedp.WaitVisible("#temp-chart", chromedp.ByID),
		chromedp.Screenshot("#temp-chart", &buf, chromedp.ByID),
	); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	return buf, nil
}
