package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// DevServer exposes a Controller over HTTP. Gestures from the page arrive as
// POST requests and are applied one at a time.
type DevServer struct {
	mu         sync.Mutex
	controller *Controller
}

func NewDevServer(controller *Controller) *DevServer {
	return &DevServer{controller: controller}
}

// Handler returns the routes of the dev server.
func (s *DevServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.page)
	mux.HandleFunc("GET /chart.svg", s.svg)
	mux.HandleFunc("GET /view", s.view)
	mux.HandleFunc("POST /subject", s.selectSubject)
	mux.HandleFunc("POST /zoom", s.zoom)
	mux.HandleFunc("POST /reset", s.reset)
	mux.HandleFunc("GET /export/echarts", s.exportECharts)
	mux.HandleFunc("GET /export/png", s.exportPNG)
	return loggingMiddleware(mux)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("Endpoint: %s, Method: %s, took %s", r.URL.Path, r.Method, time.Since(start))
	})
}

// scene runs fn, if any, and returns the scene it leaves behind, all under
// the lock so that gestures never interleave.
func (s *DevServer) scene(fn func(*Controller) error) (Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		if err := fn(s.controller); err != nil {
			return Scene{}, err
		}
	}
	return s.controller.Scene(), nil
}

func (s *DevServer) page(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := WritePage(w, scene); err != nil {
		log.Println("failed to execute template:", err)
	}
}

func (s *DevServer) svg(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(nil)
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := WriteSVG(w, scene); err != nil {
		log.Println("failed to execute template:", err)
	}
}

func (s *DevServer) writeFragment(w http.ResponseWriter, scene Scene) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := WriteSVG(w, scene); err != nil {
		log.Println("failed to execute template:", err)
	}
}

func (s *DevServer) selectSubject(w http.ResponseWriter, r *http.Request) {
	subject := r.FormValue("subject")
	scene, err := s.scene(func(c *Controller) error {
		return c.SelectSubject(subject)
	})
	if errors.Is(err, ErrInvalidSelection) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeFragment(w, scene)
}

var errBadPixel = errors.New("x0 and x1 must be numbers")

func (s *DevServer) zoom(w http.ResponseWriter, r *http.Request) {
	x0, err0 := strconv.ParseFloat(r.FormValue("x0"), 64)
	x1, err1 := strconv.ParseFloat(r.FormValue("x1"), 64)
	if err := errors.Join(err0, err1); err != nil {
		http.Error(w, errBadPixel.Error(), http.StatusBadRequest)
		return
	}

	scene, _ := s.scene(func(c *Controller) error {
		if !c.ApplyZoom(x0, x1) {
			log.Printf("ignoring empty zoom [%g, %g]", x0, x1)
		}
		return nil
	})
	s.writeFragment(w, scene)
}

func (s *DevServer) reset(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(func(c *Controller) error {
		c.ResetZoom()
		return nil
	})
	s.writeFragment(w, scene)
}

type viewResponse struct {
	Subject  string       `json:"subject"`
	Subjects []string     `json:"subjects"`
	Zoomed   bool         `json:"zoomed"`
	Domain   [2]float64   `json:"domain"`
	Points   int          `json:"points"`
	Nights   [][2]float64 `json:"nights"`
}

func (s *DevServer) view(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(nil)
	resp := viewResponse{
		Subject:  scene.State.Subject,
		Subjects: scene.Subjects,
		Zoomed:   scene.State.Zoomed(),
		Domain:   [2]float64{scene.XDomain.Lo, scene.XDomain.Hi},
		Points:   len(scene.Markers),
		Nights:   [][2]float64{},
	}
	for _, b := range scene.Bands {
		resp.Nights = append(resp.Nights, [2]float64{b.Lo, b.Hi})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("failed to encode view:", err)
	}
}

func (s *DevServer) exportECharts(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ExportECharts(w, scene); err != nil {
		log.Println("failed to render echarts export:", err)
	}
}

func (s *DevServer) exportPNG(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.scene(nil)
	var buf bytes.Buffer
	if err := ExportPNG(&buf, scene); err != nil {
		http.Error(w, "failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// Serve runs the dev server on addr until ctx is cancelled.
func (s *DevServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
