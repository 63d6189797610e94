// Command poster_host serves generated poster images for exercising the
// admin inlinePoster flow without reaching a real image host.
package main

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	posterWidth  = 400
	posterHeight = 600
)

func main() {
	// GET /posters/<seed>.png returns a gradient tinted by the seed.
	http.HandleFunc("/posters/", func(w http.ResponseWriter, r *http.Request) {
		seed := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/posters/"), ".png")

		var img image.Image
		switch seed {
		case "huge":
			// Noise does not compress, so this lands well above the 1MB poster cap.
			img = noise(1000, 1000)
		default:
			img = gradient(seed)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("[Poster Host] Write error: %v", err)
		}

		log.Printf("[Poster Host] %s %s - 200 OK (%d bytes)", r.Method, r.URL.Path, buf.Len())
	})

	// GET /page returns HTML, for the not-an-image path.
	http.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte("<html><body>not a poster</body></html>")); err != nil {
			log.Printf("[Poster Host] Write error: %v", err)
		}
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Poster Host] Health write error: %v", err)
		}
	})

	log.Println("Mock Poster Host running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func gradient(seed string) image.Image {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	tint := h.Sum32()

	img := image.NewRGBA(image.Rect(0, 0, posterWidth, posterHeight))
	for y := 0; y < posterHeight; y++ {
		shade := uint8(255 * y / posterHeight)
		c := color.RGBA{
			R: uint8(tint) ^ shade,
			G: uint8(tint>>8) ^ shade/2,
			B: uint8(tint >> 16),
			A: 255,
		}
		for x := 0; x < posterWidth; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func noise(w, h int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}
