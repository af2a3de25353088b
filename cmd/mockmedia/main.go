// Command mockmedia is a stand-in for the external image store, meant
// for local development and the end-to-end suite. It accepts raw image
// uploads, keeps them in memory and serves them back under /images/.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type store struct {
	mu     sync.RWMutex
	images map[string][]byte
}

func main() {
	port := flag.String("port", "9090", "port to listen on")
	flag.Parse()

	s := &store{images: make(map[string][]byte)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.upload)
	mux.HandleFunc("GET /images/{id}", s.serve)

	address := ":" + *port
	fmt.Printf("Mock media store listening on %s\n", address)
	if err := http.ListenAndServe(address, mux); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

func (s *store) upload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
	if err != nil || len(data) == 0 {
		http.Error(w, "empty body", http.StatusBadRequest)
		return
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		http.Error(w, "not an image", http.StatusUnsupportedMediaType)
		return
	}

	id := uuid.New().String() + mtype.Extension()
	s.mu.Lock()
	s.images[id] = data
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"url": fmt.Sprintf("http://%s/images/%s", r.Host, id),
	})
}

func (s *store) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data, ok := s.images[r.PathValue("id")]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	_, _ = w.Write(data)
}
