// Command fhe-server runs a synchronous HTTP service exposing encryption
// and combination directly against an in-process key pair.
//
// Run as a sidecar when a caller wants ciphertexts without a Redis queue:
//
//	fhe-server -addr :8448 -params standard
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/edgefhe"
)

func main() {
	var (
		addr     = flag.String("addr", ":8448", "HTTP server address")
		paramSet = flag.String("params", "standard", "parameter preset: compact, standard, deep")
	)
	flag.Parse()

	prm, err := paramsByName(*paramSet)
	if err != nil {
		log.Fatalf("bad params: %v", err)
	}

	kgen := fhe.NewKeyGenerator(prm)
	sk, pk := kgen.GenKeyPair()

	log.Printf("edgefhe server starting...")
	log.Printf("  Address: %s", *addr)
	log.Printf("  Params: %s", *paramSet)

	srv := &server{pk: pk, sk: sk}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("edgefhe server listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down edgefhe server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	fmt.Println("edgefhe server stopped")
}

func paramsByName(name string) (*fhe.Prm, error) {
	switch name {
	case "compact":
		return fhe.NewParams(fhe.Compact)
	case "standard":
		return fhe.NewParams(fhe.Standard)
	case "deep":
		return fhe.NewParams(fhe.Deep)
	default:
		return nil, fmt.Errorf("unknown parameter preset %q", name)
	}
}

type server struct {
	pk *fhe.PublicKey
	sk *fhe.SecretKey
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/encrypt", s.handleEncrypt)
	mux.HandleFunc("/combine", s.handleCombine)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type encryptRequest struct {
	Value     uint64 `json:"value"`
	Zero      bool   `json:"zero"`
	DepthHint int32  `json:"depth_hint"`
}

func (s *server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req encryptRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var ct *fhe.Cipher
	if req.Zero {
		ct = fhe.EncZeroDepth(s.pk, s.sk, req.DepthHint)
	} else {
		ct = fhe.EncValueDepth(s.pk, s.sk, req.Value, req.DepthHint)
	}

	s.writeCipher(w, ct)
}

func (s *server) handleCombine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		LHS []byte `json:"lhs"`
		RHS []byte `json:"rhs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lhs := new(fhe.Cipher)
	if err := lhs.UnmarshalBinary(req.LHS); err != nil {
		http.Error(w, fmt.Sprintf("unmarshal lhs: %v", err), http.StatusBadRequest)
		return
	}
	rhs := new(fhe.Cipher)
	if err := rhs.UnmarshalBinary(req.RHS); err != nil {
		http.Error(w, fmt.Sprintf("unmarshal rhs: %v", err), http.StatusBadRequest)
		return
	}

	out := fhe.CombineCiphers(s.pk, lhs, rhs)
	s.writeCipher(w, out)
}

func (s *server) writeCipher(w http.ResponseWriter, ct *fhe.Cipher) {
	data, err := ct.MarshalBinary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := struct {
		Ciphertext []byte  `json:"ciphertext"`
		Layers     int     `json:"layers"`
		Edges      int     `json:"edges"`
		Sigma      float64 `json:"sigma_density"`
	}{
		Ciphertext: data,
		Layers:     len(ct.L),
		Edges:      len(ct.E),
		Sigma:      fhe.SigmaDensity(s.pk, ct),
	}
	json.NewEncoder(w).Encode(resp)
}
