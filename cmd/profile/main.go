// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build profile

// Command profile runs performance profiling on the core ciphertext
// operations.
//
// Usage:
//
//	go build -tags profile -o profile ./cmd/profile
//	./profile -cpu=cpu.prof -mem=mem.prof -iterations=1000
//
// Analyze profiles:
//
//	go tool pprof -http=:8080 cpu.prof
//	go tool pprof -http=:8081 mem.prof
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/luxfi/edgefhe"
)

var (
	cpuProfile = flag.String("cpu", "", "write cpu profile to file")
	memProfile = flag.String("mem", "", "write memory profile to file")
	iterations = flag.Int("iterations", 100, "number of iterations for each operation")
	operation  = flag.String("op", "all", "operation to profile: all, keygen, encrypt, planner, compact, combine")
	seed       = flag.String("seed", "", "derive a reproducible key pair from this seed instead of a fresh CSPRNG key")
)

// genKeyPair returns a fresh key pair, or a reproducible one derived from
// -seed when set, so profiling runs can be repeated and compared.
func genKeyPair(kg *fhe.KeyGenerator) (*fhe.SecretKey, *fhe.PublicKey) {
	if *seed == "" {
		return kg.GenKeyPair()
	}
	sk := kg.GenSecretKeyFromSeed([]byte(*seed))
	return sk, kg.GenPublicKey(sk)
}

func main() {
	flag.Parse()

	config := fhe.ProfileConfig{
		CPUProfile: *cpuProfile,
		MemProfile: *memProfile,
	}

	profiler := fhe.NewProfiler(config)
	if err := profiler.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start profiler: %v\n", err)
		os.Exit(1)
	}
	defer profiler.Stop()

	fmt.Printf("Running %d iterations of '%s'\n", *iterations, *operation)
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))

	switch *operation {
	case "all":
		profileAll()
	case "keygen":
		profileKeyGen()
	case "encrypt":
		profileEncrypt()
	case "planner":
		profilePlanner()
	case "compact":
		profileCompact()
	case "combine":
		profileCombine()
	default:
		fmt.Fprintf(os.Stderr, "Unknown operation: %s\n", *operation)
		os.Exit(1)
	}

	fhe.PrintMemStats()
}

func profileAll() {
	profileKeyGen()
	profileEncrypt()
	profilePlanner()
	profileCompact()
	profileCombine()
}

func profileKeyGen() {
	fmt.Println("\n=== Key Generation ===")

	prm, err := fhe.NewParams(fhe.Standard)
	if err != nil {
		panic(err)
	}
	kg := fhe.NewKeyGenerator(prm)

	timer := fhe.NewTimer("SecretKey generation")
	for i := 0; i < *iterations; i++ {
		kg.GenSecretKey()
	}
	d := timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))

	sk := kg.GenSecretKey()
	timer = fhe.NewTimer("PublicKey generation")
	for i := 0; i < *iterations; i++ {
		kg.GenPublicKey(sk)
	}
	d = timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))
}

func profileEncrypt() {
	fmt.Println("\n=== Encryption ===")

	prm, err := fhe.NewParams(fhe.Standard)
	if err != nil {
		panic(err)
	}
	kg := fhe.NewKeyGenerator(prm)
	sk, pk := genKeyPair(kg)

	fhe.TimeEncFpDepth(pk, sk, fhe.FpFromU64(uint64(*iterations)), 0)
	fhe.TimeEncFpDepth(pk, sk, fhe.FpFromU64(uint64(*iterations)), 4)

	timer := fhe.NewTimer("EncValue")
	for i := 0; i < *iterations; i++ {
		fhe.EncValue(pk, sk, uint64(i))
	}
	d := timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))

	timer = fhe.NewTimer("EncZeroDepth")
	for i := 0; i < *iterations; i++ {
		fhe.EncZeroDepth(pk, sk, 4)
	}
	d = timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))
}

func profilePlanner() {
	fmt.Println("\n=== Noise Planner ===")

	prm, err := fhe.NewParams(fhe.Deep)
	if err != nil {
		panic(err)
	}

	timer := fhe.NewTimer("PlanNoise")
	for i := 0; i < *iterations; i++ {
		fhe.PlanNoise(prm, int32(i%16))
	}
	d := timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))
}

func profileCompact() {
	fmt.Println("\n=== Compaction ===")

	prm, err := fhe.NewParams(fhe.Standard)
	if err != nil {
		panic(err)
	}
	kg := fhe.NewKeyGenerator(prm)
	sk, pk := genKeyPair(kg)

	sample := fhe.EncValue(pk, sk, uint64(*iterations))
	fhe.TimeCompactEdges(pk, sample)

	timer := fhe.NewTimer("CompactEdges")
	for i := 0; i < *iterations; i++ {
		ct := fhe.EncValue(pk, sk, uint64(i))
		fhe.CompactEdges(pk, ct)
	}
	d := timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))

	timer = fhe.NewTimer("CompactLayers")
	for i := 0; i < *iterations; i++ {
		ct := fhe.EncValue(pk, sk, uint64(i))
		fhe.CompactLayers(ct)
	}
	d = timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))
}

func profileCombine() {
	fmt.Println("\n=== Combination ===")

	prm, err := fhe.NewParams(fhe.Standard)
	if err != nil {
		panic(err)
	}
	kg := fhe.NewKeyGenerator(prm)
	sk, pk := genKeyPair(kg)

	sampleA := fhe.EncValue(pk, sk, 1)
	sampleB := fhe.EncValue(pk, sk, 2)
	fhe.TimeCombineCiphers(pk, sampleA, sampleB)

	timer := fhe.NewTimer("CombineCiphers")
	for i := 0; i < *iterations; i++ {
		a := fhe.EncValue(pk, sk, uint64(i))
		b := fhe.EncValue(pk, sk, uint64(i+1))
		fhe.CombineCiphers(pk, a, b)
	}
	d := timer.Stop()
	fmt.Printf("  Average: %v/op\n", d/time.Duration(*iterations))
}
