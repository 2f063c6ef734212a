// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// MarshalBinary serializes an Fp element to its 16-byte encoding.
func (a Fp) MarshalBinary() ([]byte, error) {
	b := a.Bytes()
	return b[:], nil
}

// UnmarshalBinary decodes an Fp element from its 16-byte encoding.
func (a *Fp) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("fhe: Fp encoding must be 16 bytes, got %d", len(data))
	}
	var raw [16]byte
	copy(raw[:], data)
	*a = FpFromBytes(raw)
	return nil
}

func writeBitVec(w io.Writer, v BitVec) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(v.nbits)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, v.words)
}

func readBitVec(r io.Reader) (BitVec, error) {
	var nbits uint32
	if err := binary.Read(r, binary.LittleEndian, &nbits); err != nil {
		return BitVec{}, err
	}
	v := NewBitVec(int(nbits))
	if err := binary.Read(r, binary.LittleEndian, v.words); err != nil {
		return BitVec{}, err
	}
	return v, nil
}

func writeEdge(w io.Writer, e Edge) error {
	fields := []any{e.LayerID, e.Idx, e.Sign}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	wb, _ := e.W.MarshalBinary()
	if _, err := w.Write(wb); err != nil {
		return err
	}
	return writeBitVec(w, e.S)
}

func readEdge(r io.Reader) (Edge, error) {
	var e Edge
	if err := binary.Read(r, binary.LittleEndian, &e.LayerID); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.Idx); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.Sign); err != nil {
		return e, err
	}
	wb := make([]byte, 16)
	if _, err := io.ReadFull(r, wb); err != nil {
		return e, err
	}
	if err := e.W.UnmarshalBinary(wb); err != nil {
		return e, err
	}
	sv, err := readBitVec(r)
	if err != nil {
		return e, err
	}
	e.S = sv
	return e, nil
}

func writeLayer(w io.Writer, l Layer) error {
	fields := []any{l.Kind, l.Seed.Nonce.Lo, l.Seed.Nonce.Hi, l.Seed.ZTag, l.Pa, l.Pb}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

func readLayer(r io.Reader) (Layer, error) {
	var l Layer
	fields := []any{&l.Kind, &l.Seed.Nonce.Lo, &l.Seed.Nonce.Hi, &l.Seed.ZTag, &l.Pa, &l.Pb}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return l, err
		}
	}
	return l, nil
}

// MarshalBinary serializes a Cipher to binary format, using a
// substructure-at-a-time, length-prefixed style throughout.
func (c *Cipher) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(c.L))); err != nil {
		return nil, fmt.Errorf("write layer count: %w", err)
	}
	for _, l := range c.L {
		if err := writeLayer(&buf, l); err != nil {
			return nil, fmt.Errorf("write layer: %w", err)
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(c.E))); err != nil {
		return nil, fmt.Errorf("write edge count: %w", err)
	}
	for _, e := range c.E {
		if err := writeEdge(&buf, e); err != nil {
			return nil, fmt.Errorf("write edge: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary deserializes a Cipher from binary format.
func (c *Cipher) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var nLayers uint32
	if err := binary.Read(r, binary.LittleEndian, &nLayers); err != nil {
		return fmt.Errorf("read layer count: %w", err)
	}
	layers := make([]Layer, nLayers)
	for i := range layers {
		l, err := readLayer(r)
		if err != nil {
			return fmt.Errorf("read layer %d: %w", i, err)
		}
		layers[i] = l
	}

	var nEdges uint32
	if err := binary.Read(r, binary.LittleEndian, &nEdges); err != nil {
		return fmt.Errorf("read edge count: %w", err)
	}
	edges := make([]Edge, nEdges)
	for i := range edges {
		e, err := readEdge(r)
		if err != nil {
			return fmt.Errorf("read edge %d: %w", i, err)
		}
		edges[i] = e
	}

	c.L = layers
	c.E = edges
	return nil
}
