package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v2"

	"hibf-hashing/internal/pipeline"
	"hibf-hashing/pkg/api"
)

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" || FormatKafka != "kafka" {
		t.Fatalf("output format constants changed")
	}
	if TextHeader != "The following hits were found:" {
		t.Fatalf("TextHeader changed: %q", TextHeader)
	}
}

func TestFormatHitLine(t *testing.T) {
	cases := map[string]api.HitV1{
		"r1: [0,3,7]": {ID: "r1", Bins: []int{0, 3, 7}},
		"r2: [1]":     {ID: "r2", Bins: []int{1}},
		"r3: []":      {ID: "r3", Bins: []int{}},
	}
	for want, h := range cases {
		if got := FormatHitLine(h); got != want {
			t.Errorf("got %q want %q", got, want)
		}
	}
}

func TestToAPIHit(t *testing.T) {
	h := pipeline.Hit{ID: "q", Bins: []int{1, 2}, Count: 9, Threshold: 4, Err: nil}
	v := ToAPIHit(h, []string{"a.fa", "b.fa", "c.fa"})
	if v.ID != "q" || v.Fingerprints != 9 || v.Threshold != 4 {
		t.Fatalf("v = %+v", v)
	}
	if strings.Join(v.BinFiles, ",") != "b.fa,c.fa" {
		t.Fatalf("bin files = %v", v.BinFiles)
	}
	e := ToAPIHit(pipeline.Hit{ID: "x", Err: errors.New("too short")}, nil)
	if e.Error != "too short" || e.Bins == nil || e.BinFiles != nil {
		t.Fatalf("e = %+v", e)
	}
}

func TestStreamText(t *testing.T) {
	in := make(chan api.HitV1, 2)
	in <- api.HitV1{ID: "a", Bins: []int{0}}
	in <- api.HitV1{ID: "b", Bins: []int{}}
	close(in)
	var buf bytes.Buffer
	if err := StreamText(&buf, in); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a: [0]\nb: []\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestIndexInfoWriters(t *testing.T) {
	info := api.IndexInfoV1{
		FormatVersion: 1, BuildID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", CreatedAt: time.Unix(0, 0).UTC(),
		Mode: "syncmer", KmerSize: 15, WindowSize: 15, SmerSize: 11, Offset: 2,
		NumHashFunctions: 2, MaxFPR: 0.05, FilterBits: 1024, Bins: []string{"a.fa"},
	}
	var txt bytes.Buffer
	if err := WriteIndexText(&txt, info); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mode:           syncmer", "s-mer size:     11", "  [0] a.fa"} {
		if !strings.Contains(txt.String(), want) {
			t.Errorf("text missing %q:\n%s", want, txt.String())
		}
	}

	var y bytes.Buffer
	if err := WriteIndexYAML(&y, info); err != nil {
		t.Fatal(err)
	}
	var back map[string]interface{}
	if err := yaml.Unmarshal(y.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back["mode"] != "syncmer" || back["kmer_size"] != 15 {
		t.Fatalf("yaml = %v", back)
	}
}
