package main

import (
	"testing"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		w, h    float64
		wantErr bool
	}{
		{"8x16", 8, 16, false},
		{"10X20", 10, 20, false},
		{"4.5x9", 4.5, 9, false},
		{"8", 0, 0, true},
		{"0x16", 0, 0, true},
		{"8x-1", 0, 0, true},
		{"axb", 0, 0, true},
	}

	for _, tt := range tests {
		w, h, err := parseCell(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCell(%q): expected error=%v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if !tt.wantErr && (w != tt.w || h != tt.h) {
			t.Errorf("parseCell(%q): expected %vx%v, got %vx%v", tt.in, tt.w, tt.h, w, h)
		}
	}
}

func TestCheckMargin(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"15", 15, false},
		{"0", 0, false},
		{"2.5", 2.5, false},
		{"-10", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"wide", 0, true},
	}

	for _, tt := range tests {
		got, err := checkMargin(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkMargin(%q): expected error=%v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("checkMargin(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("dir/scene.json", ".svg"); got != "dir/scene.svg" {
		t.Errorf("Expected dir/scene.svg, got %s", got)
	}
	if got := outputName("scene", ".png"); got != "scene.png" {
		t.Errorf("Expected scene.png, got %s", got)
	}
}

func TestToJSON(t *testing.T) {
	s := script.New("t")
	s.Nodes = []script.Node{
		{ID: "a", Type: script.TypeCommand},
		{ID: "b", Type: script.TypeCommand, Y: 300},
	}
	s.Connections = []script.Connection{{ID: "c1", From: "a", To: "b"}}
	plans, err := route.NewRouter(route.DefaultOptions()).PlanScript(s)
	if err != nil {
		t.Fatal(err)
	}

	out := toJSON(plans)
	if len(out) != 1 {
		t.Fatalf("Expected 1 route, got %d", len(out))
	}
	r := out[0]
	if r.Connection != "c1" || r.Strategy != "direct" || r.Fallback {
		t.Errorf("Unexpected route %+v", r)
	}
	if r.ControlPoints == nil || len(r.ControlPoints) != 0 {
		t.Errorf("Expected empty, non-nil control points, got %v", r.ControlPoints)
	}
	if r.Path != "M 56 56 L 56 294" {
		t.Errorf("Unexpected path %q", r.Path)
	}
}
