// Command duckyroute routes the connections of a saved DuckyScript canvas
// and renders the result.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/duckyflow/duckyflow/pkg/render"
	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
	"github.com/duckyflow/duckyflow/pkg/scriptfile"
)

const usage = `duckyroute - connection router for DuckyScript canvases

Usage:
  duckyroute <command> [options]

Commands:
  route      Print the chosen route of every connection
  svg        Render the canvas to SVG
  png        Render the canvas to PNG
  grid       Render the canvas as text
  validate   Validate a scene file
  info       Show scene and routing statistics

Common options:
  --margin N     Obstacle clearance (default 15)

Examples:
  duckyroute route scene.json
  duckyroute route scene.json --from node_a --to node_b --json
  duckyroute svg scene.json -o scene.svg --strategy
  duckyroute png scene.json -o scene.png --scale 3
  duckyroute grid scene.json --cell 8x16

Use "duckyroute <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "route":
		cmdRoute(args)
	case "svg":
		cmdSVG(args)
	case "png":
		cmdPNG(args)
	case "grid":
		cmdGrid(args)
	case "validate":
		cmdValidate(args)
	case "info":
		cmdInfo(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func wantsHelp(args []string) bool {
	return len(args) < 1 || args[0] == "-h" || args[0] == "--help"
}

func cmdRoute(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute route <scene.json> [--from ID --to ID] [--json] [--margin N]")
		os.Exit(1)
	}

	input := args[0]
	var from, to string
	asJSON := false
	opts := route.DefaultOptions()

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--from":
			if i+1 < len(args) {
				from = args[i+1]
				i++
			}
		case "--to":
			if i+1 < len(args) {
				to = args[i+1]
				i++
			}
		case "--json":
			asJSON = true
		case "--margin":
			if i+1 < len(args) {
				opts.Margin = parseMargin(args[i+1])
				i++
			}
		}
	}

	s := loadScene(input)
	router := route.NewRouter(opts)

	var plans []route.ConnectionPlan
	if from != "" || to != "" {
		plans = []route.ConnectionPlan{planPair(router, s, from, to)}
	} else {
		var err error
		plans, err = router.PlanScript(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error routing %s: %v\n", input, err)
			os.Exit(1)
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(toJSON(plans), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	for _, cp := range plans {
		c := cp.Connection
		fmt.Printf("%s -> %s  %s", c.From, c.To, cp.Best.Strategy)
		if cp.Fallback {
			fmt.Print(" (no clear route)")
		}
		fmt.Printf("  length %.1f  candidates %d\n", cp.Best.Length, len(cp.Candidates))
		if len(cp.Best.ControlPoints) > 0 {
			fmt.Printf("  control: %s\n", formatPoints(cp.Best.ControlPoints))
		}
		fmt.Printf("  path:    %s\n", render.PathData(cp.Best))
	}
}

// planPair routes a single pair of nodes, connected or not.
func planPair(router *route.Router, s *script.Script, from, to string) route.ConnectionPlan {
	if from == "" || to == "" {
		fmt.Fprintln(os.Stderr, "Error: --from and --to must be given together")
		os.Exit(1)
	}
	a, ok := s.Node(from)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown node %s\n", from)
		os.Exit(1)
	}
	b, ok := s.Node(to)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown node %s\n", to)
		os.Exit(1)
	}
	return route.ConnectionPlan{
		Connection: script.Connection{From: from, To: to},
		Plan:       router.Plan(a, b, route.NewIndex(route.ObstaclesFromNodes(s.Nodes))),
	}
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonRoute struct {
	Connection    string      `json:"connection,omitempty"`
	From          string      `json:"from"`
	To            string      `json:"to"`
	Strategy      string      `json:"strategy"`
	Fallback      bool        `json:"fallback"`
	ControlPoints []jsonPoint `json:"controlPoints"`
	Length        float64     `json:"length"`
	Path          string      `json:"path"`
}

func toJSON(plans []route.ConnectionPlan) []jsonRoute {
	out := make([]jsonRoute, 0, len(plans))
	for _, cp := range plans {
		points := make([]jsonPoint, 0, len(cp.Best.ControlPoints))
		for _, p := range cp.Best.ControlPoints {
			points = append(points, jsonPoint{p.X, p.Y})
		}
		out = append(out, jsonRoute{
			Connection:    cp.Connection.ID,
			From:          cp.Connection.From,
			To:            cp.Connection.To,
			Strategy:      string(cp.Best.Strategy),
			Fallback:      cp.Fallback,
			ControlPoints: points,
			Length:        cp.Best.Length,
			Path:          render.PathData(cp.Best),
		})
	}
	return out
}

func cmdSVG(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute svg <scene.json> [-o output.svg] [--strategy] [--title TEXT] [--margin N]")
		os.Exit(1)
	}

	input := args[0]
	output := outputName(input, ".svg")
	opts := render.DefaultSVGOptions()
	routeOpts := route.DefaultOptions()

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--strategy":
			opts.ShowStrategy = true
		case "--title":
			if i+1 < len(args) {
				opts.Title = args[i+1]
				i++
			}
		case "--margin":
			if i+1 < len(args) {
				routeOpts.Margin = parseMargin(args[i+1])
				i++
			}
		}
	}

	s, plans := loadAndPlan(input, routeOpts)
	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
		os.Exit(1)
	}
	if err := render.SVG(f, s, plans, opts); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Written: %s\n", output)
}

func cmdPNG(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute png <scene.json> [-o output.png] [--scale N] [--strategy] [--margin N]")
		os.Exit(1)
	}

	input := args[0]
	output := outputName(input, ".png")
	opts := render.DefaultPNGOptions()
	routeOpts := route.DefaultOptions()

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--scale":
			if i+1 < len(args) {
				opts.Scale = parseFloat("--scale", args[i+1])
				i++
			}
		case "--strategy":
			opts.ShowStrategy = true
		case "--margin":
			if i+1 < len(args) {
				routeOpts.Margin = parseMargin(args[i+1])
				i++
			}
		}
	}

	s, plans := loadAndPlan(input, routeOpts)
	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
		os.Exit(1)
	}
	if err := render.PNG(f, s, plans, opts); err != nil {
		f.Close()
		os.Remove(output)
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", output, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Written: %s\n", output)
}

func cmdGrid(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute grid <scene.json> [--cell WxH] [--strategy] [--margin N]")
		os.Exit(1)
	}

	input := args[0]
	opts := render.DefaultGridOptions()
	routeOpts := route.DefaultOptions()

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--cell":
			if i+1 < len(args) {
				w, h, err := parseCell(args[i+1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: --cell: %v\n", err)
					os.Exit(1)
				}
				opts.CellWidth, opts.CellHeight = w, h
				i++
			}
		case "--strategy":
			opts.ShowStrategy = true
		case "--margin":
			if i+1 < len(args) {
				routeOpts.Margin = parseMargin(args[i+1])
				i++
			}
		}
	}

	s, plans := loadAndPlan(input, routeOpts)
	fmt.Print(render.NewGrid(s, plans, opts).String())
}

func cmdValidate(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute validate <scene.json>")
		os.Exit(1)
	}

	input := args[0]
	s := loadScene(input)

	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	if orphans := s.OrphanNodes(); len(orphans) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: unconnected nodes: %s\n", strings.Join(orphans, ", "))
	}

	fmt.Printf("%s: valid script with %d nodes, %d connections\n",
		input, len(s.Nodes), len(s.Connections))
}

func cmdInfo(args []string) {
	if wantsHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: duckyroute info <scene.json>")
		os.Exit(1)
	}

	input := args[0]
	s, plans := loadAndPlan(input, route.DefaultOptions())

	fmt.Printf("Name:        %s\n", s.Metadata.Name)
	if s.Metadata.Description != "" {
		fmt.Printf("Description: %s\n", s.Metadata.Description)
	}
	fmt.Printf("Filename:    %s\n", s.Metadata.Filename)
	fmt.Printf("Nodes:       %d\n", len(s.Nodes))
	fmt.Printf("Connections: %d\n", len(s.Connections))

	types := make(map[script.NodeType]int)
	for _, n := range s.Nodes {
		types[n.Type]++
	}
	if len(types) > 0 {
		fmt.Println()
		fmt.Println("Node types:")
		for _, t := range sortedKeys(types) {
			fmt.Printf("  %-16s %d\n", t, types[script.NodeType(t)])
		}
	}

	strategies := make(map[route.Strategy]int)
	for _, cp := range plans {
		strategies[cp.Best.Strategy]++
	}
	if len(strategies) > 0 {
		fmt.Println()
		fmt.Println("Routes:")
		for _, st := range sortedKeys(strategies) {
			fmt.Printf("  %-16s %d\n", st, strategies[route.Strategy(st)])
		}
	}
}

func sortedKeys[K ~string](m map[K]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func loadScene(path string) *script.Script {
	s, err := scriptfile.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return s
}

func loadAndPlan(path string, opts route.Options) (*script.Script, []route.ConnectionPlan) {
	s := loadScene(path)
	plans, err := route.NewRouter(opts).PlanScript(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error routing %s: %v\n", path, err)
		os.Exit(1)
	}
	return s, plans
}

func outputName(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func parseFloat(flag, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: invalid number %q\n", flag, s)
		os.Exit(1)
	}
	return v
}

// parseMargin parses --margin, which must be a non-negative number.
func parseMargin(s string) float64 {
	v, err := checkMargin(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: --margin: %v\n", err)
		os.Exit(1)
	}
	return v
}

func checkMargin(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if !(v >= 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("margin must be a finite non-negative number, got %q", s)
	}
	return v, nil
}

// parseCell parses a cell size such as "8x16".
func parseCell(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width %q", ws)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height %q", hs)
	}
	return w, h, nil
}

func formatPoints(points []route.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
