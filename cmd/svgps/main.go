// Command svgps converts SVG art into a flat stream of MoveTo, LineTo
// and CubicTo commands that plotters and engravers can consume directly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/plotpath/svgps"
	"github.com/plotpath/svgps/svg"
)

const usage = `Usage:
    svgps generate [flags] INPUT.svg OUTPUT.svgcom
    svgps render [flags] INPUT.svgcom OUTPUT.svg

Run "svgps generate -h" or "svgps render -h" for flags.`

const defaultConfigFile = "svgps.toml"

func main() {
	log.SetFlags(0)
	log.SetPrefix("svgps: ")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigFile, "TOML config file")
	tolerance := fs.Float64("tolerance", -1, "curve flattening tolerance")
	sampleTolerance := fs.Float64("sample-tolerance", -1, "visibility sampling tolerance")
	autocut := fs.Bool("autocut", false, "remove stretches hidden behind fills")
	polish := fs.Bool("polish", false, "drop sub-paths shorter than the polish threshold")
	polishThreshold := fs.Float64("polish-threshold", -1, "minimum sub-path length (negative means automatic)")
	fillRule := fs.String("fill-rule", "", "fill rule for shapes that do not declare one (nonzero or evenodd)")
	workers := fs.Int("workers", 0, "worker count for autocut (0 means all CPUs)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("generate needs INPUT.svg and OUTPUT.svgcom arguments")
	}

	cfg, err := loadConfig(*configPath, flagSeen(fs, "config"))
	if err != nil {
		return err
	}
	gen := cfg.Generate
	if flagSeen(fs, "tolerance") {
		gen.FlattenTolerance = *tolerance
	}
	if flagSeen(fs, "sample-tolerance") {
		gen.SampleTolerance = *sampleTolerance
	}
	if flagSeen(fs, "autocut") {
		gen.Autocut = *autocut
	}
	if flagSeen(fs, "polish") {
		gen.Polish = *polish
	}
	if flagSeen(fs, "polish-threshold") {
		gen.PolishThreshold = *polishThreshold
	}
	if flagSeen(fs, "fill-rule") {
		gen.FillRule = *fillRule
	}
	if flagSeen(fs, "workers") {
		gen.Workers = *workers
	}

	rule, err := gen.fillRule()
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := svg.Parse(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(0), err)
	}

	opts := []svgps.Option{
		svgps.WithFlattenTolerance(gen.FlattenTolerance),
		svgps.WithSampleTolerance(gen.SampleTolerance),
		svgps.WithWorkers(gen.Workers),
	}
	if gen.Autocut {
		opts = append(opts, svgps.WithAutocut())
	}
	if gen.Polish {
		opts = append(opts, svgps.WithPolish(gen.PolishThreshold))
	}
	// An explicit fill rule overrides whatever each shape declares.
	if gen.FillRule != "" {
		opts = append(opts, svgps.WithFillRule(rule))
	}

	stream, err := svgps.Generate(doc, opts...)
	if err != nil {
		return err
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	if err := stream.Encode(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigFile, "TOML config file")
	stroke := fs.String("stroke", "", "stroke color (SVG color name or #rrggbb)")
	strokeWidth := fs.Float64("stroke-width", 0, "stroke width in viewbox units")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("render needs INPUT.svgcom and OUTPUT.svg arguments")
	}

	cfg, err := loadConfig(*configPath, flagSeen(fs, "config"))
	if err != nil {
		return err
	}
	ren := cfg.Render
	if flagSeen(fs, "stroke") {
		ren.Stroke = *stroke
	}
	if flagSeen(fs, "stroke-width") {
		ren.StrokeWidth = *strokeWidth
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	stream, err := svgps.DecodeStream(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(0), err)
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	err = svgps.RenderSVG(out, stream, svgps.RenderOptions{
		Stroke:      ren.Stroke,
		StrokeWidth: ren.StrokeWidth,
	})
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// flagSeen reports whether the flag was set explicitly on the command line.
func flagSeen(fs *flag.FlagSet, name string) bool {
	seen := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			seen = true
		}
	})
	return seen
}
