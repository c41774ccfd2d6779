package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wildstyl3r/finasym/internal/config"
	"github.com/wildstyl3r/finasym/internal/render"
	"github.com/wildstyl3r/finasym/internal/report"
	"github.com/wildstyl3r/finasym/internal/sweep"
	"github.com/wildstyl3r/finasym/internal/utils"
)

type job struct {
	name   string
	params config.PlotParameters
	sweep  sweep.Parameters
}

type outcome struct {
	job
	result *sweep.Result
	err    error
}

func main() {
	dataFlags := report.NewDataFlags(flag.CommandLine)
	var configFileNamePointer = flag.String("input", "", "plots configuration in toml format; without it a single plot is built from -bins, -span and -mode")
	nBins := flag.Int("bins", 45, "number of theta bins")
	semiSpan := flag.Float64("span", 2., "detector semi-span in theta (deg)")
	mode := flag.String("mode", string(sweep.ModeTheta), "x axis: theta (t) or energy (e)")
	measured := flag.String("measured", "", "two-column file drawn over the curves")
	rendererName := flag.String("renderer", "", "chart backend: gonum or gochart")
	format := flag.String("format", "", "image format, e.g. pdf, png, svg")
	outputDir := flag.String("o", "", "output directory")
	threads := flag.Int("threads", runtime.NumCPU(), "number of plots computed at once")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	startTime := time.Now()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))
	if *configFileNamePointer != "" {
		for _, name := range ignoredFlags(flag.CommandLine) {
			fmt.Printf("warning: -%s is ignored, plots are read from %s\n", name, *configFileNamePointer)
		}
	}

	c, jobs, err := prepare(*configFileNamePointer, config.PlotParameters{
		NBins:    *nBins,
		SemiSpan: *semiSpan,
		Mode:     *mode,
		Alphas:   sweep.DefaultAlphas,
		Measured: *measured,
	}, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *rendererName != "" {
		c.Renderer = *rendererName
	}
	if *format != "" {
		c.Format = *format
	}
	if *outputDir != "" {
		c.OutputDir = *outputDir
	}

	renderer, err := render.NewRenderer(c.Renderer)
	if err == nil {
		err = render.CheckFormat(renderer, c.Format)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	outputPath := ""
	if c.OutputDir != "" && c.OutputDir != "." {
		if err := os.MkdirAll(c.OutputDir, 0750); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		outputPath = c.OutputDir
	}
	dataFlags.SetOutput(outputPath, c.MakeDir)

	outcomes := compute(jobs, *threads)

	failed := false
	images := chartPaths{}
	var summary utils.CSV
	for _, o := range outcomes {
		fmt.Println("\n" + o.name)
		if o.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.name, o.err)
			failed = true
			continue
		}
		for _, s := range o.result.Singularities {
			fmt.Printf("warning: %v\n", s)
		}
		if o.params.Verbose() {
			describe(o)
		}

		imagePath, err := draw(renderer, o, outputPath, c.Format, c.MakeDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.name, err)
			failed = true
			continue
		}
		if other, clash := images.claim(imagePath, o.name); clash {
			fmt.Printf("warning: %s overwrites the chart of %s, set MakeDir to keep both\n", o.name, other)
		}
		fmt.Println(imagePath + " saved")

		saved, err := dataFlags.Save(o.name, o.result, o.params.OutputUnits())
		for _, name := range saved {
			fmt.Println(name + " saved")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.name, err)
			failed = true
		}
		summary = append(summary, report.SummaryRows(o.name, o.result)...)
	}

	if len(summary) > 0 {
		if err := report.WriteSummary(outputPath, summary); err != nil {
			fmt.Fprintf(os.Stderr, "unable to save summary: %v\n", err)
			failed = true
		}
	}
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
	if failed {
		os.Exit(1)
	}
}

// single-plot flags, unused when plots come from a file
var singlePlotFlags = []string{"bins", "span", "mode", "measured"}

// ignoredFlags lists the single-plot flags set on the command line.
func ignoredFlags(fs *flag.FlagSet) (ignored []string) {
	fs.Visit(func(f *flag.Flag) {
		if slices.Contains(singlePlotFlags, f.Name) {
			ignored = append(ignored, f.Name)
		}
	})
	return
}

// chartPaths remembers which plot wrote each chart.
type chartPaths map[string]string

func (c chartPaths) claim(path, plotName string) (previous string, clash bool) {
	previous, clash = c[path]
	c[path] = plotName
	return
}

// prepare reads the configuration, or makes a one-plot configuration from the
// command line when no file is given.
func prepare(configFileName string, single config.PlotParameters, verbose bool) (config.Config, []job, error) {
	if configFileName == "" {
		c := config.Single("FiniteAsymmetry", single)
		single.SetOutputUnits(c.OutputUnits)
		single.SetVerbosity(verbose)
		p, err := single.Sweep()
		if err != nil {
			return c, nil, err
		}
		return c, []job{{name: "FiniteAsymmetry", params: single, sweep: p}}, nil
	}

	configFileName = strings.TrimSuffix(configFileName, ".toml")
	c, meta, err := config.LoadConfig(configFileName + ".toml")
	if err != nil {
		return c, nil, err
	}
	var jobs []job
	for _, name := range c.PlotNames() {
		params, err := c.Unify(name, &meta)
		if err != nil {
			return c, nil, err
		}
		params.SetVerbosity(verbose)
		p, err := params.Sweep()
		if err != nil {
			return c, nil, fmt.Errorf("plot %s: %w", name, err)
		}
		jobs = append(jobs, job{name: name, params: params, sweep: p})
	}
	return c, jobs, nil
}

// compute runs the sweeps on a bounded number of goroutines and returns the
// outcomes in the order of jobs.
func compute(jobs []job, threads int) []outcome {
	outcomes := make([]outcome, len(jobs))
	indices := make(chan int)
	var chanWg sync.WaitGroup
	for range max(threads, 1) {
		chanWg.Add(1)
		//worker
		go func() {
			defer chanWg.Done()
			for i := range indices {
				r, err := sweep.Run(jobs[i].sweep)
				outcomes[i] = outcome{job: jobs[i], result: r, err: err}
			}
		}()
	}

	fmt.Printf("\rDone:[0/%d]", len(jobs))
	for i := range jobs {
		indices <- i
		fmt.Printf("\rDone:[%d/%d]", i+1, len(jobs))
	}
	close(indices)
	chanWg.Wait()
	println()
	return outcomes
}

func draw(renderer render.Renderer, o outcome, outputPath, format string, makeDir bool) (string, error) {
	fig := o.result.Figure()
	if o.params.Title != "" {
		fig.Title = o.params.Title
	}
	fig.Width, fig.Height = o.params.Width, o.params.Height
	if o.params.Measured != "" {
		points, err := utils.ReadFloatPairs(o.params.Measured)
		if err != nil {
			return "", err
		}
		fig = sweep.WithMeasured(fig, utils.GetFilename(o.params.Measured), points)
	}

	dir := outputPath
	if makeDir {
		dir = filepath.Join(outputPath, o.name)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", err
		}
	}
	imagePath := filepath.Join(dir, o.result.FileName(format))
	return imagePath, renderer.Render(fig, imagePath)
}

func describe(o outcome) {
	r := o.result
	fmt.Printf("bins: %d; semi-span: %g deg; mode: %s\n", r.NBins, r.SemiSpan, r.Mode)
	fmt.Printf("theta: %v\n", r.Theta)
	for a, alpha := range r.Alphas {
		theta, rho := r.Peak(a)
		fmt.Printf("alpha %g deg: max asymmetry %f at theta %g deg\n", alpha, rho, theta)
	}
}
