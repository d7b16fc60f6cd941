// Command euroinfo inspects pointer smoothing presets and replays recorded
// pointer traces through the One Euro filter.
//
// Usage:
//
//	euroinfo [flags]
//
// Without -replay or -demo it prints the tuning of every preset at the
// configured stream frequency.
//
// Examples:
//
//	euroinfo
//	euroinfo -frequency 120 -slider 0.25
//	euroinfo -replay trace.csv -preset fineControl > smoothed.csv
//	euroinfo -replay trace.csv -config tuning.yaml -report
//	euroinfo -replay trace.csv -frequency 120 -report -fft 1024
//	euroinfo -demo -preset aggressive
//	euroinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-tremor/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-tremor/measure/jitter"
)

func main() {
	frequency := flag.Float64("frequency", 0, "expected pointer sampling rate in Hz (default 60, or the config file value)")
	preset := flag.String("preset", "", "preset name (fineControl, balanced, aggressive)")
	slider := flag.Float64("slider", math.NaN(), "slider position in [0, 1]; mutually exclusive with -preset")
	configPath := flag.String("config", "", "YAML tuning file")
	replayPath := flag.String("replay", "", "CSV trace (t,x,y) to filter")
	fftSize := flag.Int("fft", 0, "analysis FFT size for -report, rounded up to a power of two covering the trace (0 = automatic)")
	report := flag.Bool("report", false, "with -replay or -demo: print a tremor comparison instead of filtered CSV")
	demo := flag.Bool("demo", false, "filter a synthetic 8 Hz tremor trace")
	list := flag.Bool("list", false, "list available preset names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: euroinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints One Euro filter tunings and replays pointer traces.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  euroinfo -frequency 120 -slider 0.25\n")
		fmt.Fprintf(os.Stderr, "  euroinfo -replay trace.csv -preset fineControl\n")
		fmt.Fprintf(os.Stderr, "  euroinfo -demo -report\n")
		fmt.Fprintf(os.Stderr, "  euroinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	var fc fileConfig
	if *configPath != "" {
		var err error
		if fc, err = loadConfigFile(*configPath); err != nil {
			fatalf("%v", err)
		}
	}

	params, err := resolveParams(fc, overrides{frequency: *frequency, preset: *preset, slider: *slider})
	if err != nil {
		fatalf("%v", err)
	}

	switch {
	case *replayPath != "":
		f, err := os.Open(*replayPath)
		if err != nil {
			fatalf("open trace: %v", err)
		}
		raw, err := readTrace(f)
		_ = f.Close()
		if err != nil {
			fatalf("%v", err)
		}
		if raw.Len() == 0 {
			fatalf("trace %q has no samples", *replayPath)
		}
		if err := replay(os.Stdout, raw, params, analysisConfig(fc, params, raw, *fftSize), *report); err != nil {
			fatalf("%v", err)
		}
	case *demo:
		raw, err := demoTrace(params.Frequency)
		if err != nil {
			fatalf("%v", err)
		}
		if err := replay(os.Stdout, raw, params, analysisConfig(fc, params, raw, *fftSize), *report); err != nil {
			fatalf("%v", err)
		}
	default:
		if err := printTunings(os.Stdout, params, !math.IsNaN(*slider) || *preset != "" || *configPath != ""); err != nil {
			fatalf("%v", err)
		}
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func printList(w io.Writer) {
	for _, p := range oneeuro.Presets() {
		fmt.Fprintln(w, p)
	}
}

// printTunings writes one row per preset, plus a "selected" row for the
// resolved parameters when the caller chose a tuning explicitly.
func printTunings(w io.Writer, selected oneeuro.Params, showSelected bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Tuning\tFreq [Hz]\tMinCutoff\tBeta\tDerivCutoff\tAlpha (1 frame)\tAlphaD (1 frame)\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t---------\t---------\t----\t-----------\t---------------\t----------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := func(label string, p oneeuro.Params) error {
		// One frame at the nominal rate normalizes to dt = 1.
		_, err := fmt.Fprintf(tw, "%s\t%.1f\t%.3f\t%.3f\t%.3f\t%.4f\t%.4f\n",
			label,
			p.Frequency,
			p.MinCutoff,
			p.Beta,
			p.DerivativeCutoff,
			oneeuro.Alpha(1, p.MinCutoff),
			oneeuro.Alpha(1, p.DerivativeCutoff),
		)
		return err
	}

	for _, preset := range oneeuro.Presets() {
		p := oneeuro.Params{Frequency: selected.Frequency}.WithTuning(oneeuro.PresetParameters(preset))
		if err := row(preset.String(), p); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if showSelected {
		if err := row("selected", selected); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}

// replay filters raw with p and writes either the filtered CSV or, with
// report set, a tremor comparison table.
func replay(w io.Writer, raw jitter.Trace, p oneeuro.Params, cfg jitter.Config, report bool) error {
	filtered := jitter.FilterTrace(oneeuro.New(p), raw)
	if !report {
		return writeTrace(w, filtered)
	}

	cmp, err := jitter.Compare(raw, filtered, cfg)
	if err != nil {
		return err
	}
	return printComparison(w, cmp, cfg)
}

func printComparison(w io.Writer, cmp jitter.Comparison, cfg jitter.Config) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lines := []struct {
		label    string
		raw, flt float64
		unit     string
	}{
		{"band power x", cmp.Raw.X.BandPower, cmp.Filtered.X.BandPower, ""},
		{"band power y", cmp.Raw.Y.BandPower, cmp.Filtered.Y.BandPower, ""},
		{"band ratio x", cmp.Raw.X.BandRatio, cmp.Filtered.X.BandRatio, ""},
		{"band ratio y", cmp.Raw.Y.BandRatio, cmp.Filtered.Y.BandRatio, ""},
		{"peak x", cmp.Raw.X.PeakHz, cmp.Filtered.X.PeakHz, "Hz"},
		{"peak y", cmp.Raw.Y.PeakHz, cmp.Filtered.Y.PeakHz, "Hz"},
		{"velocity std x", cmp.Raw.X.VelocityStdDev, cmp.Filtered.X.VelocityStdDev, "/s"},
		{"velocity std y", cmp.Raw.Y.VelocityStdDev, cmp.Filtered.Y.VelocityStdDev, "/s"},
		{"path length", cmp.Raw.PathLength, cmp.Filtered.PathLength, ""},
	}

	if _, err := fmt.Fprintf(tw, "Metric (%.0f-%.0f Hz band)\tRaw\tFiltered\tUnit\n", cfg.BandLowHz, cfg.BandHighHz); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\n", l.label, l.raw, l.flt, l.unit); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nattenuation x=%.2f dB y=%.2f dB, lag=%d samples (%.1f ms), path ratio=%.3f\n",
		cmp.AttenuationXdB, cmp.AttenuationYdB, cmp.LagSamples, 1000*cmp.LagSeconds, cmp.PathLengthRatio)
	return err
}
