// goerrat computes the ERRAT quality profile of a protein structure and
// renders it as a per-chain error plot.
//
// Single-file mode reads one PDB or mmCIF file (optionally gzipped):
//
//	goerrat -in model.pdb [-out dir] [-pdf] [-cpus N]
//
// Batch mode runs a YAML manifest of jobs:
//
//	goerrat -config jobs.yaml
//
// The legacy job-directory form takes a label and a job ID; the job
// directory $ERRAT_JOBS_PATH/<jobID> (default ./outputs/<jobID>) must
// contain errat.pdb, and receives errat.logf plus errat.ps or errat.pdf:
//
//	goerrat [-pdf] <label> <jobID>
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errat "github.com/rmera/goerrat"
	"github.com/rmera/goerrat/batch"
	"github.com/rmera/goerrat/pdb"
	"github.com/rmera/goerrat/report"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: goerrat -in file [-out dir] [-pdf] [-cpus N]\n")
	fmt.Fprintf(os.Stderr, "       goerrat -config jobs.yaml\n")
	fmt.Fprintf(os.Stderr, "       goerrat [-pdf] <label> <jobID>\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	in := flag.String("in", "", "coordinate file to analyze (PDB or mmCIF, .gz allowed)")
	out := flag.String("out", ".", "output directory for single-file mode")
	pdf := flag.Bool("pdf", false, "write the report as PDF instead of PostScript")
	config := flag.String("config", "", "YAML batch manifest; runs every job in it")
	cpus := flag.Int("cpus", 0, "worker goroutines, 0 means all CPUs")
	flag.Usage = usage
	flag.Parse()

	switch {
	case *config != "":
		runBatch(*config)
	case *in != "":
		label := strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
		label = strings.TrimSuffix(label, filepath.Ext(label)) //for .pdb.gz
		runOne(label, *in, *out, *pdf, *cpus)
	case flag.NArg() == 2:
		base := os.Getenv("ERRAT_JOBS_PATH")
		if base == "" {
			base = "./outputs"
		}
		dir := filepath.Join(base, flag.Arg(1))
		runJobDir(flag.Arg(0), dir, *pdf, *cpus)
	default:
		usage()
	}
}

//runOne analyzes a single file, writing <label>.logf and the report to dir.
func runOne(label, path, dir string, pdf bool, cpus int) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fatal(err)
	}
	quality, scored, err := analyze(label, path, filepath.Join(dir, label), pdf, cpus)
	if err != nil {
		fatal(err)
	}
	if !scored {
		fmt.Printf("%s: no scorable windows\n", label)
		return
	}
	fmt.Printf("%s: overall quality factor %.3f\n", label, quality)
}

//runJobDir is the legacy form: fixed file names inside the job directory.
func runJobDir(label, dir string, pdf bool, cpus int) {
	quality, scored, err := analyze(label, filepath.Join(dir, "errat.pdb"), filepath.Join(dir, "errat"), pdf, cpus)
	if err != nil {
		fatal(err)
	}
	if !scored {
		fmt.Printf("%s: no scorable windows\n", label)
		return
	}
	fmt.Printf("%s: overall quality factor %.3f\n", label, quality)
}

//analyze runs the pipeline on one file. outBase is the output path
//without extension; the log goes to outBase.logf and the report to
//outBase.ps or outBase.pdf.
func analyze(label, path, outBase string, pdf bool, cpus int) (quality float64, scored bool, err error) {
	logf, err := os.Create(outBase + ".logf")
	if err != nil {
		return 0, false, err
	}
	defer logf.Close()
	s, err := pdb.ReadFile(path, logf)
	if err != nil {
		return 0, false, err
	}
	opts := errat.DefaultOptions()
	if cpus > 0 {
		opts.Cpus(cpus)
	}
	res, err := errat.Analyze(s, logf, opts)
	if err != nil {
		return 0, false, err
	}
	if !res.Scored() {
		return 0, false, nil
	}
	ext := ".ps"
	write := report.WriteEPS
	if pdf {
		ext = ".pdf"
		write = report.WritePDF
	}
	outf, err := os.Create(outBase + ext)
	if err != nil {
		return 0, false, err
	}
	defer outf.Close()
	if err := write(outf, res, label, logf); err != nil {
		return 0, false, err
	}
	return res.QualityFactor(), true, nil
}

func runBatch(path string) {
	c, err := batch.LoadConfig(path)
	if err != nil {
		fatal(err)
	}
	failed := 0
	for _, r := range batch.RunConfig(c) {
		switch {
		case r.Err != nil:
			failed++
			fmt.Printf("%s: FAILED: %v\n", r.Job.Label, r.Err)
		case !r.Scored:
			fmt.Printf("%s: no scorable windows\n", r.Job.Label)
		default:
			fmt.Printf("%s: overall quality factor %.3f\n", r.Job.Label, r.Quality)
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d jobs failed\n", failed, len(c.Jobs))
		os.Exit(1)
	}
}
