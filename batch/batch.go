/*
 * batch.go, part of goerrat.
 *
 * Copyright 2024 The goerrat developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package batch runs the full ingest-analyze-report pipeline over many
//structures. Jobs come from a YAML manifest, run on a bounded worker
//pool, and fail independently: a malformed file reports an error for its
//job and leaves the rest of the batch alone. Each job gets its own
//output directory with the analysis log and the rendered report.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	errat "github.com/rmera/goerrat"
	"github.com/rmera/goerrat/pdb"
	"github.com/rmera/goerrat/report"
	"gopkg.in/yaml.v3"
)

//Job is one structure to analyze. Label names the output files, Path is
//the coordinate file (PDB or mmCIF, optionally gzipped), OutDir receives
//<Label>.logf and the report.
type Job struct {
	Label  string `yaml:"label"`
	Path   string `yaml:"path"`
	OutDir string `yaml:"outdir"`
	PDF    bool   `yaml:"pdf"`
}

//Config is a batch manifest. BasePath, if set, prefixes every relative
//job path and output directory. Format "pdf" switches every job to PDF
//output; the default is PostScript.
type Config struct {
	Cpus     int    `yaml:"cpus"`
	Format   string `yaml:"format"`
	BasePath string `yaml:"basepath"`
	Jobs     []Job  `yaml:"jobs"`
}

//LoadConfig reads a YAML manifest from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errDecorate(err, "batch.LoadConfig")
	}
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errDecorate(err, "batch.LoadConfig")
	}
	for i := range c.Jobs {
		j := &c.Jobs[i]
		if j.Label == "" {
			return nil, fmt.Errorf("batch.LoadConfig: job %d has no label", i)
		}
		if j.Path == "" {
			return nil, fmt.Errorf("batch.LoadConfig: job %q has no path", j.Label)
		}
	}
	return c, nil
}

//resolved applies the manifest-level defaults to each job.
func (c *Config) resolved() []Job {
	jobs := make([]Job, len(c.Jobs))
	for i, j := range c.Jobs {
		if c.BasePath != "" && !filepath.IsAbs(j.Path) {
			j.Path = filepath.Join(c.BasePath, j.Path)
		}
		if j.OutDir == "" {
			j.OutDir = j.Label
		}
		if c.BasePath != "" && !filepath.IsAbs(j.OutDir) {
			j.OutDir = filepath.Join(c.BasePath, j.OutDir)
		}
		if c.Format == "pdf" {
			j.PDF = true
		}
		jobs[i] = j
	}
	return jobs
}

//Result is the outcome of one job. Err is nil on success; Quality and
//Scored are only meaningful then.
type Result struct {
	Job     Job
	Err     error
	Quality float64
	Scored  bool
}

//Run executes jobs on at most cpus concurrent workers and returns one
//Result per job, in job order. cpus below 1 means one worker.
func Run(jobs []Job, cpus int) []Result {
	if cpus < 1 {
		cpus = 1
	}
	results := make([]Result, len(jobs))
	queue := make(chan int, len(jobs))
	done := make(chan struct{})
	for w := 0; w < cpus; w++ {
		go func() {
			for i := range queue {
				results[i] = runJob(jobs[i])
			}
			done <- struct{}{}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	for w := 0; w < cpus; w++ {
		<-done
	}
	return results
}

//RunConfig resolves a manifest and runs it.
func RunConfig(c *Config) []Result {
	return Run(c.resolved(), c.Cpus)
}

func runJob(j Job) Result {
	res := Result{Job: j}
	if err := os.MkdirAll(j.OutDir, 0755); err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
		return res
	}
	logf, err := os.Create(filepath.Join(j.OutDir, j.Label+".logf"))
	if err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
		return res
	}
	defer logf.Close()
	s, err := pdb.ReadFile(j.Path, logf)
	if err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
		return res
	}
	r, err := errat.Analyze(s, logf)
	if err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
		return res
	}
	res.Scored = r.Scored()
	if res.Scored {
		res.Quality = r.QualityFactor()
	}
	if !res.Scored {
		return res
	}
	ext := ".ps"
	write := report.WriteEPS
	if j.PDF {
		ext = ".pdf"
		write = report.WritePDF
	}
	out, err := os.Create(filepath.Join(j.OutDir, j.Label+ext))
	if err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
		return res
	}
	defer out.Close()
	if err := write(out, r, j.Label, logf); err != nil {
		res.Err = errDecorate(err, "batch.runJob "+j.Label)
	}
	return res
}

//errDecorate mirrors the error chaining used in the root package, for
//errors that originate here rather than there. Decorate on a value
//receiver only reliably mutates the slice it returns, so the error is
//rebuilt around that slice instead of trusting the copy.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(errat.Error); ok {
		return errat.NewCError(e.Error(), e.Decorate(caller))
	}
	return fmt.Errorf("%s: %w", caller, err)
}
