/*
Package generator turns error sum type declarations, read from .httperr schema
files, into Go source presenting every variant uniformly as an HTTP-facing
error: a textual rendering, a conversion to the canonical structured error,
a bridge into the generic error chain and auto-wrap constructors.

Generation is a single synchronous pass per file: schema reading, attribute
parsing, cause resolution and validation either produce an artifact or a set
of located diagnostics, never both. Re-running on identical input rewrites an
identical artifact.
*/
package generator

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"gitlab.com/kyle_anderson/go-utils/pkg/uerrors"
	"gitlab.com/kyle_anderson/go-utils/pkg/umath"
	"golang.org/x/tools/imports"
)

/*
Determines if the given file is a generated Go source file for the configured
suffix. Such files are never consulted when inferring the output package.
*/
func isGeneratedFile(name, suffix string) bool {
	return strings.HasSuffix(name, "."+suffix+".go")
}

func outputPathFor(schemaPath, suffix string) string {
	return strings.TrimSuffix(schemaPath, schemaFileExt) + "." + suffix + ".go"
}

type fileProcessingJob struct {
	filename string
	pkg      string
	cfg      *Config
}

/*
	Processes incoming schema file jobs on the given channel.

Any errors encountered in the process will be sent on the errs channel.
This channel will not be closed by the processor so that it can be used
by multiple processors running in parallel.
*/
func processor(jobs <-chan fileProcessingJob, errs chan<- *ErrFileProcessing) {
	for job := range jobs {
		if err := processFile(job); err != nil {
			errs <- err
		}
	}
}

func processFile(job fileProcessingJob) *ErrFileProcessing {
	outputPath := outputPathFor(job.filename, job.cfg.Suffix)
	formErr := func(e error) *ErrFileProcessing {
		return &ErrFileProcessing{e, job.filename, outputPath}
	}
	src, err := os.ReadFile(job.filename)
	if err != nil {
		return formErr(fmt.Errorf(`generator.processFile: failed to read schema: %w`, err))
	}
	decls, diags := parseSchema(job.filename, string(src))
	check(decls, &diags)
	if err := diags.Err(); err != nil {
		return formErr(err)
	}
	if len(decls) == 0 {
		return formErr(errors.New(`generator.processFile: schema contains no declarations`))
	}
	raw, err := renderFile(job.pkg, job.cfg.RuntimeImport, decls)
	if err != nil {
		return formErr(err)
	}
	formatted, err := imports.Process(outputPath, raw, nil)
	if err != nil {
		return formErr(fmt.Errorf(`generator.processFile: failed to autoformat: %w`, err))
	}
	if err := os.WriteFile(outputPath, formatted, 0o644); err != nil {
		return formErr(fmt.Errorf(`generator.processFile: failed to write output: %w`, err))
	}
	return nil
}

/*
Generate processes every schema file in the given directory, writing a
generated Go file next to each. An aggregate error, implementing
[gitlab.com/kyle_anderson/go-utils/pkg/uerrors.Aggregate], may be returned if
multiple files failed; per-file diagnostics are accumulated, so one run
reports everything there is to fix. A nil cfg picks up httperrgen.yaml from
the directory when present, defaults otherwise.
*/
func Generate(inputDirectory string, cfg *Config) error {
	cfg, err := resolveConfig(inputDirectory, cfg)
	if err != nil {
		return err
	}
	schemas, err := filepath.Glob(filepath.Join(inputDirectory, "*"+schemaFileExt))
	if err != nil {
		return fmt.Errorf(`generator.Generate: bad input directory: %w`, err)
	}
	if len(schemas) == 0 {
		return ErrNoSchemaFiles(inputDirectory)
	}
	sort.Strings(schemas)
	pkg := cfg.Package
	if pkg == "" {
		pkg = inferPackageName(inputDirectory, cfg.Suffix)
	}

	numJobs := umath.Min(runtime.NumCPU()+2, len(schemas))
	wg := &sync.WaitGroup{}
	wg.Add(numJobs)
	jobs := make(chan fileProcessingJob, numJobs)
	errs := make(chan *ErrFileProcessing, cap(jobs)) // No need to close, wouldn't signal anything
	for i := 0; i < numJobs; i++ {
		go func() {
			processor(jobs, errs)
			wg.Done()
		}()
	}
	collectedErrs := uerrors.CollectChan(errs)
	for _, schema := range schemas {
		jobs <- fileProcessingJob{schema, pkg, cfg}
	}
	close(jobs)
	wg.Wait()
	/* errs can safely be closed here as all writers should now have terminated. */
	close(errs)
	return (<-collectedErrs).Materialize()
}

/*
inferPackageName picks the package for generated files: the package clause of
the sibling Go sources when there are any, the directory basename otherwise.
*/
func inferPackageName(dir, suffix string) string {
	pkgs, err := parser.ParseDir(token.NewFileSet(), dir,
		func(fi fs.FileInfo) bool { return !isGeneratedFile(fi.Name(), suffix) },
		parser.PackageClauseOnly)
	if err == nil && len(pkgs) > 0 {
		names := make([]string, 0, len(pkgs))
		for name := range pkgs {
			if !strings.HasSuffix(name, "_test") {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		if len(names) > 0 {
			return names[0]
		}
	}
	return fallbackPackageName(dir)
}

var packageNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func fallbackPackageName(dir string) string {
	name := packageNameSanitizer.ReplaceAllString(filepath.Base(dir), "")
	name = strings.TrimLeft(name, "0123456789")
	if name == "" {
		return "errdefs"
	}
	return strings.ToLower(name)
}
