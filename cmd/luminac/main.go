// Command luminac is a thin demonstration driver for the resolver and
// pattern lowerer: it loads a lumina.yaml manifest and logs the library
// roots and project modules it names (their sources are neither read nor
// declared), builds a resolve.Resolver with one project root module, then
// runs the pattern lowerer over a handful of hard-coded decision trees and prints
// the resulting SSA. It is not a language compiler front end; lexing,
// parsing, type checking, and code generation all live outside this
// module's scope.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/simvux/lumina/internal/config"
	"github.com/simvux/lumina/internal/resolve"
)

func main() {
	manifestPath := flag.String("config", "", "path to lumina.yaml (defaults to searching upward from the current directory)")
	flag.Parse()

	runId := uuid.New()
	log.SetPrefix("luminac[" + runId.String()[:8] + "] ")

	path := *manifestPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			log.Fatalf("%v", err)
		}
		path = found
	}

	var manifest *config.Manifest
	if path != "" {
		m, err := config.Load(path)
		if err != nil {
			log.Fatalf("%v", err)
		}
		manifest = m
	}

	r := resolve.New()

	if manifest != nil {
		for _, libPath := range manifest.LibPaths(path) {
			log.Printf("would install library root from %s (source loading is out of scope)", libPath)
		}
	}

	project := r.NewRootModule(nil)
	r.SetProject(project)

	if manifest != nil {
		for _, modPath := range manifest.ModulePaths(path) {
			log.Printf("would declare project module from %s (source loading is out of scope)", modPath)
		}
	}

	log.Printf("resolver ready, project module is %s", project)

	for _, demo := range demos() {
		log.Printf("lowering %q", demo.name)
		b := demo.run()
		dumpProgram(os.Stdout, demo.name, b)
	}
}
