package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	sitepage "github.com/reoring/sitepage"
	"github.com/reoring/sitepage/loader"
	"github.com/reoring/sitepage/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "sitepage CLI\n\nUsage:\n  sitepage validate -page page.json -layout layout.json -schemas dir[,dir...]\n  sitepage schema -layout layout.json -schemas dir[,dir...] [-o out.json]\n\nNotes:\n  - Documents may be JSON or YAML, chosen by file extension.\n  - validate checks documents only; renderers are link-time collaborators, so a\n    no-op renderer is assumed for every loaded schema type.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var pagePath, layoutPath, schemasCSV string
	fs.StringVar(&pagePath, "page", "", "page document (json or yaml)")
	fs.StringVar(&layoutPath, "layout", "", "layout document (json or yaml)")
	fs.StringVar(&schemasCSV, "schemas", "", "comma-separated component schema directories")
	_ = fs.Parse(args)
	if pagePath == "" || layoutPath == "" || schemasCSV == "" {
		fs.Usage()
		os.Exit(2)
	}

	page, err := loader.Document(pagePath)
	if err != nil {
		fatalf("%v", err)
	}
	layout, err := loader.Document(layoutPath)
	if err != nil {
		fatalf("%v", err)
	}
	schemas, err := loader.ComponentSchemas(splitCSV(schemasCSV)...)
	if err != nil {
		fatalf("%v", err)
	}

	v, err := sitepage.NewSiteValidator(sitepage.Options{ComponentSchemas: schemas})
	if err != nil {
		fatalf("%v", err)
	}

	renderers := render.Registry{}
	for name := range schemas {
		renderers[name] = func(map[string]any, *render.Context) (string, error) { return "", nil }
	}

	req := sitepage.Request{Page: page, Layout: layout, Renderers: renderers}
	if err := v.Validate(context.Background(), req); err != nil {
		fatalf("invalid: %s", sitepage.DescribeValidationError(err))
	}
	fmt.Println("ok")
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var layoutPath, schemasCSV, out string
	fs.StringVar(&layoutPath, "layout", "", "layout document (json or yaml)")
	fs.StringVar(&schemasCSV, "schemas", "", "comma-separated component schema directories")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if layoutPath == "" || schemasCSV == "" {
		fs.Usage()
		os.Exit(2)
	}

	layout, err := loader.Document(layoutPath)
	if err != nil {
		fatalf("%v", err)
	}
	schemas, err := loader.ComponentSchemas(splitCSV(schemasCSV)...)
	if err != nil {
		fatalf("%v", err)
	}

	composite, err := sitepage.BuildPageSchema(layout, schemas)
	if err != nil {
		fatalf("%v", err)
	}
	data, err := json.MarshalIndent(composite, "", "  ")
	if err != nil {
		fatalf("marshal composite schema: %v", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
