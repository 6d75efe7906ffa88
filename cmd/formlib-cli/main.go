package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	formlib "github.com/goliatone/go-formlib"
	"github.com/goliatone/go-formlib/pkg/model"
	"github.com/goliatone/go-formlib/pkg/schema"
)

func main() {
	source := flag.String("schema", "", "form definition: YAML file, or OpenAPI document with -component")
	component := flag.String("component", "", "OpenAPI component schema to derive the form from")
	name := flag.String("renderer", "vanilla", "renderer name: vanilla emits markup, tui fills the form interactively")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *source == "" {
		log.Fatal("missing -schema: path to a YAML form definition or OpenAPI document")
	}

	ctx := context.Background()

	form, err := loadSchema(ctx, *source, *component)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}

	registry, err := formlib.Renderers()
	if err != nil {
		log.Fatal(err)
	}
	renderer, err := registry.Get(*name)
	if err != nil {
		log.Fatalf("unknown renderer %q: want one of %v", *name, registry.List())
	}

	result, err := renderer.Render(ctx, form, formlib.RenderOptions{})
	if err != nil {
		log.Fatalf("render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(result))
}

func loadSchema(ctx context.Context, path, component string) (model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Schema{}, err
	}
	if component != "" {
		return schema.LoadOpenAPIComponent(ctx, data, component, schema.OpenAPIOptions{})
	}
	return schema.ParseYAML(data)
}
