package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/statewire/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const outputKey = "out"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed accessors for statewire stores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "Output file for the generated accessors",
				Value: "accessors.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for statewire started !")
	defer func() {
		log.Printf("Codegen for statewire finished in %v", time.Since(start))
	}()

	out := cmd.String(outputKey)
	contents := templates.AccessorsGen(templates.DefaultAccessors)
	if err := os.WriteFile(out, []byte(contents), 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)

	return nil
}
