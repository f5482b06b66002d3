// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"log"
	"os"

	"github.com/poiesic/keywordx/batch"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "keywordx",
		Usage: "Hybrid semantic and entity keyword extraction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Extract keywords from text and store the results",
				ArgsUsage: "[text...]",
				Action:    extractCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Keyword to match (repeatable)",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Read documents from a file, one per line",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum similarity for semantic matches",
						Value: 0.3,
					},
					&cli.StringSliceFlag{
						Name:  "weight",
						Usage: "Entity boost as TYPE=VALUE (repeatable)",
					},
					&cli.StringFlag{
						Name:  "weights-file",
						Usage: "YAML or JSON file mapping entity types to boosts",
					},
					&cli.StringFlag{
						Name:  "baseline",
						Usage: "Generic phrase whose similarity is discounted",
						Value: "is the a",
					},
					&cli.StringFlag{
						Name:  "recognizer",
						Usage: "Entity recognizer to use (rules, llm)",
						Value: "rules",
					},
					&cli.StringFlag{
						Name:  "reference-time",
						Usage: "RFC 3339 time relative dates resolve against (rules recognizer)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "recognizer-host",
						Usage: "Entity recognition chat host URL (defaults to embedding-host)",
					},
					&cli.StringFlag{
						Name:  "recognizer-model",
						Usage: "Entity recognition chat model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the AI services",
						EnvVars: []string{"KEYWORDX_API_TOKEN"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (in memory if empty)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of documents extracted concurrently",
						Value: batch.DefaultWorkers(),
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Log every extraction stage at debug level",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report batch progress on stderr",
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Show a stored document",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Document ID",
						Required: true,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored documents, oldest first",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}
}
