// Command query runs an ad-hoc GROQ query against the configured dataset and
// prints the raw result. Useful for debugging projections and content issues.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dogbodymind/go-site/internal/sanity"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

func main() {
	project := flag.String("project", os.Getenv("SANITY_PROJECT_ID"), "Sanity project id")
	dataset := flag.String("dataset", envOr("SANITY_DATASET", "production"), "Sanity dataset")
	token := flag.String("token", os.Getenv("SANITY_TOKEN"), "Sanity read token, optional")
	language := flag.String("language", "en", "value bound to $language")
	params := flag.String("params", "", "extra query params as a JSON object")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	query := flag.Arg(0)
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: query [flags] '<groq query>'")
		flag.PrintDefaults()
		os.Exit(2)
	}

	client, err := sanity.New(sanity.Config{
		ProjectID: *project,
		Dataset:   *dataset,
		Token:     *token,
	})
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	queryParams := interfaces.Params{"language": *language}
	if *params != "" {
		var extra map[string]any
		if err := json.Unmarshal([]byte(*params), &extra); err != nil {
			log.Fatalf("parse params: %v", err)
		}
		for key, value := range extra {
			queryParams[key] = value
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	raw, err := client.Fetch(ctx, query, queryParams, interfaces.FetchOptions{Tag: "debug_query"})
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		os.Stdout.Write(raw)
		fmt.Println()
		return
	}
	fmt.Println(pretty.String())
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
