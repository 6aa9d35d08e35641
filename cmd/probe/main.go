package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/vncsmyrnk/hotornot/internal/config"
	"github.com/vncsmyrnk/hotornot/internal/probe"
)

func main() {
	config.LoadDotEnv()

	baseURL := os.Getenv("PROBE_BASE_URL")
	if baseURL == "" {
		baseURL = probe.DefaultBaseURL
	}

	var timeout time.Duration
	flag.StringVar(&baseURL, "base-url", baseURL, "Base URL of the rating API")
	flag.DurationVar(&timeout, "timeout", 0, "Timeout for each HTTP call, including reading the response body (0 means no timeout)")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	if _, err := probe.New(baseURL, client, os.Stdout).Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
