// Command catalogo is a terminal client for the toy catalog API.
package main

import (
	"log"
	"os"
	"time"

	"brinquedos/internal/client"
	"brinquedos/internal/frontend"

	"github.com/spf13/pflag"
)

func main() {
	baseURL := pflag.StringP("url", "u", "http://localhost:3000", "catalog API base URL")
	timeout := pflag.DurationP("timeout", "t", 10*time.Second, "per-request timeout")
	pflag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("catalogo: ")

	api := client.New(*baseURL, *timeout)
	controller := frontend.NewController(api, frontend.NewTerminalView(os.Stdout))

	if err := newREPL(controller, os.Stdin, os.Stdout, *timeout).Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
