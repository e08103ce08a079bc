package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-blackhole-raytracer/pkg/loaders"
	"github.com/df07/go-blackhole-raytracer/web/server"
)

func main() {
	defaults := server.DefaultConfig()

	// Parse command line flags
	port := flag.Int("port", defaults.Port, "Port to serve on")
	width := flag.Int("width", defaults.Width, "Render width in pixels")
	height := flag.Int("height", defaults.Height, "Render height in pixels")
	skydome := flag.String("skydome", "", "Equirectangular sky image; empty uses the grid")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = use CPU count)")
	static := flag.String("static", defaults.StaticDir, "Directory of static files to serve")
	flag.Parse()

	config := defaults
	config.Port = *port
	config.Width = *width
	config.Height = *height
	config.StaticDir = *static
	config.Scheduler.NumWorkers = *workers

	if *skydome != "" {
		sky, err := loaders.LoadSkydome(*skydome)
		if err != nil {
			log.Printf("Warning: %v; using the grid sky instead", err)
		} else {
			config.Sky = sky
		}
	}

	// Create and start web server
	webServer := server.NewServer(config)

	log.Printf("Black Hole Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start exploring", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		webServer.Close()
		os.Exit(1)
	}
}
