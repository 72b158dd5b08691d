package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "static", "Directory with the web UI")
	scenesDir := flag.String("scenes", "../scenes", "Directory with JSON scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *staticDir, *scenesDir)

	log.Printf("Recursive Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
