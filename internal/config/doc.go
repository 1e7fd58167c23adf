// Package config loads shwimple project configuration.
//
// Configuration lives in shwimple.yaml (shwimple.yml and shwimple.json are
// accepted) at the project root. Every key can be overridden from the
// environment with the SHWIMPLE_ prefix, dots replaced by underscores
// (SHWIMPLE_SERVER_PORT=8080), and from command line flags bound to the
// viper instance returned by NewViper.
//
// # Configuration File Structure
//
//	pages: pages
//	output: dist
//	layout: standard
//	server:
//	  host: localhost
//	  port: 3000
//	  reload: true
//	publish:
//	  bucket: my-site
//	  prefix: docs/
//	  region: eu-west-1
//	  concurrency: 4
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Serving on", cfg.URL())
package config
