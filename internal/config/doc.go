// Package config provides configuration parsing for markup projects.
//
// The configuration is stored in markup.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "render":  {"format": "pretty", "doctype": "<!DOCTYPE html>"},
//	  "output":  {"dir": "dist", "extension": ".html"},
//	  "serve":   {"host": "localhost", "port": 3000, "reload": true},
//	  "publish": {"bucket": "site", "prefix": "docs/", "region": "us-east-1"},
//	  "metrics": {"enabled": true, "namespace": "markup"}
//	}
//
// Every field is optional; missing fields take the values returned by New.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.ServeURL())
package config
