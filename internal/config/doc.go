// Package config provides configuration parsing for minifw programs.
//
// The configuration is stored in minifw.json, or minifw.yaml / minifw.yml,
// in the working directory. This package handles loading, saving,
// validating, and building the logger the configuration describes.
//
// # Configuration File Structure
//
//	{
//	  "name": "todos",
//	  "addr": "localhost:3000",
//	  "routerMode": "hash",
//	  "dataFile": "todos.db",
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "minifw"
//	  }
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.Logger(os.Stderr)
package config
