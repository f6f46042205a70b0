// Package config provides the typed experiment configuration record.
//
// The config package loads the nested key/value experiment description
// (general paths, dataset descriptors, validation cadences, and per-network
// hyperparameters) into a typed, immutable record. Loading merges the parsed
// file onto defaults via viper, then validates every field: missing required
// keys, negative counts, out-of-range skip indices and enum tags are all
// fatal before any experiment resource is touched.
//
// Usage:
//
//	cfg, err := config.Load("womask.conf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("experiment dir: %s\n", cfg.General.BaseExpDir)
package config
