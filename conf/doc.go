// Package conf implements the nested key/value configuration format used by
// experiment description files.
//
// The format supports scalar values (integers, floats, strings, booleans),
// ordered sequences ([a, b, c]), nested groups (name { ... }), and inline
// comments (# ...). Parsing produces a generic nested map suitable for
// merging into viper; Encode writes the canonical form of such a map back
// out, so that parse -> encode -> parse is the identity on the record.
//
// Usage:
//
//	record, err := conf.ParseFile("womask.conf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = conf.Encode(os.Stdout, record)
package conf
