// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package config defines an interface for configuring a parsing
// session. This interface can be composed in multiple ways,
// allowing for layered configuration.
//
// A configuration is a set of keys (corresponding to toplevel keys
// in a YAML document). A subset of keys, defined by the package's
// AllKeys, correspond to objects that are configured by the Config
// interface. These keys are provisioned by globally registered
// providers; the keys must be string formatted, and contain the
// (registered) name of the provider, followed by an optional comma
// and string argument. For example:
//
//	include: dir,lib:/usr/share/synth
//
// Configures the include key (corresponding to Config.Resolver)
// using the dir provider; the argument "lib:/usr/share/synth" is
// the search path of include directories.
//
// Providers may themselves look up keys to supply further
// configuration. For example, the s3 provider (package s3config)
// consults the awsregion key:
//
//	include: dir,lib
//	s3: s3,my-bucket/synth/lib
//	awsregion: us-east-1
//	cache: lru,256
//	logger: stderr,debug
//	parallelism: 8
//
// Keys are provisioned in the order of AllKeys, so that the s3 and
// cache providers compose with the resolver configured by the
// include key: the above resolves includes from lib, then from S3,
// memoizing up to 256 files.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	golog "log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	yaml "gopkg.in/yaml.v2"
)

// The following are the set of keys provisioned by Config.
const (
	Logger  = "logger"
	Include = "include"
	S3      = "s3"
	Cache   = "cache"
)

// AllKeys defines the order in which configuration keys are
// provisioned. Thus, providers for keys later in the list may use
// configuration provided by providers for keys earlier in the list.
var AllKeys = []string{
	Logger,
	Include,
	S3,
	Cache,
}

// Keys that hold plain values rather than provider specifications.
const (
	Parallelism = "parallelism"
	AWSRegion   = "awsregion"
)

// Keys is a map of string keys to configuration values.
type Keys map[string]interface{}

// A Config provides a number of methods to mint the objects used
// by a parsing session. It is safe to call each method multiple
// times, but they should not be called concurrently.
type Config interface {
	// Logger returns the configured logger.
	Logger() (*log.Logger, error)

	// Resolver returns the resolver for include files.
	Resolver() (syntax.Resolver, error)

	// Parallelism returns the number of files that may be parsed
	// concurrently.
	Parallelism() (int, error)

	// AWSRegion returns the region to be used for all AWS operations.
	AWSRegion() (string, error)

	// Value returns the value of the given key.
	Value(key string) interface{}

	// Marshal marshals the current configuration into keys.
	Marshal(keys Keys) error

	// Keys returns all the keys as defined by this config.
	Keys() Keys
}

// Base defines a base configuration with reasonable defaults
// where they apply.
type Base Keys

// Logger returns a logger that outputs to standard error at
// InfoLevel.
func (b Base) Logger() (*log.Logger, error) {
	return log.New(golog.New(os.Stderr, "", golog.LstdFlags), log.InfoLevel), nil
}

// Resolver returns a resolver that reads include files relative to
// the current directory.
func (b Base) Resolver() (syntax.Resolver, error) {
	return include.Dir{"."}, nil
}

// Parallelism returns the value of the key "parallelism", or else
// the number of CPUs.
func (b Base) Parallelism() (int, error) {
	v, ok := b[Parallelism]
	if !ok {
		return runtime.NumCPU(), nil
	}
	n, ok := v.(int)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("invalid parallelism value: %v", v)
	}
	return n, nil
}

// AWSRegion returns the region in the key "awsregion", or else
// the default region us-west-2.
func (b Base) AWSRegion() (string, error) {
	v, ok := b[AWSRegion]
	if ok {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("invalid AWS region value: %v", v)
		}
		return s, nil
	}
	return "us-west-2", nil
}

// Keys returns the configured keys.
func (b Base) Keys() Keys {
	return Keys(b)
}

// Value returns the value for the provided key.
func (b Base) Value(key string) interface{} {
	return b[key]
}

// Marshal populates the provided key dictionary with the keys
// present in this configuration.
func (b Base) Marshal(keys Keys) error {
	for k, v := range b {
		keys[k] = v
	}
	return nil
}

// Unmarshal unmarshals the (YAML-configured) configuration in b into
// keys.
func Unmarshal(b []byte, keys Keys) error {
	return yaml.Unmarshal(b, keys)
}

// Marshal marshals the given keys into YAML-formatted bytes.
func Marshal(cfg Config) ([]byte, error) {
	keys := make(Keys)
	if err := cfg.Marshal(keys); err != nil {
		return nil, err
	}
	return yaml.Marshal(keys)
}

// Make evaluates a config's keys: for each key in AllKeys (and in
// the order defined by AllKeys), Make parses its provider, and
// provisions the key accordingly. Make returns errors if a provider
// cannot be found or if the provider fails to configure the given
// key.
func Make(cfg Config) (Config, error) {
	for _, key := range AllKeys {
		v := cfg.Value(key)
		if v == nil {
			continue
		}
		vstr, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string for key %s, got %T", key, v)
		}
		name, arg := peel(vstr, ",")
		provider, ok := Lookup(key, name)
		if !ok {
			return nil, fmt.Errorf("provider %s not defined for key %s", name, key)
		}
		var err error
		cfg, err = provider.Configure(cfg, arg)
		if err != nil {
			return nil, fmt.Errorf("configuring key %s with provider %s: %v", key, name, err)
		}
	}
	return cfg, nil
}

// Parse parses and provisions a configuration from the
// YAML-formatted bytes b.
func Parse(b []byte) (Config, error) {
	base := make(Base)
	if err := Unmarshal(b, Keys(base)); err != nil {
		return nil, err
	}
	return Make(base)
}

// ParseFile reads and then parses the configuration from the
// provided filename.
func ParseFile(filename string) (Config, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// A Provider provisions a single key in a configuration. Providers
// must be registered via the package's Register function.
type Provider struct {
	Configure        func(cfg Config, arg string) (Config, error)
	Kind, Arg, Usage string
}

var (
	providers = make(map[string]map[string]Provider)
	mu        sync.Mutex
)

// Register the configuration provider kind for the given key. The
// arg and usage string should describe the provider's argument.
// Register panics if key is not one of AllKeys.
func Register(key, kind, arg, usage string, configure func(Config, string) (Config, error)) {
	if !isKey(key) {
		panic(fmt.Sprintf("config: unknown key %s", key))
	}
	mu.Lock()
	defer mu.Unlock()
	kindmap := providers[key]
	if kindmap == nil {
		kindmap = make(map[string]Provider)
		providers[key] = kindmap
	}
	if _, ok := kindmap[kind]; ok {
		panic(fmt.Sprintf("provider %s already registered for key %s", kind, key))
	}
	kindmap[kind] = Provider{
		Configure: configure,
		Kind:      kind,
		Arg:       arg,
		Usage:     usage,
	}
}

// Lookup returns the Provider of kind for key.
func Lookup(key, kind string) (Provider, bool) {
	mu.Lock()
	defer mu.Unlock()
	p, ok := providers[key][kind]
	return p, ok
}

// Usage contains usage information for a provider.
type Usage struct {
	Kind, Arg, Usage string
}

// Help returns Usages, organized by key.
func Help() map[string][]Usage {
	mu.Lock()
	defer mu.Unlock()
	help := make(map[string][]Usage)
	for key, keyProviders := range providers {
		var usages []Usage
		for name, provider := range keyProviders {
			usages = append(usages, Usage{
				Kind:  name,
				Arg:   provider.Arg,
				Usage: provider.Usage,
			})
		}
		help[key] = usages
	}
	return help
}

func isKey(key string) bool {
	for _, k := range AllKeys {
		if k == key {
			return true
		}
	}
	return false
}

func peel(s, sep string) (head, tail string) {
	switch parts := strings.SplitN(s, sep, 2); len(parts) {
	case 1:
		return parts[0], ""
	case 2:
		return parts[0], parts[1]
	default:
		panic("bug")
	}
}

var errNoArg = errors.New("argument not provided")
