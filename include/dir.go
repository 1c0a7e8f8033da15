// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
)

// Dir resolves files from a search path of local directories.
// Relative paths are looked up in each directory in turn; absolute
// paths are read directly.
type Dir []string

// Resolve reads the file at path from the first directory that
// contains it.
func (d Dir) Resolve(ctx context.Context, path string) ([]byte, error) {
	if filepath.IsAbs(path) {
		return readFile(path)
	}
	for _, dir := range d {
		b, err := readFile(filepath.Join(dir, path))
		if err == nil || !errors.Is(errors.NotExist, err) {
			return b, err
		}
	}
	return nil, errors.E("resolve", path, errors.NotExist)
}

func readFile(path string) ([]byte, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.E("resolve", path, errors.NotExist, err)
		}
		return nil, errors.E("resolve", path, err)
	}
	return b, nil
}
