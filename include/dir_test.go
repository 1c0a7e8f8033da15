// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
}

func TestDir(t *testing.T) {
	lib, cleanup := testutil.TempDir(t, "", "lib")
	defer cleanup()
	local, cleanup2 := testutil.TempDir(t, "", "local")
	defer cleanup2()
	writeFile(t, filepath.Join(lib, "nat.mls"), "lib nat")
	writeFile(t, filepath.Join(lib, "std", "list.mls"), "lib list")
	writeFile(t, filepath.Join(local, "nat.mls"), "local nat")

	ctx := context.Background()
	d := include.Dir{local, lib}
	for _, c := range []struct {
		path, want string
	}{
		{"nat.mls", "local nat"},
		{"std/list.mls", "lib list"},
		{filepath.Join(lib, "nat.mls"), "lib nat"},
	} {
		b, err := d.Resolve(ctx, c.path)
		if err != nil {
			t.Errorf("%s: %v", c.path, err)
			continue
		}
		if got, want := string(b), c.want; got != want {
			t.Errorf("%s: got %q, want %q", c.path, got, want)
		}
	}
	for _, path := range []string{"list.mls", filepath.Join(local, "list.mls")} {
		if _, err := d.Resolve(ctx, path); !errors.Is(errors.NotExist, err) {
			t.Errorf("%s: got %v, want %v", path, err, errors.NotExist)
		}
	}
	// Directories are not files.
	if _, err := d.Resolve(ctx, "std"); err == nil || errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want read error", err)
	}
}
