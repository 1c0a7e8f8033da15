// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package s3config_test

import (
	"testing"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config"
	_ "github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config/s3config"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/stretchr/testify/require"
)

func TestS3Config(t *testing.T) {
	cfg, err := config.Parse([]byte(`
include: dir,lib
s3: s3,my-bucket/synth/lib
awsregion: us-east-1
logger: off
`))
	require.NoError(t, err)
	r, err := cfg.Resolver()
	require.NoError(t, err)
	mux, ok := r.(include.Mux)
	if !ok {
		t.Fatalf("got %T, want include.Mux", r)
	}
	if mux["s3"] == nil {
		t.Error("no handler for s3 URLs")
	}
	chain, ok := mux[""].(include.Chain)
	if !ok {
		t.Fatalf("got %T, want include.Chain", mux[""])
	}
	if got, want := len(chain), 2; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	s3, ok := chain[1].(*include.S3)
	if !ok {
		t.Fatalf("got %T, want *include.S3", chain[1])
	}
	if got, want := s3.URL("nat.mls"), "s3://my-bucket/synth/lib/nat.mls"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	cfg, err = config.Parse([]byte("s3: s3,bucket\ncache: lru,16\n"))
	require.NoError(t, err)
	r, err = cfg.Resolver()
	require.NoError(t, err)
	if _, ok := r.(*include.Cache); !ok {
		t.Errorf("got %T, want *include.Cache", r)
	}

	if _, err := config.Parse([]byte("s3: s3\n")); err == nil {
		t.Error("expected error")
	}
}
