// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package all imports all standard configuration providers
// that live outside of package config.
package all

import (
	_ "github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config/s3config"
)
