// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"io"
	"os"

	"m4o.io/osmedit"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/internal/compress"
)

// Load decodes the extract at path, or standard input when path is empty or
// "-". Compressed files are recognised by extension.
func Load(path string) (*dataset.DataSet, error) {
	f := os.Stdin

	if path != "" && path != "-" {
		var err error

		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}

	var in io.ReadCloser = f

	if Settings.Progress {
		var err error

		in, err = WrapInputFile(f)
		if err != nil {
			if f != os.Stdin {
				f.Close()
			}

			return nil, err
		}
	}

	defer in.Close()

	rdr, err := compress.NewReader(in, compress.FromPath(path))
	if err != nil {
		return nil, err
	}

	defer rdr.Close()

	return osmedit.Decode(rdr)
}
